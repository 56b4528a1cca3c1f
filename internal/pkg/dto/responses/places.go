package responses

type PlacePrediction struct {
	PlaceID       string `json:"placeId"`
	Description   string `json:"description"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

type PlacesAutocomplete struct {
	Success     bool              `json:"success"`
	Predictions []PlacePrediction `json:"predictions"`
	Error       string            `json:"error,omitempty"`
}

type Address struct {
	Street           string  `json:"street"`
	City             string  `json:"city"`
	PostalCode       string  `json:"postalCode"`
	Country          string  `json:"country"`
	CountryCode      string  `json:"countryCode"`
	FormattedAddress string  `json:"formattedAddress"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

type PlaceDetails struct {
	Success bool     `json:"success"`
	Details *Address `json:"details,omitempty"`
	Error   string   `json:"error,omitempty"`
}
