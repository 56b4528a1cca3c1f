package requests

type PlacesAutocomplete struct {
	Input      string
	Types      string
	Language   string
	Components string
}

type PlaceDetails struct {
	PlaceID  string `validate:"required"`
	Language string
}
