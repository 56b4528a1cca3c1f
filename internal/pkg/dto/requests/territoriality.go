package requests

import "strings"

type EvaluateTerritoriality struct {
	ResidenceCountry   string `json:"residenceCountry" validate:"required,iso3166_1_alpha2"`
	CurrentLocation    string `json:"currentLocation" validate:"required,iso3166_1_alpha2"`
	StayDurationMonths int    `json:"stayDurationMonths" validate:"gte=0"`
}

type UpdateProfileLocation struct {
	CurrentLocation    string `json:"currentLocation" validate:"required,iso3166_1_alpha2"`
	StayDurationMonths int    `json:"stayDurationMonths" validate:"gte=0"`
}

func (r *EvaluateTerritoriality) Normalize() {
	r.ResidenceCountry = normalizeCountryCode(r.ResidenceCountry)
	r.CurrentLocation = normalizeCountryCode(r.CurrentLocation)
}

func (r *UpdateProfileLocation) Normalize() {
	r.CurrentLocation = normalizeCountryCode(r.CurrentLocation)
}

func normalizeCountryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
