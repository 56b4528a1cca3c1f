package models

type Organization struct {
	ID                    string                  `json:"id" bson:"_id"`
	Slug                  string                  `json:"slug" bson:"slug"`
	Name                  string                  `json:"name" bson:"name"`
	Type                  string                  `json:"type" bson:"type"`
	Country               string                  `json:"country" bson:"country"`
	JurisdictionCountries []string                `json:"jurisdictionCountries" bson:"jurisdictionCountries"`
	OpeningHours          map[string]OpeningHours `json:"openingHours" bson:"openingHours"`
	Aircall               AircallSettings         `json:"aircall" bson:"aircall"`
	IsActive              bool                    `json:"isActive" bson:"isActive"`
	TimeModel             `bson:",inline"`
}

// OpeningHours is keyed by lower-case english day name on the organization.
type OpeningHours struct {
	Open   string `json:"open" bson:"open"`
	Close  string `json:"close" bson:"close"`
	Closed bool   `json:"closed" bson:"closed"`
}

type AircallSettings struct {
	Enabled  bool   `json:"enabled" bson:"enabled"`
	NumberID string `json:"numberId,omitempty" bson:"numberId,omitempty"`
}

type OrgService struct {
	ID                  string               `json:"id" bson:"_id"`
	OrgID               string               `json:"orgId" bson:"orgId"`
	ServiceID           string               `json:"serviceId" bson:"serviceId"`
	Name                string               `json:"name" bson:"name"`
	Category            string               `json:"category" bson:"category"`
	ProcessingMode      string               `json:"processingMode" bson:"processingMode"`
	Pricing             Pricing              `json:"pricing" bson:"pricing"`
	RequiresAppointment bool                 `json:"requiresAppointment" bson:"requiresAppointment"`
	DepositAppointment  AppointmentSettings  `json:"depositAppointment" bson:"depositAppointment"`
	PickupAppointment   *AppointmentSettings `json:"pickupAppointment,omitempty" bson:"pickupAppointment,omitempty"`
	IsActive            bool                 `json:"isActive" bson:"isActive"`
	TimeModel           `bson:",inline"`
}

// Pricing amount is expressed in the currency's minor unit.
type Pricing struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

type AppointmentSettings struct {
	DurationMinutes int `json:"durationMinutes" bson:"durationMinutes"`
	BreakMinutes    int `json:"breakMinutes" bson:"breakMinutes"`
	Capacity        int `json:"capacity" bson:"capacity"`
}

const (
	ProcessingModeOnlineOnly  = "online_only"
	ProcessingModePresenceReq = "presence_required"
	ProcessingModeHybrid      = "hybrid"
)
