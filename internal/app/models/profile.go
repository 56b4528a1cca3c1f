package models

import "time"

type Profile struct {
	ID                 string     `json:"id" bson:"_id"`
	UserID             string     `json:"userId" bson:"userId"`
	FirstName          string     `json:"firstName" bson:"firstName"`
	LastName           string     `json:"lastName" bson:"lastName"`
	Email              string     `json:"email" bson:"email"`
	PhoneNumber        string     `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	ResidenceCountry   string     `json:"residenceCountry" bson:"residenceCountry"`
	CurrentLocation    string     `json:"currentLocation,omitempty" bson:"currentLocation,omitempty"`
	StayDurationMonths int        `json:"stayDurationMonths" bson:"stayDurationMonths"`
	ManagedByOrgID     string     `json:"managedByOrgId,omitempty" bson:"managedByOrgId,omitempty"`
	SignaledToOrgID    string     `json:"signaledToOrgId,omitempty" bson:"signaledToOrgId,omitempty"`
	LocationUpdatedAt  *time.Time `json:"locationUpdatedAt,omitempty" bson:"locationUpdatedAt,omitempty"`
	TimeModel          `bson:",inline"`
}

func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
