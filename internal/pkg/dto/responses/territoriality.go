package responses

import "consulat-service/internal/app/models"

type TerritorialityDecision struct {
	ShouldTransferToCurrentLocation bool   `json:"shouldTransferToCurrentLocation"`
	ShouldSignalToCurrentLocation   bool   `json:"shouldSignalToCurrentLocation"`
	Reason                          string `json:"reason"`
}

type ProfileLocationUpdate struct {
	Decision TerritorialityDecision `json:"decision"`
	Profile  *models.Profile        `json:"profile"`
}
