package requests

type StartCall struct {
	OrgID         string `json:"orgId" validate:"required"`
	AircallUserID string `json:"aircallUserId" validate:"required,numeric"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone_number"`
}
