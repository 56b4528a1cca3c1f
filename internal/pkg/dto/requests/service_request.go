package requests

type CreateServiceRequest struct {
	OrgServiceID string         `json:"orgServiceId" validate:"required"`
	FormData     map[string]any `json:"formData"`
}

type UpdateServiceRequestStatus struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"max=1000"`
}

type ListServiceRequests struct {
	OrgID  string
	Status string
	Pagination
}
