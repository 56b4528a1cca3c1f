package requests

type ValidateWorkflowTransition struct {
	FromStatus string `json:"fromStatus" validate:"required"`
	ToStatus   string `json:"toStatus" validate:"required"`
	ServiceID  string `json:"serviceId"`
}
