package responses

import "consulat-service/internal/app/models"

type ServiceRequestDetail struct {
	*models.ServiceRequest
	Phase               string   `json:"phase"`
	ValidNextStatuses   []string `json:"validNextStatuses"`
	RequiresUserAction  bool     `json:"requiresUserAction"`
	RequiresAgentAction bool     `json:"requiresAgentAction"`
}
