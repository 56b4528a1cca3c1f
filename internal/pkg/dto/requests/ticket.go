package requests

type CreateTicket struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Category    string `json:"category" validate:"required,oneof=technical request payment account other"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type AddTicketMessage struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type UpdateTicketStatus struct {
	Status string `json:"status" validate:"required,oneof=open in_progress waiting_for_user resolved closed"`
}

type AssignTicket struct {
	AgentID string `json:"agentId" validate:"required"`
}
