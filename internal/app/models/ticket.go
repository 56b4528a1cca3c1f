package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen           TicketStatus = "open"
	TicketStatusInProgress     TicketStatus = "in_progress"
	TicketStatusWaitingForUser TicketStatus = "waiting_for_user"
	TicketStatusResolved       TicketStatus = "resolved"
	TicketStatusClosed         TicketStatus = "closed"
)

const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

type Ticket struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	UserID      string          `json:"userId"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Status      TicketStatus    `json:"status"`
	Priority    string          `json:"priority"`
	AssignedTo  string          `json:"assignedTo,omitempty"`
	ResolvedAt  *time.Time      `json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time      `json:"closedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Messages    []TicketMessage `json:"messages,omitempty"`
}

type TicketMessage struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	IsStaff   bool      `json:"isStaff"`
	CreatedAt time.Time `json:"createdAt"`
}
