package models

import "time"

type Notification struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	RecipientUserID string         `json:"recipientUserId,omitempty"`
	RecipientOrgID  string         `json:"recipientOrgId,omitempty"`
	Subject         string         `json:"subject"`
	Payload         map[string]any `json:"payload,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}
