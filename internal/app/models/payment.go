package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

type Payment struct {
	ID                    string        `json:"id"`
	RequestID             string        `json:"requestId"`
	UserID                string        `json:"userId"`
	OrgID                 string        `json:"orgId"`
	StripePaymentIntentID string        `json:"stripePaymentIntentId"`
	Amount                int64         `json:"amount"`
	Currency              string        `json:"currency"`
	Status                PaymentStatus `json:"status"`
	Description           string        `json:"description,omitempty"`
	PaidAt                *time.Time    `json:"paidAt,omitempty"`
	FailedAt              *time.Time    `json:"failedAt,omitempty"`
	RefundedAt            *time.Time    `json:"refundedAt,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

type PaymentStats struct {
	TotalRevenue     int64 `json:"totalRevenue"`
	ThisMonthRevenue int64 `json:"thisMonthRevenue"`
	PendingAmount    int64 `json:"pendingAmount"`
	SuccessCount     int   `json:"successCount"`
	PendingCount     int   `json:"pendingCount"`
	FailedCount      int   `json:"failedCount"`
}
