package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusDraft       AppointmentStatus = "draft"
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusMissed      AppointmentStatus = "missed"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

const (
	AppointmentTypeDeposit = "deposit"
	AppointmentTypePickup  = "pickup"
)

type Appointment struct {
	ID             string            `json:"id" bson:"_id"`
	OrgID          string            `json:"orgId" bson:"orgId"`
	OrgServiceID   string            `json:"orgServiceId" bson:"orgServiceId"`
	RequestID      string            `json:"requestId,omitempty" bson:"requestId,omitempty"`
	UserID         string            `json:"userId" bson:"userId"`
	AgentID        string            `json:"agentId" bson:"agentId"`
	Type           string            `json:"type" bson:"type"`
	Date           string            `json:"date" bson:"date"`
	StartTime      string            `json:"startTime" bson:"startTime"`
	EndTime        string            `json:"endTime" bson:"endTime"`
	Status         AppointmentStatus `json:"status" bson:"status"`
	Notes          string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CancelledAt    *time.Time        `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	ReminderSentAt *time.Time        `json:"reminderSentAt,omitempty" bson:"reminderSentAt,omitempty"`
	TimeModel      `bson:",inline"`
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled && a.Status != AppointmentStatusRescheduled
}

type AgentSchedule struct {
	ID             string              `json:"id" bson:"_id"`
	OrgID          string              `json:"orgId" bson:"orgId"`
	AgentID        string              `json:"agentId" bson:"agentId"`
	OrgServiceID   string              `json:"orgServiceId,omitempty" bson:"orgServiceId,omitempty"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	WeeklySchedule []DaySchedule       `json:"weeklySchedule" bson:"weeklySchedule"`
	Exceptions     []ScheduleException `json:"exceptions,omitempty" bson:"exceptions,omitempty"`
	TimeModel      `bson:",inline"`
}

type DaySchedule struct {
	Day        string      `json:"day" bson:"day"`
	TimeRanges []TimeRange `json:"timeRanges" bson:"timeRanges"`
}

type TimeRange struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// ScheduleException overrides the weekly schedule on a single date.
type ScheduleException struct {
	Date       string      `json:"date" bson:"date"`
	Available  bool        `json:"available" bson:"available"`
	TimeRanges []TimeRange `json:"timeRanges,omitempty" bson:"timeRanges,omitempty"`
	Reason     string      `json:"reason,omitempty" bson:"reason,omitempty"`
}

type AvailableSlot struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableCount int    `json:"availableCount"`
}
