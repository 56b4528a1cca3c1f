package requests

type GetAvailableSlots struct {
	OrgServiceID string `validate:"required"`
	Date         string `validate:"required,date_only"`
	Type         string `validate:"omitempty,oneof=deposit pickup"`
}

type BookAppointment struct {
	OrgServiceID string `json:"orgServiceId" validate:"required"`
	RequestID    string `json:"requestId"`
	Date         string `json:"date" validate:"required,date_only"`
	StartTime    string `json:"startTime" validate:"required,clock_time"`
	Type         string `json:"type" validate:"omitempty,oneof=deposit pickup"`
	Notes        string `json:"notes" validate:"max=500"`
}

type ListOrgAppointments struct {
	OrgID string `validate:"required"`
	Date  string `validate:"required,date_only"`
}

type TimeRange struct {
	Start string `json:"start" validate:"required,clock_time"`
	End   string `json:"end" validate:"required,clock_time"`
}

type DaySchedule struct {
	Day        string      `json:"day" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	TimeRanges []TimeRange `json:"timeRanges" validate:"dive"`
}

type ScheduleException struct {
	Date       string      `json:"date" validate:"required,date_only"`
	Available  bool        `json:"available"`
	TimeRanges []TimeRange `json:"timeRanges" validate:"dive"`
	Reason     string      `json:"reason"`
}

type UpsertAgentSchedule struct {
	OrgID          string              `json:"-" validate:"required"`
	AgentID        string              `json:"agentId" validate:"required"`
	OrgServiceID   string              `json:"orgServiceId"`
	IsActive       bool                `json:"isActive"`
	WeeklySchedule []DaySchedule       `json:"weeklySchedule" validate:"required,dive"`
	Exceptions     []ScheduleException `json:"exceptions" validate:"dive"`
}
