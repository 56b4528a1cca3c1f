package models

type OrgStatistics struct {
	OrgID               string                  `json:"orgId"`
	RequestsByStatus    map[RequestStatus]int64 `json:"requestsByStatus"`
	AwaitingAgentAction int64                   `json:"awaitingAgentAction"`
	AppointmentsToday   int64                   `json:"appointmentsToday"`
	Payments            *PaymentStats           `json:"payments"`
}
