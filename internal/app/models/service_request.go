package models

import "time"

type RequestStatus string

const (
	RequestStatusDraft                RequestStatus = "draft"
	RequestStatusSubmitted            RequestStatus = "submitted"
	RequestStatusPending              RequestStatus = "pending"
	RequestStatusPendingCompletion    RequestStatus = "pending_completion"
	RequestStatusEdited               RequestStatus = "edited"
	RequestStatusUnderReview          RequestStatus = "under_review"
	RequestStatusInProduction         RequestStatus = "in_production"
	RequestStatusValidated            RequestStatus = "validated"
	RequestStatusRejected             RequestStatus = "rejected"
	RequestStatusAppointmentScheduled RequestStatus = "appointment_scheduled"
	RequestStatusReadyForPickup       RequestStatus = "ready_for_pickup"
	RequestStatusCompleted            RequestStatus = "completed"
	RequestStatusCancelled            RequestStatus = "cancelled"
	// RequestStatusProcessing only exists on requests created before the lifecycle was split.
	RequestStatusProcessing RequestStatus = "processing"
)

const ActivityTypeStatusChanged = "status_changed"

type ServiceRequest struct {
	ID            string         `json:"id" bson:"_id"`
	Reference     string         `json:"reference" bson:"reference"`
	UserID        string         `json:"userId" bson:"userId"`
	ProfileID     string         `json:"profileId,omitempty" bson:"profileId,omitempty"`
	OrgID         string         `json:"orgId" bson:"orgId"`
	OrgServiceID  string         `json:"orgServiceId" bson:"orgServiceId"`
	ServiceName   string         `json:"serviceName" bson:"serviceName"`
	Status        RequestStatus  `json:"status" bson:"status"`
	PaymentStatus PaymentStatus  `json:"paymentStatus,omitempty" bson:"paymentStatus,omitempty"`
	FormData      map[string]any `json:"formData,omitempty" bson:"formData,omitempty"`
	AssignedTo    string         `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Activities    []Activity     `json:"activities" bson:"activities"`
	SubmittedAt   *time.Time     `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	TimeModel     `bson:",inline"`
}

type Activity struct {
	Type       string        `json:"type" bson:"type"`
	ActorID    string        `json:"actorId" bson:"actorId"`
	FromStatus RequestStatus `json:"fromStatus,omitempty" bson:"fromStatus,omitempty"`
	ToStatus   RequestStatus `json:"toStatus,omitempty" bson:"toStatus,omitempty"`
	Note       string        `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}

// CompletedSteps counts status changes recorded on the request.
func (r *ServiceRequest) CompletedSteps() int {
	count := 0
	for _, activity := range r.Activities {
		if activity.Type == ActivityTypeStatusChanged {
			count++
		}
	}
	return count
}

func (r *ServiceRequest) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}
