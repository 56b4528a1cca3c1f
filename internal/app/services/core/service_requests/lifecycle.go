package servicerequests

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/exceptions"
	"fmt"
)

const (
	PhaseCreation     = "creation"
	PhaseCompletion   = "completion"
	PhaseProcessing   = "processing"
	PhaseFinalization = "finalization"
	PhaseTerminal     = "terminal"
)

var statusPhases = map[models.RequestStatus]string{
	models.RequestStatusDraft:                PhaseCreation,
	models.RequestStatusSubmitted:            PhaseCreation,
	models.RequestStatusPending:              PhaseCreation,
	models.RequestStatusPendingCompletion:    PhaseCompletion,
	models.RequestStatusEdited:               PhaseCompletion,
	models.RequestStatusUnderReview:          PhaseProcessing,
	models.RequestStatusInProduction:         PhaseProcessing,
	models.RequestStatusValidated:            PhaseFinalization,
	models.RequestStatusRejected:             PhaseTerminal,
	models.RequestStatusAppointmentScheduled: PhaseFinalization,
	models.RequestStatusReadyForPickup:       PhaseFinalization,
	models.RequestStatusCompleted:            PhaseTerminal,
	models.RequestStatusCancelled:            PhaseTerminal,
	models.RequestStatusProcessing:           PhaseProcessing,
}

var transitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusDraft: {
		models.RequestStatusSubmitted,
		models.RequestStatusCancelled,
	},
	models.RequestStatusSubmitted: {
		models.RequestStatusPending,
		models.RequestStatusUnderReview,
		models.RequestStatusCancelled,
	},
	models.RequestStatusPending: {
		models.RequestStatusPendingCompletion,
		models.RequestStatusUnderReview,
		models.RequestStatusCancelled,
	},
	models.RequestStatusPendingCompletion: {
		models.RequestStatusEdited,
		models.RequestStatusCancelled,
	},
	models.RequestStatusEdited: {
		models.RequestStatusUnderReview,
		models.RequestStatusPendingCompletion,
	},
	models.RequestStatusUnderReview: {
		models.RequestStatusValidated,
		models.RequestStatusRejected,
		models.RequestStatusPendingCompletion,
		models.RequestStatusAppointmentScheduled,
		models.RequestStatusInProduction,
	},
	models.RequestStatusInProduction: {
		models.RequestStatusReadyForPickup,
		models.RequestStatusValidated,
	},
	models.RequestStatusValidated: {
		models.RequestStatusInProduction,
		models.RequestStatusReadyForPickup,
		models.RequestStatusCompleted,
	},
	models.RequestStatusAppointmentScheduled: {
		models.RequestStatusUnderReview,
		models.RequestStatusValidated,
		models.RequestStatusCancelled,
	},
	models.RequestStatusReadyForPickup: {
		models.RequestStatusCompleted,
	},
	models.RequestStatusCompleted: {},
	models.RequestStatusCancelled: {},
	// A rejected request may be reopened as a draft even though it is terminal.
	models.RequestStatusRejected: {
		models.RequestStatusDraft,
	},
	models.RequestStatusProcessing: {
		models.RequestStatusCompleted,
		models.RequestStatusCancelled,
		models.RequestStatusValidated,
		models.RequestStatusRejected,
	},
}

func IsKnownStatus(status models.RequestStatus) bool {
	_, ok := statusPhases[status]
	return ok
}

func CanTransition(from, to models.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AssertCanTransition returns an error listing the valid options when from cannot move to to.
func AssertCanTransition(from, to models.RequestStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	options := ValidNextStatuses(from)
	return exceptions.ErrInvalidStatusTransition(
		fmt.Errorf("transition %s -> %s not allowed", from, to),
		string(from), string(to), options,
	)
}

func ValidNextStatuses(current models.RequestStatus) []string {
	next := transitions[current]
	result := make([]string, 0, len(next))
	for _, status := range next {
		result = append(result, string(status))
	}
	return result
}

func Phase(status models.RequestStatus) string {
	return statusPhases[status]
}

func IsTerminal(status models.RequestStatus) bool {
	return statusPhases[status] == PhaseTerminal
}

func RequiresUserAction(status models.RequestStatus) bool {
	switch status {
	case models.RequestStatusDraft,
		models.RequestStatusPendingCompletion,
		models.RequestStatusAppointmentScheduled,
		models.RequestStatusReadyForPickup:
		return true
	}
	return false
}

func RequiresAgentAction(status models.RequestStatus) bool {
	switch status {
	case models.RequestStatusPending,
		models.RequestStatusEdited,
		models.RequestStatusSubmitted,
		models.RequestStatusUnderReview,
		models.RequestStatusInProduction:
		return true
	}
	return false
}

// AgentActionStatuses lists the statuses counted as waiting on an agent.
func AgentActionStatuses() []models.RequestStatus {
	return []models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusEdited,
		models.RequestStatusSubmitted,
		models.RequestStatusUnderReview,
		models.RequestStatusInProduction,
	}
}
