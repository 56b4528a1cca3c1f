package servicerequests

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.RequestStatus
		allowed  bool
	}{
		{models.RequestStatusDraft, models.RequestStatusSubmitted, true},
		{models.RequestStatusDraft, models.RequestStatusCompleted, false},
		{models.RequestStatusSubmitted, models.RequestStatusUnderReview, true},
		{models.RequestStatusPending, models.RequestStatusPendingCompletion, true},
		{models.RequestStatusPendingCompletion, models.RequestStatusEdited, true},
		{models.RequestStatusEdited, models.RequestStatusUnderReview, true},
		{models.RequestStatusUnderReview, models.RequestStatusAppointmentScheduled, true},
		{models.RequestStatusUnderReview, models.RequestStatusCancelled, false},
		{models.RequestStatusValidated, models.RequestStatusCompleted, true},
		{models.RequestStatusReadyForPickup, models.RequestStatusCompleted, true},
		{models.RequestStatusRejected, models.RequestStatusDraft, true},
		{models.RequestStatusCompleted, models.RequestStatusDraft, false},
		{models.RequestStatusCancelled, models.RequestStatusDraft, false},
		{models.RequestStatusProcessing, models.RequestStatusValidated, true},
		{"bogus", models.RequestStatusDraft, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAssertCanTransition(t *testing.T) {
	assert.NoError(t, AssertCanTransition(models.RequestStatusDraft, models.RequestStatusSubmitted))

	err := AssertCanTransition(models.RequestStatusDraft, models.RequestStatusCompleted)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	assert.Contains(t, customErr.DevMessage, `invalid transition from "draft" to "completed", valid options: submitted, cancelled`)

	err = AssertCanTransition(models.RequestStatusCompleted, models.RequestStatusDraft)
	require.True(t, errors.As(err, &customErr))
	assert.Contains(t, customErr.DevMessage, "valid options: none")
}

func TestPhases(t *testing.T) {
	assert.Equal(t, PhaseCreation, Phase(models.RequestStatusPending))
	assert.Equal(t, PhaseCompletion, Phase(models.RequestStatusEdited))
	assert.Equal(t, PhaseFinalization, Phase(models.RequestStatusAppointmentScheduled))

	for _, status := range []models.RequestStatus{models.RequestStatusRejected, models.RequestStatusCompleted, models.RequestStatusCancelled} {
		assert.True(t, IsTerminal(status), status)
	}
	assert.False(t, IsTerminal(models.RequestStatusValidated))
}

func TestEveryStatusHasTransitionsAndPhase(t *testing.T) {
	for status := range statusPhases {
		_, ok := transitions[status]
		assert.True(t, ok, "missing transitions for %s", status)
	}
	for status, next := range transitions {
		assert.True(t, IsKnownStatus(status), status)
		for _, to := range next {
			assert.True(t, IsKnownStatus(to), to)
		}
	}
}

func TestActionOwnership(t *testing.T) {
	assert.True(t, RequiresUserAction(models.RequestStatusPendingCompletion))
	assert.False(t, RequiresAgentAction(models.RequestStatusPendingCompletion))
	assert.True(t, RequiresAgentAction(models.RequestStatusSubmitted))
	assert.False(t, RequiresUserAction(models.RequestStatusSubmitted))
	assert.False(t, RequiresUserAction(models.RequestStatusCompleted))
	assert.False(t, RequiresAgentAction(models.RequestStatusCompleted))

	for _, status := range AgentActionStatuses() {
		assert.True(t, RequiresAgentAction(status))
	}
}
