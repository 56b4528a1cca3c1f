package servicerequests

import (
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testDeps struct {
	requests  *mocks.ServiceRequestRepository
	services  *mocks.OrgServiceRepository
	profiles  *mocks.ProfileRepository
	publisher *mocks.NotificationPublisher
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestUsecase() (*serviceRequestUsecase, testDeps) {
	deps := testDeps{
		requests:  new(mocks.ServiceRequestRepository),
		services:  new(mocks.OrgServiceRepository),
		profiles:  new(mocks.ProfileRepository),
		publisher: new(mocks.NotificationPublisher),
	}
	uc := newServiceRequestUsecase(deps.requests, deps.services, deps.profiles, deps.publisher, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, deps
}

var (
	citizen = &models.Session{UserID: "user_1", Role: constvars.RoleCitizen}
	agent   = &models.Session{UserID: "agent_1", Role: constvars.RoleAgent, OrgID: "org_1"}
)

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func TestServiceRequestUsecase_Create(t *testing.T) {
	t.Run("creates a draft with a reference", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.services.On("FindByID", mock.Anything, "svc_1").Return(&models.OrgService{ID: "svc_1", OrgID: "org_1", Name: "Passeport", IsActive: true}, nil)
		deps.profiles.On("FindByUserID", mock.Anything, "user_1").Return(&models.Profile{ID: "profile_1"}, nil)
		deps.requests.On("Create", mock.Anything, mock.AnythingOfType("*models.ServiceRequest")).Return(nil)

		created, err := uc.Create(context.Background(), citizen, &requests.CreateServiceRequest{OrgServiceID: "svc_1"})

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusDraft, created.Status)
		assert.Equal(t, "org_1", created.OrgID)
		assert.Equal(t, "profile_1", created.ProfileID)
		assert.True(t, strings.HasPrefix(created.Reference, "REQ-"))
		assert.NotEmpty(t, created.ID)
	})

	t.Run("inactive service", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.services.On("FindByID", mock.Anything, "svc_1").Return(&models.OrgService{ID: "svc_1", IsActive: false}, nil)

		_, err := uc.Create(context.Background(), citizen, &requests.CreateServiceRequest{OrgServiceID: "svc_1"})

		assert.Equal(t, constvars.StatusNotFound, statusCode(t, err))
	})
}

func TestServiceRequestUsecase_Submit(t *testing.T) {
	t.Run("draft is submitted and org notified", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_1", OrgID: "org_1", Status: models.RequestStatusDraft}, nil)
		deps.requests.On("UpdateStatus", mock.Anything, "req_1", models.RequestStatusDraft, models.RequestStatusSubmitted, mock.MatchedBy(func(a models.Activity) bool {
			return a.Type == models.ActivityTypeStatusChanged && a.ActorID == "user_1" && a.CreatedAt.Equal(fixedNow)
		})).Return(true, nil)
		deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.RecipientOrgID == "org_1" && n.RecipientUserID == ""
		})).Return(nil)

		submitted, err := uc.Submit(context.Background(), citizen, "req_1")

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusSubmitted, submitted.Status)
		require.NotNil(t, submitted.SubmittedAt)
		assert.Len(t, submitted.Activities, 1)
		deps.publisher.AssertExpectations(t)
	})

	t.Run("only the owner submits", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "someone", Status: models.RequestStatusDraft}, nil)

		_, err := uc.Submit(context.Background(), citizen, "req_1")

		assert.Equal(t, constvars.StatusForbidden, statusCode(t, err))
	})

	t.Run("already submitted", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_1", Status: models.RequestStatusSubmitted}, nil)

		_, err := uc.Submit(context.Background(), citizen, "req_1")

		assert.Equal(t, constvars.StatusUnprocessableEntity, statusCode(t, err))
		deps.requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceRequestUsecase_UpdateStatus(t *testing.T) {
	underReview := func() *models.ServiceRequest {
		return &models.ServiceRequest{ID: "req_1", UserID: "user_1", OrgID: "org_1", Status: models.RequestStatusUnderReview}
	}

	t.Run("agent applies an allowed transition and the owner is notified", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)
		deps.requests.On("UpdateStatus", mock.Anything, "req_1", models.RequestStatusUnderReview, models.RequestStatusValidated, mock.Anything).Return(true, nil)
		deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.RecipientUserID == "user_1" && n.Type == constvars.NotificationTypeRequestStatusChanged
		})).Return(nil)

		updated, err := uc.UpdateStatus(context.Background(), agent, "req_1", &requests.UpdateServiceRequestStatus{Status: "validated", Note: "ok"})

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusValidated, updated.Status)
		assert.Equal(t, "ok", updated.Activities[0].Note)
	})

	t.Run("disallowed transition", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)

		_, err := uc.UpdateStatus(context.Background(), agent, "req_1", &requests.UpdateServiceRequestStatus{Status: "completed"})

		assert.Equal(t, constvars.StatusUnprocessableEntity, statusCode(t, err))
	})

	t.Run("unknown status", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)

		_, err := uc.UpdateStatus(context.Background(), agent, "req_1", &requests.UpdateServiceRequestStatus{Status: "teleported"})

		assert.Equal(t, constvars.StatusUnprocessableEntity, statusCode(t, err))
	})

	t.Run("agent of another organization", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)
		other := &models.Session{UserID: "agent_2", Role: constvars.RoleAgent, OrgID: "org_2"}

		_, err := uc.UpdateStatus(context.Background(), other, "req_1", &requests.UpdateServiceRequestStatus{Status: "validated"})

		assert.Equal(t, constvars.StatusForbidden, statusCode(t, err))
	})

	t.Run("owner cannot process their own request", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)

		_, err := uc.UpdateStatus(context.Background(), citizen, "req_1", &requests.UpdateServiceRequestStatus{Status: "validated"})

		assert.Equal(t, constvars.StatusForbidden, statusCode(t, err))
	})

	t.Run("concurrent change is rejected", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(underReview(), nil)
		deps.requests.On("UpdateStatus", mock.Anything, "req_1", models.RequestStatusUnderReview, models.RequestStatusRejected, mock.Anything).Return(false, nil)

		_, err := uc.UpdateStatus(context.Background(), agent, "req_1", &requests.UpdateServiceRequestStatus{Status: "rejected"})

		assert.Equal(t, constvars.StatusUnprocessableEntity, statusCode(t, err))
		deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestServiceRequestUsecase_Cancel(t *testing.T) {
	t.Run("pending request can be cancelled by its owner", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_1", OrgID: "org_1", Status: models.RequestStatusPending}, nil)
		deps.requests.On("UpdateStatus", mock.Anything, "req_1", models.RequestStatusPending, models.RequestStatusCancelled, mock.Anything).Return(true, nil)
		deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		cancelled, err := uc.Cancel(context.Background(), citizen, "req_1")

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusCancelled, cancelled.Status)
	})

	t.Run("request under review cannot be withdrawn", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_1", Status: models.RequestStatusSubmitted}, nil)

		_, err := uc.Cancel(context.Background(), citizen, "req_1")

		assert.Equal(t, constvars.StatusUnprocessableEntity, statusCode(t, err))
	})
}

func TestServiceRequestUsecase_FindByID(t *testing.T) {
	uc, deps := newTestUsecase()
	deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_1", OrgID: "org_1", Status: models.RequestStatusPendingCompletion}, nil)

	detail, err := uc.FindByID(context.Background(), citizen, "req_1")

	require.NoError(t, err)
	assert.Equal(t, PhaseCompletion, detail.Phase)
	assert.True(t, detail.RequiresUserAction)
	assert.False(t, detail.RequiresAgentAction)
	assert.Equal(t, []string{"edited", "cancelled"}, detail.ValidNextStatuses)
}

func TestServiceRequestUsecase_FindAll(t *testing.T) {
	pagination := requests.Pagination{Page: 1, PageSize: 20}

	t.Run("citizen lists own requests", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByUserID", mock.Anything, "user_1", pagination).Return([]models.ServiceRequest{{ID: "req_1"}}, 1, nil)

		result, total, err := uc.FindAll(context.Background(), citizen, &requests.ListServiceRequests{OrgID: "org_9", Pagination: pagination})

		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("agent lists own organization only", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByOrgID", mock.Anything, "org_1", models.RequestStatusPending, pagination).Return([]models.ServiceRequest{}, 0, nil)

		_, _, err := uc.FindAll(context.Background(), agent, &requests.ListServiceRequests{OrgID: "org_9", Status: "pending", Pagination: pagination})

		require.NoError(t, err)
		deps.requests.AssertExpectations(t)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, _, err := uc.FindAll(context.Background(), agent, &requests.ListServiceRequests{Status: "weird", Pagination: pagination})

		assert.Equal(t, constvars.StatusBadRequest, statusCode(t, err))
	})
}
