package tickets

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

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var (
	owner      = &models.Session{UserID: "user_1", Role: constvars.RoleCitizen}
	stranger   = &models.Session{UserID: "user_2", Role: constvars.RoleCitizen}
	superadmin = &models.Session{UserID: "root_1", Role: constvars.RoleSuperadmin}
)

func newTestUsecase() (*ticketUsecase, *mocks.TicketRepository, *mocks.NotificationPublisher) {
	repo := new(mocks.TicketRepository)
	publisher := new(mocks.NotificationPublisher)
	uc := newTicketUsecase(repo, publisher, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, repo, publisher
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func ticketWithStatus(status models.TicketStatus) *models.Ticket {
	return &models.Ticket{ID: "tck_1", Reference: "TCK-1-ABCD", UserID: "user_1", Status: status}
}

func TestTicketUsecase_Create(t *testing.T) {
	uc, repo, _ := newTestUsecase()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil)

	ticket, err := uc.Create(context.Background(), owner, &requests.CreateTicket{Subject: "Accès", Description: "Je ne peux pas me connecter", Category: "account"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.Reference, "TCK-"))
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, "user_1", ticket.UserID)
}

func TestTicketUsecase_FindByID(t *testing.T) {
	t.Run("owner sees messages", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusOpen), nil)
		repo.On("FindMessages", mock.Anything, "tck_1").Return([]models.TicketMessage{{ID: "msg_1"}}, nil)

		ticket, err := uc.FindByID(context.Background(), owner, "tck_1")
		require.NoError(t, err)
		assert.Len(t, ticket.Messages, 1)
	})

	t.Run("other citizens are rejected", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusOpen), nil)

		_, err := uc.FindByID(context.Background(), stranger, "tck_1")
		assert.Equal(t, 403, statusCode(t, err))
	})

	t.Run("missing ticket", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_x").Return(nil, nil)

		_, err := uc.FindByID(context.Background(), superadmin, "tck_x")
		assert.Equal(t, 404, statusCode(t, err))
	})
}

func TestTicketUsecase_AddMessage(t *testing.T) {
	request := &requests.AddTicketMessage{Content: "Merci"}

	t.Run("owner reply resumes a ticket waiting for them", func(t *testing.T) {
		uc, repo, publisher := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusWaitingForUser), nil)
		repo.On("AddMessage", mock.Anything, mock.MatchedBy(func(m *models.TicketMessage) bool { return !m.IsStaff })).Return(nil)
		repo.On("UpdateStatus", mock.Anything, "tck_1", models.TicketStatusInProgress, (*time.Time)(nil), (*time.Time)(nil)).Return(nil)

		message, err := uc.AddMessage(context.Background(), owner, "tck_1", request)
		require.NoError(t, err)
		assert.False(t, message.IsStaff)
		repo.AssertExpectations(t)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("staff reply is flagged and notifies the owner", func(t *testing.T) {
		uc, repo, publisher := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusInProgress), nil)
		repo.On("AddMessage", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.RecipientUserID == "user_1" && n.Type == constvars.NotificationTypeTicketReplied
		})).Return(nil)

		message, err := uc.AddMessage(context.Background(), superadmin, "tck_1", request)
		require.NoError(t, err)
		assert.True(t, message.IsStaff)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTicketUsecase_UpdateStatus(t *testing.T) {
	t.Run("resolved stamps resolvedAt", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusInProgress), nil)
		repo.On("UpdateStatus", mock.Anything, "tck_1", models.TicketStatusResolved, mock.MatchedBy(func(at *time.Time) bool {
			return at != nil && at.Equal(fixedNow)
		}), (*time.Time)(nil)).Return(nil)

		ticket, err := uc.UpdateStatus(context.Background(), superadmin, "tck_1", &requests.UpdateTicketStatus{Status: "resolved"})
		require.NoError(t, err)
		assert.Equal(t, models.TicketStatusResolved, ticket.Status)
		require.NotNil(t, ticket.ResolvedAt)
		assert.Nil(t, ticket.ClosedAt)
	})

	t.Run("citizens cannot change status", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		_, err := uc.UpdateStatus(context.Background(), owner, "tck_1", &requests.UpdateTicketStatus{Status: "closed"})
		assert.Equal(t, 403, statusCode(t, err))
	})
}

func TestTicketUsecase_Assign(t *testing.T) {
	t.Run("open ticket moves to in progress", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusOpen), nil)
		repo.On("Assign", mock.Anything, "tck_1", "agent_7", models.TicketStatusInProgress).Return(nil)

		ticket, err := uc.Assign(context.Background(), superadmin, "tck_1", &requests.AssignTicket{AgentID: "agent_7"})
		require.NoError(t, err)
		assert.Equal(t, "agent_7", ticket.AssignedTo)
		assert.Equal(t, models.TicketStatusInProgress, ticket.Status)
	})

	t.Run("other statuses are kept", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()
		repo.On("FindByID", mock.Anything, "tck_1").Return(ticketWithStatus(models.TicketStatusWaitingForUser), nil)
		repo.On("Assign", mock.Anything, "tck_1", "agent_7", models.TicketStatusWaitingForUser).Return(nil)

		ticket, err := uc.Assign(context.Background(), superadmin, "tck_1", &requests.AssignTicket{AgentID: "agent_7"})
		require.NoError(t, err)
		assert.Equal(t, models.TicketStatusWaitingForUser, ticket.Status)
	})
}
