package tickets

import (
	"consulat-service/internal/app/models"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) (*ticketPostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &ticketPostgresRepository{DB: db, Log: zap.NewNop()}, mock
}

func TestTicketPostgresRepository_AddMessage(t *testing.T) {
	message := &models.TicketMessage{
		ID:        "msg_1",
		TicketID:  "tck_1",
		SenderID:  "user_1",
		Content:   "Bonjour",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("inserts and touches the ticket in one transaction", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_messages")).
			WithArgs("msg_1", "tck_1", "user_1", "Bonjour", false, message.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets")).
			WithArgs("tck_1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.AddMessage(context.Background(), message))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the insert fails", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_messages")).WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		assert.Error(t, repo.AddMessage(context.Background(), message))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTicketPostgresRepository_FindAll(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "reference", "user_id", "subject", "description", "category", "status", "priority", "assigned_to", "resolved_at", "closed_at", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM tickets")).
		WithArgs("open").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("tck_1", "TCK-1", "user_1", "Sujet", "Texte", "other", "open", "medium", "", nil, nil, created, created))

	tickets, err := repo.FindAll(context.Background(), models.TicketStatusOpen)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "TCK-1", tickets[0].Reference)
	assert.Nil(t, tickets[0].ResolvedAt)
}
