package tickets

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ticketPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	ticketPostgresRepositoryInstance contracts.TicketRepository
	onceTicketPostgresRepository     sync.Once
)

func NewTicketPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.TicketRepository {
	onceTicketPostgresRepository.Do(func() {
		ticketPostgresRepositoryInstance = &ticketPostgresRepository{
			DB:  db,
			Log: logger,
		}
	})
	return ticketPostgresRepositoryInstance
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var ticket models.Ticket
	var resolvedAt, closedAt sql.NullTime
	err := row.Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.UserID,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Category,
		&ticket.Status,
		&ticket.Priority,
		&ticket.AssignedTo,
		&resolvedAt,
		&closedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if resolvedAt.Valid {
		ticket.ResolvedAt = &resolvedAt.Time
	}
	if closedAt.Valid {
		ticket.ClosedAt = &closedAt.Time
	}
	return &ticket, nil
}

func (repo *ticketPostgresRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("ticketPostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticket.ID),
	)

	_, err := repo.DB.ExecContext(ctx, queries.InsertTicket,
		ticket.ID,
		ticket.Reference,
		ticket.UserID,
		ticket.Subject,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedAt,
	)
	if err != nil {
		repo.Log.Error("ticketPostgresRepository.Create error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *ticketPostgresRepository) FindByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("ticketPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
	)

	ticket, err := scanTicket(repo.DB.QueryRowContext(ctx, queries.GetTicketByID, ticketID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		repo.Log.Error("ticketPostgresRepository.FindByID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return ticket, nil
}

func (repo *ticketPostgresRepository) FindByUserID(ctx context.Context, userID string) ([]models.Ticket, error) {
	return repo.findMany(ctx, "FindByUserID", queries.GetTicketsByUserID, userID)
}

func (repo *ticketPostgresRepository) FindAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	return repo.findMany(ctx, "FindAll", queries.GetAllTickets, string(status))
}

func (repo *ticketPostgresRepository) FindMessages(ctx context.Context, ticketID string) ([]models.TicketMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	rows, err := repo.DB.QueryContext(ctx, queries.GetTicketMessagesByTicketID, ticketID)
	if err != nil {
		repo.Log.Error("ticketPostgresRepository.FindMessages error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	messages := []models.TicketMessage{}
	for rows.Next() {
		var message models.TicketMessage
		if err := rows.Scan(&message.ID, &message.TicketID, &message.SenderID, &message.Content, &message.IsStaff, &message.CreatedAt); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return messages, nil
}

// AddMessage stores the message and bumps the ticket's updated_at in one transaction.
func (repo *ticketPostgresRepository) AddMessage(ctx context.Context, message *models.TicketMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("ticketPostgresRepository.AddMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, message.TicketID),
	)

	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, queries.InsertTicketMessage,
		message.ID,
		message.TicketID,
		message.SenderID,
		message.Content,
		message.IsStaff,
		message.CreatedAt,
	); err != nil {
		repo.Log.Error("ticketPostgresRepository.AddMessage error inserting message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	if _, err := tx.ExecContext(ctx, queries.TouchTicket, message.TicketID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *ticketPostgresRepository) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus, resolvedAt, closedAt *time.Time) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("ticketPostgresRepository.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
		zap.String(constvars.LoggingStatusKey, string(status)),
	)

	if _, err := repo.DB.ExecContext(ctx, queries.UpdateTicketStatus, string(status), resolvedAt, closedAt, ticketID); err != nil {
		repo.Log.Error("ticketPostgresRepository.UpdateStatus error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *ticketPostgresRepository) Assign(ctx context.Context, ticketID, agentID string, status models.TicketStatus) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if _, err := repo.DB.ExecContext(ctx, queries.AssignTicket, agentID, string(status), ticketID); err != nil {
		repo.Log.Error("ticketPostgresRepository.Assign error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *ticketPostgresRepository) findMany(ctx context.Context, method, query string, arg string) ([]models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("ticketPostgresRepository."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rows, err := repo.DB.QueryContext(ctx, query, arg)
	if err != nil {
		repo.Log.Error("ticketPostgresRepository."+method+" error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		tickets = append(tickets, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	repo.Log.Info("ticketPostgresRepository."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(tickets)),
	)
	return tickets, nil
}
