package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"context"
	"time"
)

type TicketUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreateTicket) (*models.Ticket, error)
	FindMine(ctx context.Context, session *models.Session) ([]models.Ticket, error)
	FindAll(ctx context.Context, status string) ([]models.Ticket, error)
	FindByID(ctx context.Context, session *models.Session, ticketID string) (*models.Ticket, error)
	AddMessage(ctx context.Context, session *models.Session, ticketID string, request *requests.AddTicketMessage) (*models.TicketMessage, error)
	UpdateStatus(ctx context.Context, session *models.Session, ticketID string, request *requests.UpdateTicketStatus) (*models.Ticket, error)
	Assign(ctx context.Context, session *models.Session, ticketID string, request *requests.AssignTicket) (*models.Ticket, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Ticket, error)
	FindAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error)
	FindMessages(ctx context.Context, ticketID string) ([]models.TicketMessage, error)
	AddMessage(ctx context.Context, message *models.TicketMessage) error
	UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus, resolvedAt, closedAt *time.Time) error
	Assign(ctx context.Context, ticketID, agentID string, status models.TicketStatus) error
}
