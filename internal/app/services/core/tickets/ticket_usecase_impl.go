package tickets

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ticketUsecase struct {
	TicketRepository      contracts.TicketRepository
	NotificationPublisher contracts.NotificationPublisher
	Log                   *zap.Logger
	now                   func() time.Time
}

var (
	ticketUsecaseInstance contracts.TicketUsecase
	onceTicketUsecase     sync.Once
)

func NewTicketUsecase(ticketRepository contracts.TicketRepository, notificationPublisher contracts.NotificationPublisher, logger *zap.Logger) contracts.TicketUsecase {
	onceTicketUsecase.Do(func() {
		ticketUsecaseInstance = newTicketUsecase(ticketRepository, notificationPublisher, logger)
	})
	return ticketUsecaseInstance
}

func newTicketUsecase(ticketRepository contracts.TicketRepository, notificationPublisher contracts.NotificationPublisher, logger *zap.Logger) *ticketUsecase {
	return &ticketUsecase{
		TicketRepository:      ticketRepository,
		NotificationPublisher: notificationPublisher,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *ticketUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateTicket) (*models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	priority := request.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	now := uc.now()
	ticket := &models.Ticket{
		ID:          uuid.NewString(),
		Reference:   utils.GenerateReference(constvars.TicketReferencePrefix, now),
		UserID:      session.UserID,
		Subject:     request.Subject,
		Description: request.Description,
		Category:    request.Category,
		Status:      models.TicketStatusOpen,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.TicketRepository.Create(ctx, ticket); err != nil {
		uc.Log.Error("ticketUsecase.Create error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("ticketUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticket.ID),
	)
	return ticket, nil
}

func (uc *ticketUsecase) FindMine(ctx context.Context, session *models.Session) ([]models.Ticket, error) {
	return uc.TicketRepository.FindByUserID(ctx, session.UserID)
}

func (uc *ticketUsecase) FindAll(ctx context.Context, status string) ([]models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, status),
	)
	return uc.TicketRepository.FindAll(ctx, models.TicketStatus(status))
}

func (uc *ticketUsecase) FindByID(ctx context.Context, session *models.Session, ticketID string) (*models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
	)

	ticket, err := uc.findAccessible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.TicketRepository.FindMessages(ctx, ticket.ID)
	if err != nil {
		uc.Log.Error("ticketUsecase.FindByID error fetching messages",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	ticket.Messages = messages
	return ticket, nil
}

// AddMessage appends a reply. A reply from the owner while the ticket waits on them puts it back
// in progress; a staff reply notifies the owner.
func (uc *ticketUsecase) AddMessage(ctx context.Context, session *models.Session, ticketID string, request *requests.AddTicketMessage) (*models.TicketMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.AddMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
	)

	ticket, err := uc.findAccessible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}

	isOwner := ticket.UserID == session.UserID
	message := &models.TicketMessage{
		ID:        uuid.NewString(),
		TicketID:  ticket.ID,
		SenderID:  session.UserID,
		Content:   request.Content,
		IsStaff:   session.IsSuperadmin() && !isOwner,
		CreatedAt: uc.now(),
	}
	if err := uc.TicketRepository.AddMessage(ctx, message); err != nil {
		uc.Log.Error("ticketUsecase.AddMessage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if isOwner && ticket.Status == models.TicketStatusWaitingForUser {
		if err := uc.TicketRepository.UpdateStatus(ctx, ticket.ID, models.TicketStatusInProgress, nil, nil); err != nil {
			return nil, err
		}
	}

	if message.IsStaff {
		notification := &models.Notification{
			Type:            constvars.NotificationTypeTicketReplied,
			RecipientUserID: ticket.UserID,
			Subject:         fmt.Sprintf("Ticket %s : nouvelle réponse", ticket.Reference),
			Payload: map[string]any{
				"ticketId":  ticket.ID,
				"reference": ticket.Reference,
			},
		}
		if err := uc.NotificationPublisher.Publish(ctx, notification); err != nil {
			uc.Log.Warn("ticketUsecase.AddMessage failed to publish notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
	return message, nil
}

func (uc *ticketUsecase) UpdateStatus(ctx context.Context, session *models.Session, ticketID string, request *requests.UpdateTicketStatus) (*models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	if !session.IsSuperadmin() {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("ticket status changes are reserved to superadmins"))
	}
	ticket, err := uc.findAccessible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}

	status := models.TicketStatus(request.Status)
	now := uc.now()
	var resolvedAt, closedAt *time.Time
	switch status {
	case models.TicketStatusResolved:
		resolvedAt = &now
	case models.TicketStatusClosed:
		closedAt = &now
	}

	if err := uc.TicketRepository.UpdateStatus(ctx, ticket.ID, status, resolvedAt, closedAt); err != nil {
		uc.Log.Error("ticketUsecase.UpdateStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	ticket.Status = status
	ticket.UpdatedAt = now
	if resolvedAt != nil {
		ticket.ResolvedAt = resolvedAt
	}
	if closedAt != nil {
		ticket.ClosedAt = closedAt
	}
	return ticket, nil
}

func (uc *ticketUsecase) Assign(ctx context.Context, session *models.Session, ticketID string, request *requests.AssignTicket) (*models.Ticket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("ticketUsecase.Assign called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketIDKey, ticketID),
	)

	if !session.IsSuperadmin() {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("ticket assignment is reserved to superadmins"))
	}
	ticket, err := uc.findAccessible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}

	status := ticket.Status
	if status == models.TicketStatusOpen {
		status = models.TicketStatusInProgress
	}
	if err := uc.TicketRepository.Assign(ctx, ticket.ID, request.AgentID, status); err != nil {
		uc.Log.Error("ticketUsecase.Assign error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	ticket.AssignedTo = request.AgentID
	ticket.Status = status
	ticket.UpdatedAt = uc.now()
	return ticket, nil
}

func (uc *ticketUsecase) findAccessible(ctx context.Context, session *models.Session, ticketID string) (*models.Ticket, error) {
	ticket, err := uc.TicketRepository.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "ticket")
	}
	if ticket.UserID != session.UserID && !session.IsSuperadmin() {
		return nil, exceptions.ErrNotResourceOwner(errors.New("ticket " + ticketID))
	}
	return ticket, nil
}
