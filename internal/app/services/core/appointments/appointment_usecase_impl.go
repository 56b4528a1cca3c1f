package appointments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// bookingLockTTL bounds how long a crashed booking can hold a slot lock.
const bookingLockTTL = 10 * time.Second

type appointmentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	AgentScheduleRepository contracts.AgentScheduleRepository
	OrganizationRepository  contracts.OrganizationRepository
	OrgServiceRepository    contracts.OrgServiceRepository
	LockerService           contracts.LockerService
	NotificationPublisher   contracts.NotificationPublisher
	Log                     *zap.Logger
	now                     func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	agentScheduleRepository contracts.AgentScheduleRepository,
	organizationRepository contracts.OrganizationRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = newAppointmentUsecase(
			appointmentRepository,
			agentScheduleRepository,
			organizationRepository,
			orgServiceRepository,
			lockerService,
			notificationPublisher,
			logger,
		)
	})
	return appointmentUsecaseInstance
}

func newAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	agentScheduleRepository contracts.AgentScheduleRepository,
	organizationRepository contracts.OrganizationRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository:   appointmentRepository,
		AgentScheduleRepository: agentScheduleRepository,
		OrganizationRepository:  organizationRepository,
		OrgServiceRepository:    orgServiceRepository,
		LockerService:           lockerService,
		NotificationPublisher:   notificationPublisher,
		Log:                     logger,
		now:                     time.Now,
	}
}

func (uc *appointmentUsecase) GetAvailableSlots(ctx context.Context, request *requests.GetAvailableSlots) ([]models.AvailableSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingRequestKey, request),
	)

	org, service, err := uc.loadOrgService(ctx, request.OrgServiceID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.GetAvailableSlots error loading org service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	schedules, booked, err := uc.loadDay(ctx, org.ID, request.Date)
	if err != nil {
		uc.Log.Error("appointmentUsecase.GetAvailableSlots error loading day",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	slots, err := ComputeAvailableSlots(org, service, schedules, booked, request.Date, request.Type)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(slots)),
	)
	return slots, nil
}

func (uc *appointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	org, service, err := uc.loadOrgService(ctx, request.OrgServiceID)
	if err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyAppointmentLockFormat, org.ID, request.Date, request.StartTime)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, bookingLockTTL)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error acquiring slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotLocked(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.Book failed to release slot lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	schedules, booked, err := uc.loadDay(ctx, org.ID, request.Date)
	if err != nil {
		return nil, err
	}

	appointmentType := request.Type
	if appointmentType == "" {
		appointmentType = models.AppointmentTypeDeposit
	}

	plan, err := PlanBooking(org, service, schedules, booked, request.Date, request.StartTime, appointmentType, session.UserID)
	if err != nil {
		uc.Log.Info("appointmentUsecase.Book slot rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	appointment := &models.Appointment{
		ID:           primitive.NewObjectID().Hex(),
		OrgID:        org.ID,
		OrgServiceID: service.ID,
		RequestID:    request.RequestID,
		UserID:       session.UserID,
		AgentID:      plan.AgentID,
		Type:         appointmentType,
		Date:         request.Date,
		StartTime:    request.StartTime,
		EndTime:      plan.EndTime,
		Status:       models.AppointmentStatusConfirmed,
		Notes:        request.Notes,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := uc.AppointmentRepository.Create(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.Book error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordAppointmentBooked()

	uc.Log.Info("appointmentUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) FindMine(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	result, err := uc.AppointmentRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindMine error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

func (uc *appointmentUsecase) FindByOrgAndDate(ctx context.Context, session *models.Session, request *requests.ListOrgAppointments) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByOrgAndDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, request.OrgID),
	)

	if !session.CanManageOrg(request.OrgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("not staff of organization " + request.OrgID))
	}

	result, err := uc.AppointmentRepository.FindByOrgAndDate(ctx, request.OrgID, request.Date)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByOrgAndDate error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.FindByOrgAndDate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.changeStatus(ctx, session, appointmentID, models.AppointmentStatusCancelled, true)
}

func (uc *appointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.changeStatus(ctx, session, appointmentID, models.AppointmentStatusCompleted, false)
}

func (uc *appointmentUsecase) MarkNoShow(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.changeStatus(ctx, session, appointmentID, models.AppointmentStatusMissed, false)
}

func (uc *appointmentUsecase) UpsertAgentSchedule(ctx context.Context, session *models.Session, request *requests.UpsertAgentSchedule) (*models.AgentSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpsertAgentSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, request.OrgID),
	)

	if session.Role == constvars.RoleAgent || !session.CanManageOrg(request.OrgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("not admin of organization " + request.OrgID))
	}

	now := uc.now()
	schedule := &models.AgentSchedule{
		ID:             primitive.NewObjectID().Hex(),
		OrgID:          request.OrgID,
		AgentID:        request.AgentID,
		OrgServiceID:   request.OrgServiceID,
		IsActive:       request.IsActive,
		WeeklySchedule: make([]models.DaySchedule, 0, len(request.WeeklySchedule)),
		Exceptions:     make([]models.ScheduleException, 0, len(request.Exceptions)),
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, day := range request.WeeklySchedule {
		schedule.WeeklySchedule = append(schedule.WeeklySchedule, models.DaySchedule{
			Day:        day.Day,
			TimeRanges: toTimeRanges(day.TimeRanges),
		})
	}
	for _, exception := range request.Exceptions {
		schedule.Exceptions = append(schedule.Exceptions, models.ScheduleException{
			Date:       exception.Date,
			Available:  exception.Available,
			TimeRanges: toTimeRanges(exception.TimeRanges),
			Reason:     exception.Reason,
		})
	}

	if err := uc.AgentScheduleRepository.Upsert(ctx, schedule); err != nil {
		uc.Log.Error("appointmentUsecase.UpsertAgentSchedule error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.UpsertAgentSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("schedule_id", schedule.ID),
	)
	return schedule, nil
}

// SendReminders publishes a reminder for every confirmed appointment on date that has not
// been reminded yet and returns how many were sent.
func (uc *appointmentUsecase) SendReminders(ctx context.Context, date string) (int, error) {
	uc.Log.Info("appointmentUsecase.SendReminders called", zap.String("date", date))

	appointments, err := uc.AppointmentRepository.FindByStatusAndDate(ctx, models.AppointmentStatusConfirmed, date)
	if err != nil {
		uc.Log.Error("appointmentUsecase.SendReminders error fetching appointments", zap.Error(err))
		return 0, err
	}

	sent := 0
	for i := range appointments {
		appointment := &appointments[i]
		if appointment.ReminderSentAt != nil {
			continue
		}

		notification := &models.Notification{
			Type:            constvars.NotificationTypeAppointmentReminder,
			RecipientUserID: appointment.UserID,
			Subject:         fmt.Sprintf("Rappel : rendez-vous le %s à %s", appointment.Date, appointment.StartTime),
			Payload: map[string]any{
				"appointmentId": appointment.ID,
				"orgId":         appointment.OrgID,
				"date":          appointment.Date,
				"startTime":     appointment.StartTime,
				"endTime":       appointment.EndTime,
				"type":          appointment.Type,
			},
		}
		if err := uc.NotificationPublisher.Publish(ctx, notification); err != nil {
			uc.Log.Warn("appointmentUsecase.SendReminders failed to publish reminder",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
			continue
		}
		if err := uc.AppointmentRepository.MarkReminderSent(ctx, appointment.ID, uc.now()); err != nil {
			uc.Log.Warn("appointmentUsecase.SendReminders failed to mark reminder sent",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
		sent++
	}

	uc.Log.Info("appointmentUsecase.SendReminders succeeded",
		zap.String("date", date),
		zap.Int(constvars.LoggingCountKey, sent),
	)
	return sent, nil
}

// changeStatus moves a pending or confirmed appointment to a closing status. Only cancellation
// is open to the attendee; the other statuses are set by staff of the organization.
func (uc *appointmentUsecase) changeStatus(ctx context.Context, session *models.Session, appointmentID string, to models.AppointmentStatus, ownerAllowed bool) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.changeStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, string(to)),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "appointment")
	}

	isOwner := ownerAllowed && appointment.UserID == session.UserID
	if !isOwner && !session.CanManageOrg(appointment.OrgID) {
		return nil, exceptions.ErrNotResourceOwner(errors.New("appointment " + appointmentID))
	}

	if appointment.Status != models.AppointmentStatusConfirmed && appointment.Status != models.AppointmentStatusPending {
		return nil, exceptions.ErrAppointmentNotModifiable(nil, string(appointment.Status), string(to))
	}

	now := uc.now()
	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, to, now); err != nil {
		uc.Log.Error("appointmentUsecase.changeStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment.Status = to
	appointment.UpdatedAt = now
	switch to {
	case models.AppointmentStatusCancelled:
		appointment.CancelledAt = &now
	case models.AppointmentStatusCompleted:
		appointment.CompletedAt = &now
	}

	uc.Log.Info("appointmentUsecase.changeStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) loadOrgService(ctx context.Context, orgServiceID string) (*models.Organization, *models.OrgService, error) {
	service, err := uc.OrgServiceRepository.FindByID(ctx, orgServiceID)
	if err != nil {
		return nil, nil, err
	}
	if service == nil || !service.IsActive {
		return nil, nil, exceptions.ErrResourceNotFound(nil, "service")
	}

	org, err := uc.OrganizationRepository.FindByID(ctx, service.OrgID)
	if err != nil {
		return nil, nil, err
	}
	if org == nil {
		return nil, nil, exceptions.ErrResourceNotFound(nil, "organization")
	}
	return org, service, nil
}

func (uc *appointmentUsecase) loadDay(ctx context.Context, orgID, date string) ([]models.AgentSchedule, []models.Appointment, error) {
	schedules, err := uc.AgentScheduleRepository.FindActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}
	booked, err := uc.AppointmentRepository.FindByOrgAndDate(ctx, orgID, date)
	if err != nil {
		return nil, nil, err
	}
	return schedules, booked, nil
}

func toTimeRanges(ranges []requests.TimeRange) []models.TimeRange {
	result := make([]models.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, models.TimeRange{Start: r.Start, End: r.End})
	}
	return result
}
