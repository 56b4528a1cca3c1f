package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"context"
	"time"
)

type AppointmentUsecase interface {
	GetAvailableSlots(ctx context.Context, request *requests.GetAvailableSlots) ([]models.AvailableSlot, error)
	Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error)
	FindMine(ctx context.Context, session *models.Session) ([]models.Appointment, error)
	FindByOrgAndDate(ctx context.Context, session *models.Session, request *requests.ListOrgAppointments) ([]models.Appointment, error)
	Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	Complete(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	MarkNoShow(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	UpsertAgentSchedule(ctx context.Context, session *models.Session, request *requests.UpsertAgentSchedule) (*models.AgentSchedule, error)
	SendReminders(ctx context.Context, date string) (int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindByOrgAndDate(ctx context.Context, orgID, date string) ([]models.Appointment, error)
	FindByStatusAndDate(ctx context.Context, status models.AppointmentStatus, date string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, at time.Time) error
	MarkReminderSent(ctx context.Context, appointmentID string, at time.Time) error
	CountByOrgAndDate(ctx context.Context, orgID, date string) (int64, error)
}

type AgentScheduleRepository interface {
	FindActiveByOrgID(ctx context.Context, orgID string) ([]models.AgentSchedule, error)
	Upsert(ctx context.Context, schedule *models.AgentSchedule) error
}
