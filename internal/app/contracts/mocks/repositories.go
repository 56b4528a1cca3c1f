// Package mocks holds testify mocks of the contracts shared by usecase tests.
package mocks

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *ProfileRepository) UpdateLocation(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

type OrganizationRepository struct{ mock.Mock }

func (m *OrganizationRepository) FindAll(ctx context.Context) ([]models.Organization, error) {
	args := m.Called(ctx)
	orgs, _ := args.Get(0).([]models.Organization)
	return orgs, args.Error(1)
}

func (m *OrganizationRepository) FindByID(ctx context.Context, orgID string) (*models.Organization, error) {
	args := m.Called(ctx, orgID)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

func (m *OrganizationRepository) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	args := m.Called(ctx, slug)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

func (m *OrganizationRepository) FindByJurisdiction(ctx context.Context, country string) (*models.Organization, error) {
	args := m.Called(ctx, country)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

type OrgServiceRepository struct{ mock.Mock }

func (m *OrgServiceRepository) FindByID(ctx context.Context, orgServiceID string) (*models.OrgService, error) {
	args := m.Called(ctx, orgServiceID)
	service, _ := args.Get(0).(*models.OrgService)
	return service, args.Error(1)
}

func (m *OrgServiceRepository) FindByOrgID(ctx context.Context, orgID string) ([]models.OrgService, error) {
	args := m.Called(ctx, orgID)
	services, _ := args.Get(0).([]models.OrgService)
	return services, args.Error(1)
}

type ServiceRequestRepository struct{ mock.Mock }

func (m *ServiceRequestRepository) Create(ctx context.Context, request *models.ServiceRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *ServiceRequestRepository) FindByID(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*models.ServiceRequest)
	return request, args.Error(1)
}

func (m *ServiceRequestRepository) FindByUserID(ctx context.Context, userID string, pagination requests.Pagination) ([]models.ServiceRequest, int, error) {
	args := m.Called(ctx, userID, pagination)
	result, _ := args.Get(0).([]models.ServiceRequest)
	return result, args.Int(1), args.Error(2)
}

func (m *ServiceRequestRepository) FindByOrgID(ctx context.Context, orgID string, status models.RequestStatus, pagination requests.Pagination) ([]models.ServiceRequest, int, error) {
	args := m.Called(ctx, orgID, status, pagination)
	result, _ := args.Get(0).([]models.ServiceRequest)
	return result, args.Int(1), args.Error(2)
}

func (m *ServiceRequestRepository) UpdateStatus(ctx context.Context, requestID string, from, to models.RequestStatus, activity models.Activity) (bool, error) {
	args := m.Called(ctx, requestID, from, to, activity)
	return args.Bool(0), args.Error(1)
}

func (m *ServiceRequestRepository) UpdatePaymentStatus(ctx context.Context, requestID string, status models.PaymentStatus) error {
	return m.Called(ctx, requestID, status).Error(0)
}

func (m *ServiceRequestRepository) CountByStatus(ctx context.Context, orgID string) (map[models.RequestStatus]int64, error) {
	args := m.Called(ctx, orgID)
	counts, _ := args.Get(0).(map[models.RequestStatus]int64)
	return counts, args.Error(1)
}

type AppointmentRepository struct{ mock.Mock }

func (m *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) FindByOrgAndDate(ctx context.Context, orgID, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, orgID, date)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) FindByStatusAndDate(ctx context.Context, status models.AppointmentStatus, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, status, date)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, at time.Time) error {
	return m.Called(ctx, appointmentID, status, at).Error(0)
}

func (m *AppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID string, at time.Time) error {
	return m.Called(ctx, appointmentID, at).Error(0)
}

func (m *AppointmentRepository) CountByOrgAndDate(ctx context.Context, orgID, date string) (int64, error) {
	args := m.Called(ctx, orgID, date)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type AgentScheduleRepository struct{ mock.Mock }

func (m *AgentScheduleRepository) FindActiveByOrgID(ctx context.Context, orgID string) ([]models.AgentSchedule, error) {
	args := m.Called(ctx, orgID)
	schedules, _ := args.Get(0).([]models.AgentSchedule)
	return schedules, args.Error(1)
}

func (m *AgentScheduleRepository) Upsert(ctx context.Context, schedule *models.AgentSchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

type PaymentRepository struct{ mock.Mock }

func (m *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentIntentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentRepository) FindLatestByRequestID(ctx context.Context, requestID string) (*models.Payment, error) {
	args := m.Called(ctx, requestID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentRepository) FindByOrgID(ctx context.Context, orgID string, status models.PaymentStatus, limit int) ([]models.Payment, error) {
	args := m.Called(ctx, orgID, status, limit)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *PaymentRepository) UpdateStatus(ctx context.Context, paymentIntentID string, status models.PaymentStatus, at time.Time) error {
	return m.Called(ctx, paymentIntentID, status, at).Error(0)
}

func (m *PaymentRepository) GetStatsByOrgID(ctx context.Context, orgID string, monthStart time.Time) (*models.PaymentStats, error) {
	args := m.Called(ctx, orgID, monthStart)
	stats, _ := args.Get(0).(*models.PaymentStats)
	return stats, args.Error(1)
}

type DocumentRepository struct{ mock.Mock }

func (m *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	return m.Called(ctx, document).Error(0)
}

func (m *DocumentRepository) FindByID(ctx context.Context, documentID string) (*models.Document, error) {
	args := m.Called(ctx, documentID)
	document, _ := args.Get(0).(*models.Document)
	return document, args.Error(1)
}

func (m *DocumentRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]models.Document, error) {
	args := m.Called(ctx, ownerID)
	documents, _ := args.Get(0).([]models.Document)
	return documents, args.Error(1)
}

func (m *DocumentRepository) UpdateAnalysis(ctx context.Context, documentID string, analysis *models.DocumentAnalysis) error {
	return m.Called(ctx, documentID, analysis).Error(0)
}

type TicketRepository struct{ mock.Mock }

func (m *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *TicketRepository) FindByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, ticketID)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

func (m *TicketRepository) FindByUserID(ctx context.Context, userID string) ([]models.Ticket, error) {
	args := m.Called(ctx, userID)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *TicketRepository) FindAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	args := m.Called(ctx, status)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *TicketRepository) FindMessages(ctx context.Context, ticketID string) ([]models.TicketMessage, error) {
	args := m.Called(ctx, ticketID)
	messages, _ := args.Get(0).([]models.TicketMessage)
	return messages, args.Error(1)
}

func (m *TicketRepository) AddMessage(ctx context.Context, message *models.TicketMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *TicketRepository) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus, resolvedAt, closedAt *time.Time) error {
	return m.Called(ctx, ticketID, status, resolvedAt, closedAt).Error(0)
}

func (m *TicketRepository) Assign(ctx context.Context, ticketID, agentID string, status models.TicketStatus) error {
	return m.Called(ctx, ticketID, agentID, status).Error(0)
}
