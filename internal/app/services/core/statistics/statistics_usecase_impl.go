package statistics

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	servicerequests "consulat-service/internal/app/services/core/service_requests"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type statisticsUsecase struct {
	ServiceRequestRepository contracts.ServiceRequestRepository
	AppointmentRepository    contracts.AppointmentRepository
	PaymentRepository        contracts.PaymentRepository
	Log                      *zap.Logger
	now                      func() time.Time
}

var (
	statisticsUsecaseInstance contracts.StatisticsUsecase
	onceStatisticsUsecase     sync.Once
)

func NewStatisticsUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	logger *zap.Logger,
) contracts.StatisticsUsecase {
	onceStatisticsUsecase.Do(func() {
		statisticsUsecaseInstance = newStatisticsUsecase(serviceRequestRepository, appointmentRepository, paymentRepository, logger)
	})
	return statisticsUsecaseInstance
}

func newStatisticsUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	logger *zap.Logger,
) *statisticsUsecase {
	return &statisticsUsecase{
		ServiceRequestRepository: serviceRequestRepository,
		AppointmentRepository:    appointmentRepository,
		PaymentRepository:        paymentRepository,
		Log:                      logger,
		now:                      time.Now,
	}
}

// GetOrgStatistics fetches the independent counters concurrently and fails as a whole when one fails.
func (uc *statisticsUsecase) GetOrgStatistics(ctx context.Context, session *models.Session, orgID string) (*models.OrgStatistics, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("statisticsUsecase.GetOrgStatistics called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
	)

	if !session.CanManageOrg(orgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("statistics are reserved to the organization's staff"))
	}

	now := uc.now()
	today := now.Format(time.DateOnly)

	var (
		byStatus          map[models.RequestStatus]int64
		appointmentsToday int64
		payments          *models.PaymentStats
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		byStatus, err = uc.ServiceRequestRepository.CountByStatus(groupCtx, orgID)
		return err
	})
	group.Go(func() error {
		var err error
		appointmentsToday, err = uc.AppointmentRepository.CountByOrgAndDate(groupCtx, orgID, today)
		return err
	})
	group.Go(func() error {
		var err error
		payments, err = uc.PaymentRepository.GetStatsByOrgID(groupCtx, orgID, utils.StartOfMonth(now))
		return err
	})
	if err := group.Wait(); err != nil {
		uc.Log.Error("statisticsUsecase.GetOrgStatistics error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if byStatus == nil {
		byStatus = map[models.RequestStatus]int64{}
	}
	var awaiting int64
	for _, status := range servicerequests.AgentActionStatuses() {
		awaiting += byStatus[status]
	}
	if payments == nil {
		payments = &models.PaymentStats{}
	}

	return &models.OrgStatistics{
		OrgID:               orgID,
		RequestsByStatus:    byStatus,
		AwaitingAgentAction: awaiting,
		AppointmentsToday:   appointmentsToday,
		Payments:            payments,
	}, nil
}
