package statistics

import (
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

func newTestUsecase() (*statisticsUsecase, *mocks.ServiceRequestRepository, *mocks.AppointmentRepository, *mocks.PaymentRepository) {
	requests := new(mocks.ServiceRequestRepository)
	appointments := new(mocks.AppointmentRepository)
	payments := new(mocks.PaymentRepository)
	uc := newStatisticsUsecase(requests, appointments, payments, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, requests, appointments, payments
}

func TestStatisticsUsecase_GetOrgStatistics(t *testing.T) {
	admin := &models.Session{UserID: "admin_1", Role: constvars.RoleAdmin, OrgID: "org_1"}

	t.Run("aggregates counters", func(t *testing.T) {
		uc, requests, appointments, payments := newTestUsecase()
		requests.On("CountByStatus", mock.Anything, "org_1").Return(map[models.RequestStatus]int64{
			models.RequestStatusSubmitted:   3,
			models.RequestStatusUnderReview: 2,
			models.RequestStatusCompleted:   7,
		}, nil)
		appointments.On("CountByOrgAndDate", mock.Anything, "org_1", "2024-06-12").Return(int64(4), nil)
		payments.On("GetStatsByOrgID", mock.Anything, "org_1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).
			Return(&models.PaymentStats{TotalRevenue: 12000, SuccessCount: 3}, nil)

		stats, err := uc.GetOrgStatistics(context.Background(), admin, "org_1")
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.AwaitingAgentAction)
		assert.Equal(t, int64(4), stats.AppointmentsToday)
		assert.Equal(t, int64(12000), stats.Payments.TotalRevenue)
		assert.Equal(t, int64(7), stats.RequestsByStatus[models.RequestStatusCompleted])
	})

	t.Run("one failing counter fails the whole call", func(t *testing.T) {
		uc, requests, appointments, payments := newTestUsecase()
		requests.On("CountByStatus", mock.Anything, "org_1").Return(map[models.RequestStatus]int64{}, nil)
		appointments.On("CountByOrgAndDate", mock.Anything, "org_1", mock.Anything).Return(int64(0), errors.New("mongo down"))
		payments.On("GetStatsByOrgID", mock.Anything, "org_1", mock.Anything).Return(&models.PaymentStats{}, nil)

		_, err := uc.GetOrgStatistics(context.Background(), admin, "org_1")
		assert.EqualError(t, err, "mongo down")
	})

	t.Run("staff of another org", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase()

		_, err := uc.GetOrgStatistics(context.Background(), admin, "org_2")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 403, customErr.StatusCode)
	})
}
