package territoriality

import (
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
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

func newTestUsecase() (*territorialityUsecase, *mocks.ProfileRepository, *mocks.OrganizationRepository, *mocks.NotificationPublisher) {
	profiles := new(mocks.ProfileRepository)
	orgs := new(mocks.OrganizationRepository)
	publisher := new(mocks.NotificationPublisher)
	uc := newTerritorialityUsecase(profiles, orgs, publisher, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return uc, profiles, orgs, publisher
}

func gabonese() *models.Profile {
	return &models.Profile{
		ID:               "profile_1",
		UserID:           "user_1",
		FirstName:        "Ada",
		LastName:         "Mba",
		ResidenceCountry: "GA",
		ManagedByOrgID:   "org_libreville",
		SignaledToOrgID:  "org_old",
	}
}

func TestTerritorialityUsecase_Evaluate(t *testing.T) {
	uc, _, _, _ := newTestUsecase()

	decision, err := uc.Evaluate(context.Background(), &requests.EvaluateTerritoriality{
		ResidenceCountry:   "GA",
		CurrentLocation:    "FR",
		StayDurationMonths: 6,
	})

	require.NoError(t, err)
	assert.True(t, decision.ShouldTransferToCurrentLocation)
	assert.False(t, decision.ShouldSignalToCurrentLocation)
}

func TestTerritorialityUsecase_UpdateProfileLocation(t *testing.T) {
	session := &models.Session{UserID: "user_1", Role: constvars.RoleCitizen}

	t.Run("long stay transfers management", func(t *testing.T) {
		uc, profiles, orgs, publisher := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(gabonese(), nil)
		orgs.On("FindByJurisdiction", mock.Anything, "FR").Return(&models.Organization{ID: "org_paris"}, nil)
		profiles.On("UpdateLocation", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.ManagedByOrgID == "org_paris" && p.SignaledToOrgID == "" && p.CurrentLocation == "FR" && p.StayDurationMonths == 9
		})).Return(nil)

		result, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "fr", StayDurationMonths: 9})

		require.NoError(t, err)
		assert.True(t, result.Decision.ShouldTransferToCurrentLocation)
		assert.NotNil(t, result.Profile.LocationUpdatedAt)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		profiles.AssertExpectations(t)
	})

	t.Run("transfer without a local organization fails", func(t *testing.T) {
		uc, profiles, orgs, _ := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(gabonese(), nil)
		orgs.On("FindByJurisdiction", mock.Anything, "JP").Return(nil, nil)

		_, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "JP", StayDurationMonths: 12})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		profiles.AssertNotCalled(t, "UpdateLocation", mock.Anything, mock.Anything)
	})

	t.Run("short stay signals presence and notifies", func(t *testing.T) {
		uc, profiles, orgs, publisher := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(gabonese(), nil)
		orgs.On("FindByJurisdiction", mock.Anything, "FR").Return(&models.Organization{ID: "org_paris"}, nil)
		profiles.On("UpdateLocation", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.ManagedByOrgID == "org_libreville" && p.SignaledToOrgID == "org_paris"
		})).Return(nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Type == constvars.NotificationTypePresenceSignaled && n.RecipientOrgID == "org_paris"
		})).Return(nil)

		result, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "FR", StayDurationMonths: 2})

		require.NoError(t, err)
		assert.True(t, result.Decision.ShouldSignalToCurrentLocation)
		publisher.AssertExpectations(t)
	})

	t.Run("notification failure does not fail the update", func(t *testing.T) {
		uc, profiles, orgs, publisher := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(gabonese(), nil)
		orgs.On("FindByJurisdiction", mock.Anything, "FR").Return(&models.Organization{ID: "org_paris"}, nil)
		profiles.On("UpdateLocation", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "FR", StayDurationMonths: 2})

		assert.NoError(t, err)
	})

	t.Run("back home clears the signal", func(t *testing.T) {
		uc, profiles, orgs, _ := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(gabonese(), nil)
		profiles.On("UpdateLocation", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.SignaledToOrgID == "" && p.ManagedByOrgID == "org_libreville"
		})).Return(nil)

		result, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "GA", StayDurationMonths: 30})

		require.NoError(t, err)
		assert.False(t, result.Decision.ShouldTransferToCurrentLocation)
		assert.False(t, result.Decision.ShouldSignalToCurrentLocation)
		orgs.AssertNotCalled(t, "FindByJurisdiction", mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		uc, profiles, _, _ := newTestUsecase()
		profiles.On("FindByUserID", mock.Anything, "user_1").Return(nil, nil)

		_, err := uc.UpdateProfileLocation(context.Background(), session, &requests.UpdateProfileLocation{CurrentLocation: "FR", StayDurationMonths: 2})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
