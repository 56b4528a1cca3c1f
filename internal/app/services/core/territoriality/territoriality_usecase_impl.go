package territoriality

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/metrics"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type territorialityUsecase struct {
	ProfileRepository      contracts.ProfileRepository
	OrganizationRepository contracts.OrganizationRepository
	NotificationPublisher  contracts.NotificationPublisher
	Log                    *zap.Logger
	now                    func() time.Time
}

var (
	territorialityUsecaseInstance contracts.TerritorialityUsecase
	onceTerritorialityUsecase     sync.Once
)

func NewTerritorialityUsecase(
	profileRepository contracts.ProfileRepository,
	organizationRepository contracts.OrganizationRepository,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.TerritorialityUsecase {
	onceTerritorialityUsecase.Do(func() {
		territorialityUsecaseInstance = newTerritorialityUsecase(profileRepository, organizationRepository, notificationPublisher, logger)
	})
	return territorialityUsecaseInstance
}

func newTerritorialityUsecase(
	profileRepository contracts.ProfileRepository,
	organizationRepository contracts.OrganizationRepository,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) *territorialityUsecase {
	return &territorialityUsecase{
		ProfileRepository:      profileRepository,
		OrganizationRepository: organizationRepository,
		NotificationPublisher:  notificationPublisher,
		Log:                    logger,
		now:                    time.Now,
	}
}

func (uc *territorialityUsecase) Evaluate(ctx context.Context, request *requests.EvaluateTerritoriality) (*responses.TerritorialityDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("territorialityUsecase.Evaluate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	decision := Determine(request.ResidenceCountry, request.CurrentLocation, request.StayDurationMonths)
	metrics.RecordTerritorialityDecision(decision.ShouldTransferToCurrentLocation, decision.ShouldSignalToCurrentLocation)

	uc.Log.Info("territorialityUsecase.Evaluate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("should_transfer", decision.ShouldTransferToCurrentLocation),
		zap.Bool("should_signal", decision.ShouldSignalToCurrentLocation),
	)
	return toResponse(decision), nil
}

func (uc *territorialityUsecase) GetMyProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("territorialityUsecase.GetMyProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile, err := uc.findProfile(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("territorialityUsecase.GetMyProfile error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return profile, nil
}

// UpdateProfileLocation records where the citizen currently stays and reassigns the
// managing or signaled organization according to the territoriality decision.
func (uc *territorialityUsecase) UpdateProfileLocation(ctx context.Context, session *models.Session, request *requests.UpdateProfileLocation) (*responses.ProfileLocationUpdate, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("territorialityUsecase.UpdateProfileLocation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile, err := uc.findProfile(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("territorialityUsecase.UpdateProfileLocation error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	currentLocation := strings.ToUpper(strings.TrimSpace(request.CurrentLocation))
	decision := Determine(profile.ResidenceCountry, currentLocation, request.StayDurationMonths)

	now := uc.now()
	profile.CurrentLocation = currentLocation
	profile.StayDurationMonths = request.StayDurationMonths
	profile.LocationUpdatedAt = &now

	var signaledOrg *models.Organization
	switch {
	case decision.ShouldTransferToCurrentLocation:
		org, err := uc.OrganizationRepository.FindByJurisdiction(ctx, currentLocation)
		if err != nil {
			return nil, err
		}
		if org == nil {
			uc.Log.Warn("territorialityUsecase.UpdateProfileLocation no organization for current location",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("country", currentLocation),
			)
			return nil, exceptions.ErrNoOrganizationForCountry(errors.New("no jurisdiction match"), currentLocation)
		}
		profile.ManagedByOrgID = org.ID
		profile.SignaledToOrgID = ""
	case decision.ShouldSignalToCurrentLocation:
		org, err := uc.OrganizationRepository.FindByJurisdiction(ctx, currentLocation)
		if err != nil {
			return nil, err
		}
		if org == nil {
			uc.Log.Warn("territorialityUsecase.UpdateProfileLocation presence not signaled, no organization for current location",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("country", currentLocation),
			)
			profile.SignaledToOrgID = ""
		} else {
			profile.SignaledToOrgID = org.ID
			signaledOrg = org
		}
	default:
		profile.SignaledToOrgID = ""
	}

	if err := uc.ProfileRepository.UpdateLocation(ctx, profile); err != nil {
		uc.Log.Error("territorialityUsecase.UpdateProfileLocation error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordTerritorialityDecision(decision.ShouldTransferToCurrentLocation, decision.ShouldSignalToCurrentLocation)

	if signaledOrg != nil {
		notification := &models.Notification{
			Type:           constvars.NotificationTypePresenceSignaled,
			RecipientOrgID: signaledOrg.ID,
			Subject:        "Signalement de présence",
			Payload: map[string]any{
				"profileId":          profile.ID,
				"fullName":           profile.FullName(),
				"residenceCountry":   profile.ResidenceCountry,
				"currentLocation":    profile.CurrentLocation,
				"stayDurationMonths": profile.StayDurationMonths,
			},
		}
		if err := uc.NotificationPublisher.Publish(ctx, notification); err != nil {
			uc.Log.Error("territorialityUsecase.UpdateProfileLocation error publishing presence notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrgIDKey, signaledOrg.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("territorialityUsecase.UpdateProfileLocation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return &responses.ProfileLocationUpdate{
		Decision: *toResponse(decision),
		Profile:  profile,
	}, nil
}

func (uc *territorialityUsecase) findProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := uc.ProfileRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrResourceNotFound(errors.New("profile missing"), "profile")
	}
	return profile, nil
}

func toResponse(decision Decision) *responses.TerritorialityDecision {
	return &responses.TerritorialityDecision{
		ShouldTransferToCurrentLocation: decision.ShouldTransferToCurrentLocation,
		ShouldSignalToCurrentLocation:   decision.ShouldSignalToCurrentLocation,
		Reason:                          decision.Reason,
	}
}
