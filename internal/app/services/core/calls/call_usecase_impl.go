package calls

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type callUsecase struct {
	OrganizationRepository contracts.OrganizationRepository
	TelephonyClient        contracts.TelephonyClient
	Log                    *zap.Logger
}

var (
	callUsecaseInstance contracts.CallUsecase
	onceCallUsecase     sync.Once
)

func NewCallUsecase(organizationRepository contracts.OrganizationRepository, telephonyClient contracts.TelephonyClient, logger *zap.Logger) contracts.CallUsecase {
	onceCallUsecase.Do(func() {
		callUsecaseInstance = &callUsecase{
			OrganizationRepository: organizationRepository,
			TelephonyClient:        telephonyClient,
			Log:                    logger,
		}
	})
	return callUsecaseInstance
}

// StartCall dials out through the organization's Aircall number on behalf of an agent.
func (uc *callUsecase) StartCall(ctx context.Context, session *models.Session, request *requests.StartCall) (*responses.Call, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("callUsecase.StartCall called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, request.OrgID),
	)

	if !session.CanManageOrg(request.OrgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("calls are reserved to the organization's staff"))
	}

	org, err := uc.OrganizationRepository.FindByID(ctx, request.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "organization")
	}
	if !org.Aircall.Enabled || org.Aircall.NumberID == "" {
		return nil, exceptions.ErrFeatureDisabled(errors.New("aircall is not configured for "+org.ID), "organization")
	}

	if err := uc.TelephonyClient.StartOutboundCall(ctx, request.AircallUserID, org.Aircall.NumberID, request.PhoneNumber); err != nil {
		uc.Log.Error("callUsecase.StartCall error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("callUsecase.StartCall succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.Call{
		AircallUserID: request.AircallUserID,
		NumberID:      org.Aircall.NumberID,
		To:            request.PhoneNumber,
	}, nil
}
