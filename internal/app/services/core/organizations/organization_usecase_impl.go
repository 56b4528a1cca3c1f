package organizations

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type organizationUsecase struct {
	OrganizationRepository contracts.OrganizationRepository
	OrgServiceRepository   contracts.OrgServiceRepository
	Log                    *zap.Logger
}

var (
	organizationUsecaseInstance contracts.OrganizationUsecase
	onceOrganizationUsecase     sync.Once
)

func NewOrganizationUsecase(
	organizationRepository contracts.OrganizationRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	logger *zap.Logger,
) contracts.OrganizationUsecase {
	onceOrganizationUsecase.Do(func() {
		organizationUsecaseInstance = &organizationUsecase{
			OrganizationRepository: organizationRepository,
			OrgServiceRepository:   orgServiceRepository,
			Log:                    logger,
		}
	})
	return organizationUsecaseInstance
}

func (uc *organizationUsecase) FindAll(ctx context.Context) ([]models.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	orgs, err := uc.OrganizationRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("organizationUsecase.FindAll error fetching organizations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("organizationUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(orgs)),
	)
	return orgs, nil
}

func (uc *organizationUsecase) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.FindBySlug called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("slug", slug),
	)

	org, err := uc.OrganizationRepository.FindBySlug(ctx, slug)
	if err != nil {
		uc.Log.Error("organizationUsecase.FindBySlug error fetching organization",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if org == nil {
		return nil, exceptions.ErrResourceNotFound(errors.New("no document"), "organization")
	}
	return org, nil
}

func (uc *organizationUsecase) FindServices(ctx context.Context, orgID string) ([]models.OrgService, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.FindServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
	)

	services, err := uc.OrgServiceRepository.FindByOrgID(ctx, orgID)
	if err != nil {
		uc.Log.Error("organizationUsecase.FindServices error fetching services",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return services, nil
}
