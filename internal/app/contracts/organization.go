package contracts

import (
	"consulat-service/internal/app/models"
	"context"
)

type OrganizationUsecase interface {
	FindAll(ctx context.Context) ([]models.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)
	FindServices(ctx context.Context, orgID string) ([]models.OrgService, error)
}

type OrganizationRepository interface {
	FindAll(ctx context.Context) ([]models.Organization, error)
	FindByID(ctx context.Context, orgID string) (*models.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)
	FindByJurisdiction(ctx context.Context, country string) (*models.Organization, error)
}

type OrgServiceRepository interface {
	FindByID(ctx context.Context, orgServiceID string) (*models.OrgService, error)
	FindByOrgID(ctx context.Context, orgID string) ([]models.OrgService, error)
}
