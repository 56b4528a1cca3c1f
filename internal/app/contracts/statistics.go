package contracts

import (
	"consulat-service/internal/app/models"
	"context"
)

type StatisticsUsecase interface {
	GetOrgStatistics(ctx context.Context, session *models.Session, orgID string) (*models.OrgStatistics, error)
}
