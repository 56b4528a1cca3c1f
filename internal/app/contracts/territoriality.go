package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type TerritorialityUsecase interface {
	Evaluate(ctx context.Context, request *requests.EvaluateTerritoriality) (*responses.TerritorialityDecision, error)
	GetMyProfile(ctx context.Context, session *models.Session) (*models.Profile, error)
	UpdateProfileLocation(ctx context.Context, session *models.Session, request *requests.UpdateProfileLocation) (*responses.ProfileLocationUpdate, error)
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateLocation(ctx context.Context, profile *models.Profile) error
}
