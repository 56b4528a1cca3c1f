package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type SessionVerifier interface {
	VerifySessionToken(token string) (*models.Session, error)
}

type IdentityProvider interface {
	CreateSignInToken(ctx context.Context, userID string) (*responses.SignInToken, error)
}

type AuthUsecase interface {
	ListDevAccounts(ctx context.Context) ([]responses.DevAccount, error)
	CreateDevSignInToken(ctx context.Context, request *requests.CreateSignInToken) (*responses.SignInToken, error)
}

type RBACEnforcer interface {
	Enforce(role, path, method string) (bool, error)
}
