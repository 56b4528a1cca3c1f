package auth

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type authUsecase struct {
	IdentityProvider contracts.IdentityProvider
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	accounts         []responses.DevAccount
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(identityProvider contracts.IdentityProvider, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = newAuthUsecase(identityProvider, internalConfig, logger)
	})
	return authUsecaseInstance
}

func newAuthUsecase(identityProvider contracts.IdentityProvider, internalConfig *config.InternalConfig, logger *zap.Logger) *authUsecase {
	return &authUsecase{
		IdentityProvider: identityProvider,
		InternalConfig:   internalConfig,
		Log:              logger,
		accounts:         ParseDevAccounts(internalConfig.Clerk.DevTestAccounts),
	}
}

// ParseDevAccounts reads a "label:userID,label:userID" list. Malformed entries are skipped.
func ParseDevAccounts(raw string) []responses.DevAccount {
	accounts := []responses.DevAccount{}
	for _, entry := range strings.Split(raw, ",") {
		label, userID, found := strings.Cut(strings.TrimSpace(entry), ":")
		label, userID = strings.TrimSpace(label), strings.TrimSpace(userID)
		if !found || label == "" || userID == "" {
			continue
		}
		accounts = append(accounts, responses.DevAccount{Label: label, UserID: userID})
	}
	return accounts
}

func (uc *authUsecase) ListDevAccounts(ctx context.Context) ([]responses.DevAccount, error) {
	if err := uc.ensureDevelopment(); err != nil {
		return nil, err
	}
	return uc.accounts, nil
}

// CreateDevSignInToken issues a Clerk sign-in token for one of the configured test accounts,
// matched by label or user ID.
func (uc *authUsecase) CreateDevSignInToken(ctx context.Context, request *requests.CreateSignInToken) (*responses.SignInToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.CreateDevSignInToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("account", request.Account),
	)

	if err := uc.ensureDevelopment(); err != nil {
		return nil, err
	}

	var userID string
	for _, account := range uc.accounts {
		if account.Label == request.Account || account.UserID == request.Account {
			userID = account.UserID
			break
		}
	}
	if userID == "" {
		return nil, exceptions.ErrResourceNotFound(errors.New("unknown test account "+request.Account), "test account")
	}

	token, err := uc.IdentityProvider.CreateSignInToken(ctx, userID)
	if err != nil {
		uc.Log.Error("authUsecase.CreateDevSignInToken error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.CreateDevSignInToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return token, nil
}

func (uc *authUsecase) ensureDevelopment() error {
	if uc.InternalConfig.App.Env != constvars.AppEnvDevelopment {
		return exceptions.ErrFeatureDisabled(nil, uc.InternalConfig.App.Env)
	}
	return nil
}
