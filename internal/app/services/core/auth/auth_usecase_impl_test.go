package auth

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase(env string) (*authUsecase, *mocks.IdentityProvider) {
	provider := new(mocks.IdentityProvider)
	cfg := &config.InternalConfig{
		App:   config.App{Env: env},
		Clerk: config.AppClerk{DevTestAccounts: "citizen:user_citizen, agent:user_agent,broken,:user_x"},
	}
	return newAuthUsecase(provider, cfg, zap.NewNop()), provider
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func TestParseDevAccounts(t *testing.T) {
	assert.Equal(t, []responses.DevAccount{
		{Label: "citizen", UserID: "user_citizen"},
		{Label: "agent", UserID: "user_agent"},
	}, ParseDevAccounts("citizen:user_citizen, agent:user_agent,broken,:user_x"))
	assert.Empty(t, ParseDevAccounts(""))
}

func TestAuthUsecase_CreateDevSignInToken(t *testing.T) {
	t.Run("issues a token by label", func(t *testing.T) {
		uc, provider := newTestUsecase("development")
		token := &responses.SignInToken{Token: "tok", UserID: "user_agent"}
		provider.On("CreateSignInToken", mock.Anything, "user_agent").Return(token, nil)

		result, err := uc.CreateDevSignInToken(context.Background(), &requests.CreateSignInToken{Account: "agent"})
		require.NoError(t, err)
		assert.Equal(t, token, result)
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, _ := newTestUsecase("development")

		_, err := uc.CreateDevSignInToken(context.Background(), &requests.CreateSignInToken{Account: "admin"})
		assert.Equal(t, 404, statusCode(t, err))
	})

	t.Run("disabled outside development", func(t *testing.T) {
		uc, provider := newTestUsecase("production")

		_, err := uc.CreateDevSignInToken(context.Background(), &requests.CreateSignInToken{Account: "agent"})
		assert.Equal(t, 404, statusCode(t, err))
		provider.AssertNotCalled(t, "CreateSignInToken", mock.Anything, mock.Anything)

		_, err = uc.ListDevAccounts(context.Background())
		assert.Error(t, err)
	})
}
