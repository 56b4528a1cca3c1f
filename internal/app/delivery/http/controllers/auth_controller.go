package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuthController serves the development account switcher.
type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

var (
	authControllerInstance *AuthController
	onceAuthController     sync.Once
)

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	onceAuthController.Do(func() {
		authControllerInstance = &AuthController{
			Log:         logger,
			AuthUsecase: authUsecase,
		}
	})
	return authControllerInstance
}

func (ctrl *AuthController) ListDevAccounts(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	accounts, err := ctrl.AuthUsecase.ListDevAccounts(r.Context())
	if err != nil {
		ctrl.Log.Error("AuthController.ListDevAccounts error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DevAccountsGetSuccessMessage, accounts)
}

func (ctrl *AuthController) CreateDevSignInToken(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateSignInToken)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := ctrl.AuthUsecase.CreateDevSignInToken(ctx, request)
	if err != nil {
		ctrl.Log.Error("AuthController.CreateDevSignInToken error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SignInTokenCreatedSuccessMessage, token)
}
