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

type TerritorialityController struct {
	Log                   *zap.Logger
	TerritorialityUsecase contracts.TerritorialityUsecase
}

var (
	territorialityControllerInstance *TerritorialityController
	onceTerritorialityController     sync.Once
)

func NewTerritorialityController(logger *zap.Logger, territorialityUsecase contracts.TerritorialityUsecase) *TerritorialityController {
	onceTerritorialityController.Do(func() {
		territorialityControllerInstance = &TerritorialityController{
			Log:                   logger,
			TerritorialityUsecase: territorialityUsecase,
		}
	})
	return territorialityControllerInstance
}

func (ctrl *TerritorialityController) Evaluate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.EvaluateTerritoriality)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	decision, err := ctrl.TerritorialityUsecase.Evaluate(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("TerritorialityController.Evaluate error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TerritorialityEvaluatedSuccessMessage, decision)
}

func (ctrl *TerritorialityController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := ctrl.TerritorialityUsecase.GetMyProfile(ctx, session)
	if err != nil {
		ctrl.Log.Error("TerritorialityController.GetMyProfile error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileGetSuccessMessage, profile)
}

func (ctrl *TerritorialityController) UpdateProfileLocation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.UpdateProfileLocation)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TerritorialityUsecase.UpdateProfileLocation(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("TerritorialityController.UpdateProfileLocation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("TerritorialityController.UpdateProfileLocation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileLocationUpdatedSuccessMessage, result)
}
