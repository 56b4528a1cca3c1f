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

type CallController struct {
	Log         *zap.Logger
	CallUsecase contracts.CallUsecase
}

var (
	callControllerInstance *CallController
	onceCallController     sync.Once
)

func NewCallController(logger *zap.Logger, callUsecase contracts.CallUsecase) *CallController {
	onceCallController.Do(func() {
		callControllerInstance = &CallController{
			Log:         logger,
			CallUsecase: callUsecase,
		}
	})
	return callControllerInstance
}

func (ctrl *CallController) StartCall(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.StartCall)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	call, err := ctrl.CallUsecase.StartCall(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("CallController.StartCall error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, request.OrgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CallStartedSuccessMessage, call)
}
