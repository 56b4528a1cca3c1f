package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type WorkflowController struct {
	Log             *zap.Logger
	WorkflowUsecase contracts.WorkflowUsecase
}

var (
	workflowControllerInstance *WorkflowController
	onceWorkflowController     sync.Once
)

func NewWorkflowController(logger *zap.Logger, workflowUsecase contracts.WorkflowUsecase) *WorkflowController {
	onceWorkflowController.Do(func() {
		workflowControllerInstance = &WorkflowController{
			Log:             logger,
			WorkflowUsecase: workflowUsecase,
		}
	})
	return workflowControllerInstance
}

func (ctrl *WorkflowController) GetWorkflowProgress(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	serviceRequestID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamRequestID)
	if !ok {
		return
	}

	progress, err := ctrl.WorkflowUsecase.GetWorkflowProgress(r.Context(), session, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("WorkflowController.GetWorkflowProgress error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WorkflowProgressGetSuccessMessage, progress)
}

func (ctrl *WorkflowController) GetServiceWorkflow(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	serviceID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamServiceID)
	if !ok {
		return
	}

	workflow, err := ctrl.WorkflowUsecase.GetServiceWorkflow(r.Context(), serviceID)
	if err != nil {
		ctrl.Log.Error("WorkflowController.GetServiceWorkflow error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServiceWorkflowGetSuccessMessage, workflow)
}

func (ctrl *WorkflowController) ValidateWorkflowTransition(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.ValidateWorkflowTransition)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	validation, err := ctrl.WorkflowUsecase.ValidateWorkflowTransition(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("WorkflowController.ValidateWorkflowTransition error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WorkflowTransitionCheckSuccessMessage, validation)
}
