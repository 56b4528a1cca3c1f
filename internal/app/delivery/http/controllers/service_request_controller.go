package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ServiceRequestController struct {
	Log                   *zap.Logger
	ServiceRequestUsecase contracts.ServiceRequestUsecase
}

var (
	serviceRequestControllerInstance *ServiceRequestController
	onceServiceRequestController     sync.Once
)

func NewServiceRequestController(logger *zap.Logger, serviceRequestUsecase contracts.ServiceRequestUsecase) *ServiceRequestController {
	onceServiceRequestController.Do(func() {
		serviceRequestControllerInstance = &ServiceRequestController{
			Log:                   logger,
			ServiceRequestUsecase: serviceRequestUsecase,
		}
	})
	return serviceRequestControllerInstance
}

func (ctrl *ServiceRequestController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateServiceRequest)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	serviceRequest, err := ctrl.ServiceRequestUsecase.Create(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("ServiceRequestController.Create error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ServiceRequestCreatedSuccessMessage, serviceRequest)
}

func (ctrl *ServiceRequestController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	pagination := utils.BuildPaginationRequest(r)
	request := &requests.ListServiceRequests{
		OrgID:      r.URL.Query().Get("org_id"),
		Status:     r.URL.Query().Get("status"),
		Pagination: *pagination,
	}

	result, total, err := ctrl.ServiceRequestUsecase.FindAll(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("ServiceRequestController.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if result == nil {
		result = []models.ServiceRequest{}
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ServiceRequestsGetSuccessMessage, paginationResponse, result)
}

func (ctrl *ServiceRequestController) FindByID(w http.ResponseWriter, r *http.Request) {
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

	detail, err := ctrl.ServiceRequestUsecase.FindByID(r.Context(), session, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("ServiceRequestController.FindByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServiceRequestGetSuccessMessage, detail)
}

func (ctrl *ServiceRequestController) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "Submit", constvars.ServiceRequestSubmittedSuccessMessage, ctrl.ServiceRequestUsecase.Submit)
}

func (ctrl *ServiceRequestController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "Cancel", constvars.ServiceRequestCancelledSuccessMessage, ctrl.ServiceRequestUsecase.Cancel)
}

func (ctrl *ServiceRequestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
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

	request := new(requests.UpdateServiceRequestStatus)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	serviceRequest, err := ctrl.ServiceRequestUsecase.UpdateStatus(ctx, session, serviceRequestID, request)
	if err != nil {
		ctrl.Log.Error("ServiceRequestController.UpdateStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
			zap.String(constvars.LoggingStatusKey, request.Status),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ServiceRequestController.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServiceRequestStatusUpdatedSuccessMessage, serviceRequest)
}

type serviceRequestTransition func(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error)

func (ctrl *ServiceRequestController) transition(w http.ResponseWriter, r *http.Request, name, message string, action serviceRequestTransition) {
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

	serviceRequest, err := action(r.Context(), session, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("ServiceRequestController."+name+" error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, message, serviceRequest)
}
