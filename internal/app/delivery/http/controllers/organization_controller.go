package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type OrganizationController struct {
	Log                 *zap.Logger
	OrganizationUsecase contracts.OrganizationUsecase
}

var (
	organizationControllerInstance *OrganizationController
	onceOrganizationController     sync.Once
)

func NewOrganizationController(logger *zap.Logger, organizationUsecase contracts.OrganizationUsecase) *OrganizationController {
	onceOrganizationController.Do(func() {
		organizationControllerInstance = &OrganizationController{
			Log:                 logger,
			OrganizationUsecase: organizationUsecase,
		}
	})
	return organizationControllerInstance
}

func (ctrl *OrganizationController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	organizations, err := ctrl.OrganizationUsecase.FindAll(r.Context())
	if err != nil {
		ctrl.Log.Error("OrganizationController.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if organizations == nil {
		organizations = []models.Organization{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationsGetSuccessMessage, organizations)
}

func (ctrl *OrganizationController) FindBySlug(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	slug, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamSlug)
	if !ok {
		return
	}

	organization, err := ctrl.OrganizationUsecase.FindBySlug(r.Context(), slug)
	if err != nil {
		ctrl.Log.Error("OrganizationController.FindBySlug error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationGetSuccessMessage, organization)
}

func (ctrl *OrganizationController) FindServices(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	orgID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamOrgID)
	if !ok {
		return
	}

	services, err := ctrl.OrganizationUsecase.FindServices(r.Context(), orgID)
	if err != nil {
		ctrl.Log.Error("OrganizationController.FindServices error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if services == nil {
		services = []models.OrgService{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationServicesGetSuccessMessage, services)
}
