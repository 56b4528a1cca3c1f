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

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.GetAvailableSlots{
		OrgServiceID: query.Get("org_service_id"),
		Date:         query.Get("date"),
		Type:         query.Get("type"),
	}
	if !validate(ctrl.Log, w, requestID, request) {
		return
	}

	slots, err := ctrl.AppointmentUsecase.GetAvailableSlots(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.GetAvailableSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if slots == nil {
		slots = []models.AvailableSlot{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SlotsGetSuccessMessage, slots)
}

func (ctrl *AppointmentController) Book(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.Book(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Book error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentBookedSuccessMessage, appointment)
}

func (ctrl *AppointmentController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointments, err := ctrl.AppointmentUsecase.FindMine(r.Context(), session)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindMine error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsGetSuccessMessage, appointments)
}

func (ctrl *AppointmentController) FindByOrgAndDate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	orgID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamOrgID)
	if !ok {
		return
	}

	request := &requests.ListOrgAppointments{
		OrgID: orgID,
		Date:  r.URL.Query().Get("date"),
	}
	if !validate(ctrl.Log, w, requestID, request) {
		return
	}

	appointments, err := ctrl.AppointmentUsecase.FindByOrgAndDate(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindByOrgAndDate error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsGetSuccessMessage, appointments)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "Cancel", constvars.AppointmentCancelledSuccessMessage, ctrl.AppointmentUsecase.Cancel)
}

func (ctrl *AppointmentController) Complete(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "Complete", constvars.AppointmentCompletedSuccessMessage, ctrl.AppointmentUsecase.Complete)
}

func (ctrl *AppointmentController) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "MarkNoShow", constvars.AppointmentNoShowSuccessMessage, ctrl.AppointmentUsecase.MarkNoShow)
}

func (ctrl *AppointmentController) UpsertAgentSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	orgID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamOrgID)
	if !ok {
		return
	}

	request := new(requests.UpsertAgentSchedule)
	request.OrgID = orgID
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	schedule, err := ctrl.AppointmentUsecase.UpsertAgentSchedule(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.UpsertAgentSchedule error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AgentScheduleUpsertedSuccessMessage, schedule)
}

type appointmentTransition func(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)

func (ctrl *AppointmentController) transition(w http.ResponseWriter, r *http.Request, name, message string, action appointmentTransition) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	appointmentID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamAppointmentID)
	if !ok {
		return
	}

	appointment, err := action(r.Context(), session, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController."+name+" error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, message, appointment)
}
