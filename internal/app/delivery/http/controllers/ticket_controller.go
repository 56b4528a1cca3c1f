package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type TicketController struct {
	Log           *zap.Logger
	TicketUsecase contracts.TicketUsecase
}

var (
	ticketControllerInstance *TicketController
	onceTicketController     sync.Once
)

func NewTicketController(logger *zap.Logger, ticketUsecase contracts.TicketUsecase) *TicketController {
	onceTicketController.Do(func() {
		ticketControllerInstance = &TicketController{
			Log:           logger,
			TicketUsecase: ticketUsecase,
		}
	})
	return ticketControllerInstance
}

func (ctrl *TicketController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateTicket)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ticket, err := ctrl.TicketUsecase.Create(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("TicketController.Create error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.TicketCreatedSuccessMessage, ticket)
}

func (ctrl *TicketController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	tickets, err := ctrl.TicketUsecase.FindMine(r.Context(), session)
	if err != nil {
		ctrl.Log.Error("TicketController.FindMine error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TicketsGetSuccessMessage, tickets)
}

func (ctrl *TicketController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	tickets, err := ctrl.TicketUsecase.FindAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		ctrl.Log.Error("TicketController.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TicketsGetSuccessMessage, tickets)
}

func (ctrl *TicketController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ticketID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamTicketID)
	if !ok {
		return
	}

	ticket, err := ctrl.TicketUsecase.FindByID(r.Context(), session, ticketID)
	if err != nil {
		ctrl.Log.Error("TicketController.FindByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTicketIDKey, ticketID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TicketGetSuccessMessage, ticket)
}

func (ctrl *TicketController) AddMessage(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ticketID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamTicketID)
	if !ok {
		return
	}

	request := new(requests.AddTicketMessage)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	message, err := ctrl.TicketUsecase.AddMessage(r.Context(), session, ticketID, request)
	if err != nil {
		ctrl.Log.Error("TicketController.AddMessage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTicketIDKey, ticketID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.TicketMessageAddedSuccessMessage, message)
}

func (ctrl *TicketController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ticketID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamTicketID)
	if !ok {
		return
	}

	request := new(requests.UpdateTicketStatus)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ticket, err := ctrl.TicketUsecase.UpdateStatus(r.Context(), session, ticketID, request)
	if err != nil {
		ctrl.Log.Error("TicketController.UpdateStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTicketIDKey, ticketID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TicketStatusUpdatedSuccessMessage, ticket)
}

func (ctrl *TicketController) Assign(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ticketID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamTicketID)
	if !ok {
		return
	}

	request := new(requests.AssignTicket)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	ticket, err := ctrl.TicketUsecase.Assign(r.Context(), session, ticketID, request)
	if err != nil {
		ctrl.Log.Error("TicketController.Assign error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTicketIDKey, ticketID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TicketAssignedSuccessMessage, ticket)
}
