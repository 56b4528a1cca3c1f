package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultPaymentListLimit = 50

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	intent, err := ctrl.PaymentUsecase.CreatePaymentIntent(ctx, session, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreatePaymentIntent error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.CreatePaymentIntent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentIntentCreatedSuccessMessage, intent)
}

// StripeWebhook expects BodyBuffer to have stored the raw payload; the signature is computed over it.
func (ctrl *PaymentController) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	payload, ok := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(errors.New("raw body missing from context")))
		return
	}
	signature := r.Header.Get(constvars.HeaderStripeSignature)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.PaymentUsecase.HandleWebhook(ctx, payload, signature); err != nil {
		ctrl.Log.Error("PaymentController.StripeWebhook error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentWebhookHandledSuccessMessage, nil)
}

func (ctrl *PaymentController) FindByRequest(w http.ResponseWriter, r *http.Request) {
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

	payment, err := ctrl.PaymentUsecase.FindByRequest(r.Context(), session, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("PaymentController.FindByRequest error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccessMessage, payment)
}

func (ctrl *PaymentController) FindByOrg(w http.ResponseWriter, r *http.Request) {
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

	request := &requests.ListPayments{
		OrgID:  orgID,
		Status: r.URL.Query().Get("status"),
		Limit:  utils.QueryInt(r, "limit", defaultPaymentListLimit),
	}
	if !validate(ctrl.Log, w, requestID, request) {
		return
	}

	payments, err := ctrl.PaymentUsecase.FindByOrg(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.FindByOrg error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentsGetSuccessMessage, payments)
}

func (ctrl *PaymentController) GetStats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := ctrl.PaymentUsecase.GetStats(r.Context(), session, orgID)
	if err != nil {
		ctrl.Log.Error("PaymentController.GetStats error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentStatsGetSuccessMessage, stats)
}
