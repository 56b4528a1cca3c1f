package payments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/app/services/shared/paymentgateway"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/metrics"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPaymentListLimit = 50

// eventStatuses maps the webhook events the service reacts to onto payment statuses.
var eventStatuses = map[string]models.PaymentStatus{
	paymentgateway.EventPaymentIntentSucceeded:  models.PaymentStatusSucceeded,
	paymentgateway.EventPaymentIntentProcessing: models.PaymentStatusProcessing,
	paymentgateway.EventPaymentIntentFailed:     models.PaymentStatusFailed,
	paymentgateway.EventChargeRefunded:          models.PaymentStatusRefunded,
}

type paymentUsecase struct {
	PaymentRepository        contracts.PaymentRepository
	ServiceRequestRepository contracts.ServiceRequestRepository
	OrgServiceRepository     contracts.OrgServiceRepository
	OrganizationRepository   contracts.OrganizationRepository
	PaymentGateway           contracts.PaymentGateway
	NotificationPublisher    contracts.NotificationPublisher
	Log                      *zap.Logger
	now                      func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	organizationRepository contracts.OrganizationRepository,
	paymentGateway contracts.PaymentGateway,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = newPaymentUsecase(
			paymentRepository,
			serviceRequestRepository,
			orgServiceRepository,
			organizationRepository,
			paymentGateway,
			notificationPublisher,
			logger,
		)
	})
	return paymentUsecaseInstance
}

func newPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	organizationRepository contracts.OrganizationRepository,
	paymentGateway contracts.PaymentGateway,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) *paymentUsecase {
	return &paymentUsecase{
		PaymentRepository:        paymentRepository,
		ServiceRequestRepository: serviceRequestRepository,
		OrgServiceRepository:     orgServiceRepository,
		OrganizationRepository:   organizationRepository,
		PaymentGateway:           paymentGateway,
		NotificationPublisher:    notificationPublisher,
		Log:                      logger,
		now:                      time.Now,
	}
}

func (uc *paymentUsecase) CreatePaymentIntent(ctx context.Context, session *models.Session, serviceRequestID string) (*responses.PaymentIntent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePaymentIntent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
	)

	serviceRequest, err := uc.ServiceRequestRepository.FindByID(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if serviceRequest == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "service request")
	}
	if !serviceRequest.IsOwnedBy(session.UserID) {
		return nil, exceptions.ErrNotResourceOwner(errors.New("service request " + serviceRequestID))
	}
	if serviceRequest.PaymentStatus == models.PaymentStatusSucceeded {
		return nil, exceptions.ErrRequestAlreadyPaid(nil)
	}

	orgService, err := uc.OrgServiceRepository.FindByID(ctx, serviceRequest.OrgServiceID)
	if err != nil {
		return nil, err
	}
	if orgService == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "service")
	}
	if orgService.Pricing.Amount <= 0 {
		return nil, exceptions.ErrServiceHasNoPrice(nil)
	}

	org, err := uc.OrganizationRepository.FindByID(ctx, serviceRequest.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "organization")
	}

	amount := orgService.Pricing.Amount
	currency := strings.ToLower(orgService.Pricing.Currency)
	description := fmt.Sprintf("%s - %s", serviceRequest.ServiceName, org.Name)

	intent, err := uc.PaymentGateway.CreatePaymentIntent(ctx, &contracts.CreatePaymentIntentInput{
		Amount:       amount,
		Currency:     currency,
		Description:  description,
		ReceiptEmail: session.Email,
		Metadata: map[string]string{
			"requestId":   serviceRequest.ID,
			"userId":      session.UserID,
			"orgId":       serviceRequest.OrgID,
			"serviceName": serviceRequest.ServiceName,
		},
		// Retried calls for the same request and price get the same intent back.
		IdempotencyKey: strings.Join([]string{"payment-intent", serviceRequest.ID, strconv.FormatInt(amount, 10), currency}, ":"),
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePaymentIntent error creating intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := uc.PaymentRepository.FindByPaymentIntentID(ctx, intent.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		now := uc.now()
		payment := &models.Payment{
			ID:                    uuid.NewString(),
			RequestID:             serviceRequest.ID,
			UserID:                session.UserID,
			OrgID:                 serviceRequest.OrgID,
			StripePaymentIntentID: intent.ID,
			Amount:                amount,
			Currency:              currency,
			Status:                models.PaymentStatusPending,
			Description:           description,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := uc.PaymentRepository.Create(ctx, payment); err != nil {
			uc.Log.Error("paymentUsecase.CreatePaymentIntent error persisting payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if err := uc.ServiceRequestRepository.UpdatePaymentStatus(ctx, serviceRequest.ID, models.PaymentStatusPending); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreatePaymentIntent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, intent.ID),
	)
	return &responses.PaymentIntent{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          amount,
		Currency:        currency,
	}, nil
}

// HandleWebhook verifies the event and applies it to the payment and its request. Events for
// unknown types or unknown intents are acknowledged without changes.
func (uc *paymentUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleWebhook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	event, err := uc.PaymentGateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleWebhook invalid event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	metrics.RecordPaymentEvent(event.Type)

	status, handled := eventStatuses[event.Type]
	if !handled || event.PaymentIntentID == "" {
		uc.Log.Info("paymentUsecase.HandleWebhook ignoring event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
		)
		return nil
	}

	payment, err := uc.PaymentRepository.FindByPaymentIntentID(ctx, event.PaymentIntentID)
	if err != nil {
		return err
	}
	if payment == nil {
		uc.Log.Warn("paymentUsecase.HandleWebhook no payment for intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, event.PaymentIntentID),
		)
		return nil
	}

	if err := uc.PaymentRepository.UpdateStatus(ctx, payment.StripePaymentIntentID, status, uc.now()); err != nil {
		return err
	}
	if err := uc.ServiceRequestRepository.UpdatePaymentStatus(ctx, payment.RequestID, status); err != nil {
		return err
	}

	if status == models.PaymentStatusSucceeded {
		notification := &models.Notification{
			Type:            constvars.NotificationTypePaymentSucceeded,
			RecipientUserID: payment.UserID,
			Subject:         "Paiement confirmé",
			Payload: map[string]any{
				"requestId":   payment.RequestID,
				"amount":      payment.Amount,
				"currency":    payment.Currency,
				"description": payment.Description,
			},
		}
		if err := uc.NotificationPublisher.Publish(ctx, notification); err != nil {
			uc.Log.Warn("paymentUsecase.HandleWebhook failed to publish notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("paymentUsecase.HandleWebhook succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingStatusKey, string(status)),
	)
	return nil
}

func (uc *paymentUsecase) FindByRequest(ctx context.Context, session *models.Session, serviceRequestID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.FindByRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequestID),
	)

	serviceRequest, err := uc.ServiceRequestRepository.FindByID(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if serviceRequest == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "service request")
	}
	if !serviceRequest.IsOwnedBy(session.UserID) && !session.CanManageOrg(serviceRequest.OrgID) {
		return nil, exceptions.ErrNotResourceOwner(errors.New("service request " + serviceRequestID))
	}

	payment, err := uc.PaymentRepository.FindLatestByRequestID(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "payment")
	}
	return payment, nil
}

func (uc *paymentUsecase) FindByOrg(ctx context.Context, session *models.Session, request *requests.ListPayments) ([]models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.FindByOrg called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, request.OrgID),
	)

	if !session.CanManageOrg(request.OrgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("not staff of organization " + request.OrgID))
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultPaymentListLimit
	}
	payments, err := uc.PaymentRepository.FindByOrgID(ctx, request.OrgID, models.PaymentStatus(request.Status), limit)
	if err != nil {
		uc.Log.Error("paymentUsecase.FindByOrg error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return payments, nil
}

func (uc *paymentUsecase) GetStats(ctx context.Context, session *models.Session, orgID string) (*models.PaymentStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetStats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
	)

	if !session.CanManageOrg(orgID) {
		return nil, exceptions.ErrRoleNotAllowed(errors.New("not staff of organization " + orgID))
	}

	stats, err := uc.PaymentRepository.GetStatsByOrgID(ctx, orgID, utils.StartOfMonth(uc.now()))
	if err != nil {
		uc.Log.Error("paymentUsecase.GetStats error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return stats, nil
}
