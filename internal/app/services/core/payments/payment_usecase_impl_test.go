package payments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/app/services/shared/paymentgateway"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testDeps struct {
	payments  *mocks.PaymentRepository
	requests  *mocks.ServiceRequestRepository
	services  *mocks.OrgServiceRepository
	orgs      *mocks.OrganizationRepository
	gateway   *mocks.PaymentGateway
	publisher *mocks.NotificationPublisher
}

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestUsecase() (*paymentUsecase, testDeps) {
	deps := testDeps{
		payments:  new(mocks.PaymentRepository),
		requests:  new(mocks.ServiceRequestRepository),
		services:  new(mocks.OrgServiceRepository),
		orgs:      new(mocks.OrganizationRepository),
		gateway:   new(mocks.PaymentGateway),
		publisher: new(mocks.NotificationPublisher),
	}
	uc := newPaymentUsecase(deps.payments, deps.requests, deps.services, deps.orgs, deps.gateway, deps.publisher, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, deps
}

var (
	citizen = &models.Session{UserID: "user_1", Role: constvars.RoleCitizen, Email: "jean@example.ga"}
	agent   = &models.Session{UserID: "agent_1", Role: constvars.RoleAgent, OrgID: "org_1"}
)

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func serviceRequest() *models.ServiceRequest {
	return &models.ServiceRequest{ID: "req_1", UserID: "user_1", OrgID: "org_1", OrgServiceID: "svc_1", ServiceName: "Passeport"}
}

func TestPaymentUsecase_CreatePaymentIntent(t *testing.T) {
	t.Run("creates an intent and a pending payment", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(serviceRequest(), nil)
		deps.services.On("FindByID", mock.Anything, "svc_1").Return(&models.OrgService{ID: "svc_1", Pricing: models.Pricing{Amount: 5000, Currency: "EUR"}}, nil)
		deps.orgs.On("FindByID", mock.Anything, "org_1").Return(&models.Organization{ID: "org_1", Name: "Consulat de Paris"}, nil)
		deps.gateway.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(input *contracts.CreatePaymentIntentInput) bool {
			return input.Amount == 5000 &&
				input.Currency == "eur" &&
				input.Description == "Passeport - Consulat de Paris" &&
				input.ReceiptEmail == "jean@example.ga" &&
				input.Metadata["requestId"] == "req_1" &&
				input.Metadata["orgId"] == "org_1" &&
				input.IdempotencyKey == "payment-intent:req_1:5000:eur"
		})).Return(&contracts.PaymentIntentResult{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)
		deps.payments.On("FindByPaymentIntentID", mock.Anything, "pi_1").Return(nil, nil)
		deps.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
			return p.Status == models.PaymentStatusPending && p.StripePaymentIntentID == "pi_1" && p.CreatedAt.Equal(fixedNow)
		})).Return(nil)
		deps.requests.On("UpdatePaymentStatus", mock.Anything, "req_1", models.PaymentStatusPending).Return(nil)

		intent, err := uc.CreatePaymentIntent(context.Background(), citizen, "req_1")
		require.NoError(t, err)
		assert.Equal(t, "pi_1_secret", intent.ClientSecret)
		assert.Equal(t, int64(5000), intent.Amount)
		assert.Equal(t, "eur", intent.Currency)
		deps.payments.AssertExpectations(t)
	})

	t.Run("reused intent is not stored twice", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(serviceRequest(), nil)
		deps.services.On("FindByID", mock.Anything, "svc_1").Return(&models.OrgService{Pricing: models.Pricing{Amount: 5000, Currency: "XAF"}}, nil)
		deps.orgs.On("FindByID", mock.Anything, "org_1").Return(&models.Organization{Name: "Consulat"}, nil)
		deps.gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(&contracts.PaymentIntentResult{ID: "pi_1"}, nil)
		deps.payments.On("FindByPaymentIntentID", mock.Anything, "pi_1").Return(&models.Payment{ID: "pay_1"}, nil)
		deps.requests.On("UpdatePaymentStatus", mock.Anything, "req_1", models.PaymentStatusPending).Return(nil)

		_, err := uc.CreatePaymentIntent(context.Background(), citizen, "req_1")
		require.NoError(t, err)
		deps.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("already paid", func(t *testing.T) {
		uc, deps := newTestUsecase()
		paid := serviceRequest()
		paid.PaymentStatus = models.PaymentStatusSucceeded
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(paid, nil)

		_, err := uc.CreatePaymentIntent(context.Background(), citizen, "req_1")
		assert.Equal(t, 409, statusCode(t, err))
	})

	t.Run("service without price", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(serviceRequest(), nil)
		deps.services.On("FindByID", mock.Anything, "svc_1").Return(&models.OrgService{Pricing: models.Pricing{Amount: 0}}, nil)

		_, err := uc.CreatePaymentIntent(context.Background(), citizen, "req_1")
		assert.Equal(t, 422, statusCode(t, err))
		deps.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("only the owner pays", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(serviceRequest(), nil)

		_, err := uc.CreatePaymentIntent(context.Background(), agent, "req_1")
		assert.Equal(t, 403, statusCode(t, err))
	})
}

func TestPaymentUsecase_HandleWebhook(t *testing.T) {
	payload := []byte(`{}`)

	t.Run("succeeded event updates payment and request and notifies", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.gateway.On("ParseWebhookEvent", payload, "sig").Return(&contracts.PaymentEvent{Type: paymentgateway.EventPaymentIntentSucceeded, PaymentIntentID: "pi_1"}, nil)
		deps.payments.On("FindByPaymentIntentID", mock.Anything, "pi_1").Return(&models.Payment{RequestID: "req_1", UserID: "user_1", StripePaymentIntentID: "pi_1"}, nil)
		deps.payments.On("UpdateStatus", mock.Anything, "pi_1", models.PaymentStatusSucceeded, fixedNow).Return(nil)
		deps.requests.On("UpdatePaymentStatus", mock.Anything, "req_1", models.PaymentStatusSucceeded).Return(nil)
		deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Type == constvars.NotificationTypePaymentSucceeded && n.RecipientUserID == "user_1"
		})).Return(nil)

		require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))
		deps.publisher.AssertExpectations(t)
	})

	t.Run("refund event maps to refunded without notification", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.gateway.On("ParseWebhookEvent", payload, "sig").Return(&contracts.PaymentEvent{Type: paymentgateway.EventChargeRefunded, PaymentIntentID: "pi_1"}, nil)
		deps.payments.On("FindByPaymentIntentID", mock.Anything, "pi_1").Return(&models.Payment{RequestID: "req_1", StripePaymentIntentID: "pi_1"}, nil)
		deps.payments.On("UpdateStatus", mock.Anything, "pi_1", models.PaymentStatusRefunded, fixedNow).Return(nil)
		deps.requests.On("UpdatePaymentStatus", mock.Anything, "req_1", models.PaymentStatusRefunded).Return(nil)

		require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))
		deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("unhandled event type is acknowledged", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.gateway.On("ParseWebhookEvent", payload, "sig").Return(&contracts.PaymentEvent{Type: "customer.created"}, nil)

		require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))
		deps.payments.AssertNotCalled(t, "FindByPaymentIntentID", mock.Anything, mock.Anything)
	})

	t.Run("unknown intent is acknowledged", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.gateway.On("ParseWebhookEvent", payload, "sig").Return(&contracts.PaymentEvent{Type: paymentgateway.EventPaymentIntentFailed, PaymentIntentID: "pi_x"}, nil)
		deps.payments.On("FindByPaymentIntentID", mock.Anything, "pi_x").Return(nil, nil)

		require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))
		deps.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad signature", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.gateway.On("ParseWebhookEvent", payload, "bad").Return(nil, exceptions.ErrStripeWebhookSignature(errors.New("no match")))

		err := uc.HandleWebhook(context.Background(), payload, "bad")
		assert.Equal(t, 400, statusCode(t, err))
	})
}

func TestPaymentUsecase_OrgScope(t *testing.T) {
	t.Run("lists with the default limit", func(t *testing.T) {
		uc, deps := newTestUsecase()
		deps.payments.On("FindByOrgID", mock.Anything, "org_1", models.PaymentStatusSucceeded, defaultPaymentListLimit).Return([]models.Payment{{ID: "pay_1"}}, nil)

		payments, err := uc.FindByOrg(context.Background(), agent, &requests.ListPayments{OrgID: "org_1", Status: "succeeded"})
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("stats use the start of the month", func(t *testing.T) {
		uc, deps := newTestUsecase()
		monthStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		deps.payments.On("GetStatsByOrgID", mock.Anything, "org_1", monthStart).Return(&models.PaymentStats{TotalRevenue: 10000}, nil)

		stats, err := uc.GetStats(context.Background(), agent, "org_1")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), stats.TotalRevenue)
	})

	t.Run("other organization is rejected", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.GetStats(context.Background(), agent, "org_2")
		assert.Equal(t, 403, statusCode(t, err))
	})
}
