package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type PaymentUsecase interface {
	CreatePaymentIntent(ctx context.Context, session *models.Session, requestID string) (*responses.PaymentIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	FindByRequest(ctx context.Context, session *models.Session, requestID string) (*models.Payment, error)
	FindByOrg(ctx context.Context, session *models.Session, request *requests.ListPayments) ([]models.Payment, error)
	GetStats(ctx context.Context, session *models.Session, orgID string) (*models.PaymentStats, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Payment, error)
	FindLatestByRequestID(ctx context.Context, requestID string) (*models.Payment, error)
	FindByOrgID(ctx context.Context, orgID string, status models.PaymentStatus, limit int) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, paymentIntentID string, status models.PaymentStatus, at time.Time) error
	GetStatsByOrgID(ctx context.Context, orgID string, monthStart time.Time) (*models.PaymentStats, error)
}

type CreatePaymentIntentInput struct {
	Amount         int64
	Currency       string
	Description    string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

type PaymentIntentResult struct {
	ID           string
	ClientSecret string
}

// PaymentEvent is a verified payment provider webhook event reduced to what the app consumes.
type PaymentEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, input *CreatePaymentIntentInput) (*PaymentIntentResult, error)
	ParseWebhookEvent(payload []byte, signature string) (*PaymentEvent, error)
}
