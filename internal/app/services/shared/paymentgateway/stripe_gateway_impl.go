package paymentgateway

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/exceptions"
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/tidwall/gjson"
)

const (
	EventPaymentIntentSucceeded  = "payment_intent.succeeded"
	EventPaymentIntentProcessing = "payment_intent.processing"
	EventPaymentIntentFailed     = "payment_intent.payment_failed"
	EventChargeRefunded          = "charge.refunded"
)

type stripeGateway struct {
	API           *client.API
	WebhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) contracts.PaymentGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeGateway{
		API:           api,
		WebhookSecret: webhookSecret,
	}
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, input *contracts.CreatePaymentIntentInput) (*contracts.PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(input.Amount),
		Currency:    stripe.String(input.Currency),
		Description: stripe.String(input.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if input.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(input.ReceiptEmail)
	}
	for key, value := range input.Metadata {
		params.AddMetadata(key, value)
	}
	if input.IdempotencyKey != "" {
		params.SetIdempotencyKey(input.IdempotencyKey)
	}
	params.Context = ctx

	intent, err := g.API.PaymentIntents.New(params)
	if err != nil {
		return nil, exceptions.ErrStripeCreatePaymentIntent(err)
	}

	return &contracts.PaymentIntentResult{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ParseWebhookEvent verifies the Stripe-Signature header and extracts the payment intent the event refers to.
func (g *stripeGateway) ParseWebhookEvent(payload []byte, signature string) (*contracts.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, exceptions.ErrStripeWebhookSignature(err)
	}

	paymentEvent := &contracts.PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Data == nil {
		return paymentEvent, nil
	}

	switch paymentEvent.Type {
	case EventChargeRefunded:
		paymentEvent.PaymentIntentID = gjson.GetBytes(event.Data.Raw, "payment_intent").String()
	default:
		paymentEvent.PaymentIntentID = gjson.GetBytes(event.Data.Raw, "id").String()
	}
	return paymentEvent, nil
}
