package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

// attachWebhookRoutes mounts provider callbacks. They authenticate through their own signatures.
func attachWebhookRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.With(middlewares.BodyBuffer).Post("/stripe", paymentController.StripeWebhook)
}
