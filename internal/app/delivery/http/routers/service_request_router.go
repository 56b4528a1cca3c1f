package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachServiceRequestRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	serviceRequestController *controllers.ServiceRequestController,
	workflowController *controllers.WorkflowController,
	paymentController *controllers.PaymentController,
) {
	r := protected(router, middlewares)
	r.Post("/", serviceRequestController.Create)
	r.Get("/", serviceRequestController.FindAll)
	r.Get("/{requestID}", serviceRequestController.FindByID)
	r.Post("/{requestID}/submit", serviceRequestController.Submit)
	r.Post("/{requestID}/cancel", serviceRequestController.Cancel)
	r.Patch("/{requestID}/status", serviceRequestController.UpdateStatus)
	r.Get("/{requestID}/workflow/progress", workflowController.GetWorkflowProgress)
	r.Post("/{requestID}/payment-intent", paymentController.CreatePaymentIntent)
	r.Get("/{requestID}/payments", paymentController.FindByRequest)
}
