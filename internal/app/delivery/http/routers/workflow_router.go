package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWorkflowRoutes(router chi.Router, middlewares *middlewares.Middlewares, workflowController *controllers.WorkflowController) {
	protected(router, middlewares).Post("/validate-transition", workflowController.ValidateWorkflowTransition)
}

func attachServiceRoutes(router chi.Router, workflowController *controllers.WorkflowController) {
	router.Get("/{serviceID}/workflow", workflowController.GetServiceWorkflow)
}
