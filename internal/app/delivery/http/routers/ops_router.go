package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOpsRoutes(router chi.Router, middlewares *middlewares.Middlewares, opsController *controllers.OpsController) {
	router.With(middlewares.RequireSuperadminAPIKey).Post("/reminders/run", opsController.RunReminders)
}
