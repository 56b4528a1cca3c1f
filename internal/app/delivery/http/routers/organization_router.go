package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOrganizationRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	organizationController *controllers.OrganizationController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	statisticsController *controllers.StatisticsController,
) {
	router.Get("/", organizationController.FindAll)
	router.Get("/slug/{slug}", organizationController.FindBySlug)
	router.Get("/{orgID}/services", organizationController.FindServices)

	r := protected(router, middlewares)
	r.Get("/{orgID}/appointments", appointmentController.FindByOrgAndDate)
	r.Put("/{orgID}/agent-schedules", appointmentController.UpsertAgentSchedule)
	r.Get("/{orgID}/payments", paymentController.FindByOrg)
	r.Get("/{orgID}/payments/stats", paymentController.GetStats)
	r.Get("/{orgID}/statistics", statisticsController.GetOrgStatistics)
}
