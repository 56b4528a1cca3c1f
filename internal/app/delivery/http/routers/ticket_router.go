package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"
	"consulat-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachTicketRoutes(router chi.Router, middlewares *middlewares.Middlewares, ticketController *controllers.TicketController) {
	r := protected(router, middlewares)
	r.With(middlewares.ResourceQuota(constvars.QuotaGroupTicketCreation, constvars.QuotaTicketCreationWindowSec, constvars.QuotaTicketCreationMax)).
		Post("/", ticketController.Create)
	r.Get("/", ticketController.FindAll)
	r.Get("/me", ticketController.FindMine)
	r.Get("/{ticketID}", ticketController.FindByID)
	r.Post("/{ticketID}/messages", ticketController.AddMessage)
	r.Patch("/{ticketID}/status", ticketController.UpdateStatus)
	r.Post("/{ticketID}/assign", ticketController.Assign)
}
