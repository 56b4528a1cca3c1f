package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	r := protected(router, middlewares)
	r.Get("/slots", appointmentController.GetAvailableSlots)
	r.Get("/me", appointmentController.FindMine)
	r.Post("/", appointmentController.Book)
	r.Post("/{appointmentID}/cancel", appointmentController.Cancel)
	r.Post("/{appointmentID}/complete", appointmentController.Complete)
	r.Post("/{appointmentID}/no-show", appointmentController.MarkNoShow)
}
