package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDocumentRoutes(router chi.Router, middlewares *middlewares.Middlewares, documentController *controllers.DocumentController) {
	r := protected(router, middlewares)
	r.Post("/", documentController.Upload)
	r.Get("/me", documentController.FindMine)
	r.Post("/analyze", documentController.Analyze)
	r.Get("/{documentID}", documentController.FindByID)
	r.Post("/{documentID}/analyze", documentController.AnalyzeStored)
}
