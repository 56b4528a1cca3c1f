package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPlacesRoutes(router chi.Router, middlewares *middlewares.Middlewares, placesController *controllers.PlacesController) {
	r := protected(router, middlewares)
	r.Get("/autocomplete", placesController.Autocomplete)
	r.Get("/{placeID}", placesController.GetDetails)
}
