package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTerritorialityRoutes(router chi.Router, publicLimiter *middlewares.RateLimiter, territorialityController *controllers.TerritorialityController) {
	router.With(publicLimiter.Limit).Post("/evaluate", territorialityController.Evaluate)
}

func attachProfileRoutes(router chi.Router, middlewares *middlewares.Middlewares, territorialityController *controllers.TerritorialityController) {
	protected(router, middlewares).Get("/me", territorialityController.GetMyProfile)
	protected(router, middlewares).Put("/me/location", territorialityController.UpdateProfileLocation)
}
