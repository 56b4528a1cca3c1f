package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// attachDevRoutes mounts the account switcher. The usecase answers 404 outside development.
func attachDevRoutes(router chi.Router, authController *controllers.AuthController) {
	router.Get("/accounts", authController.ListDevAccounts)
	router.Post("/sign-in-tokens", authController.CreateDevSignInToken)
}
