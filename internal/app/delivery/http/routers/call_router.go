package routers

import (
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"
	"consulat-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCallRoutes(router chi.Router, middlewares *middlewares.Middlewares, callController *controllers.CallController) {
	protected(router, middlewares).
		With(middlewares.ResourceQuota(constvars.QuotaGroupOutboundCall, constvars.QuotaOutboundCallWindowSec, constvars.QuotaOutboundCallMax)).
		Post("/", callController.StartCall)
}
