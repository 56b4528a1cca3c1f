package routers

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/metrics"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Controllers groups every HTTP controller mounted by SetupRoutes.
type Controllers struct {
	Territoriality *controllers.TerritorialityController
	Workflow       *controllers.WorkflowController
	ServiceRequest *controllers.ServiceRequestController
	Organization   *controllers.OrganizationController
	Appointment    *controllers.AppointmentController
	Payment        *controllers.PaymentController
	Document       *controllers.DocumentController
	Places         *controllers.PlacesController
	Auth           *controllers.AuthController
	Ticket         *controllers.TicketController
	Call           *controllers.CallController
	Statistics     *controllers.StatisticsController
	Ops            *controllers.OpsController
}

// BasePath is the versioned API root, e.g. /api/v1.
func BasePath(internalConfig *config.InternalConfig) string {
	prefix := "/" + strings.Trim(internalConfig.App.EndpointPrefix, "/")
	return fmt.Sprintf("%s/%s", prefix, strings.Trim(internalConfig.App.Version, "/"))
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
	mw *middlewares.Middlewares,
	ctrls *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", constvars.HeaderXRequestID, constvars.HeaderXAPIKey},
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging(logger))
	router.Use(mw.ErrorHandler)
	router.Use(metrics.InstrumentHandler)
	router.Use(mw.APIKeyAuth)
	router.Use(mw.ConditionalRateLimit(mw.CreateRateLimiters()))

	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	publicLimiter := middlewares.NewRateLimiter(logger, internalConfig.App.PublicRequestsPerMinute, time.Minute, 5*time.Minute)

	router.Route(BasePath(internalConfig), func(r chi.Router) {
		r.Route("/territoriality", func(r chi.Router) {
			attachTerritorialityRoutes(r, publicLimiter, ctrls.Territoriality)
		})

		r.Route("/profiles", func(r chi.Router) {
			attachProfileRoutes(r, mw, ctrls.Territoriality)
		})

		r.Route("/workflow", func(r chi.Router) {
			attachWorkflowRoutes(r, mw, ctrls.Workflow)
		})

		r.Route("/services", func(r chi.Router) {
			attachServiceRoutes(r, ctrls.Workflow)
		})

		r.Route("/requests", func(r chi.Router) {
			attachServiceRequestRoutes(r, mw, ctrls.ServiceRequest, ctrls.Workflow, ctrls.Payment)
		})

		r.Route("/orgs", func(r chi.Router) {
			attachOrganizationRoutes(r, mw, ctrls.Organization, ctrls.Appointment, ctrls.Payment, ctrls.Statistics)
		})

		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, mw, ctrls.Appointment)
		})

		r.Route("/webhooks", func(r chi.Router) {
			attachWebhookRoutes(r, mw, ctrls.Payment)
		})

		r.Route("/documents", func(r chi.Router) {
			attachDocumentRoutes(r, mw, ctrls.Document)
		})

		r.Route("/places", func(r chi.Router) {
			attachPlacesRoutes(r, mw, ctrls.Places)
		})

		r.Route("/dev", func(r chi.Router) {
			attachDevRoutes(r, ctrls.Auth)
		})

		r.Route("/tickets", func(r chi.Router) {
			attachTicketRoutes(r, mw, ctrls.Ticket)
		})

		r.Route("/calls", func(r chi.Router) {
			attachCallRoutes(r, mw, ctrls.Call)
		})

		r.Route("/ops", func(r chi.Router) {
			attachOpsRoutes(r, mw, ctrls.Ops)
		})
	})
}

func allowedOrigins(internalConfig *config.InternalConfig) []string {
	if internalConfig.App.FrontendDomain == "" {
		return []string{"*"}
	}
	origins := strings.Split(internalConfig.App.FrontendDomain, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// protected chains session authentication with the RBAC route check.
func protected(router chi.Router, m *middlewares.Middlewares) chi.Router {
	return router.With(m.Authenticate, m.Authorize)
}
