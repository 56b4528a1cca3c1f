package middlewares

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Authorize checks the session role against the RBAC policy for the request path and method.
// It must run after Authenticate.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		if !ok || session == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingSessionData(nil))
			return
		}

		allowed, err := m.RBACEnforcer.Enforce(session.Role, r.URL.Path, r.Method)
		if err != nil {
			m.Log.Error("Middlewares.Authorize error enforcing policy",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRBACEnforce(err))
			return
		}
		if !allowed {
			m.Log.Info("Middlewares.Authorize denied",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingUserIDKey, session.UserID),
				zap.String(constvars.LoggingRoleKey, session.Role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %q cannot %s %s", session.Role, r.Method, r.URL.Path)))
			return
		}

		next.ServeHTTP(w, r)
	})
}
