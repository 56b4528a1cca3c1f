package middlewares

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const (
	HeaderAPIKey                   = "x-api-key"
	ContextAPIKeyAuth   contextKey = "api_key_auth"
	APIKeySuperadminUID            = "api-key-superadmin"
)

// APIKeyAuth authenticates back-office automation as a superadmin when the request carries
// the configured API key. Requests without the header pass through untouched.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(HeaderAPIKey)

		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if m.InternalConfig.App.SuperadminAPIKey == "" || apiKey != m.InternalConfig.App.SuperadminAPIKey {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingUserAgentKey, r.UserAgent()))

		next.ServeHTTP(w, r.WithContext(withAPIKeySession(r.Context())))
	})
}

// RequireSuperadminAPIKey rejects any request that does not carry the superadmin API key.
func (m *Middlewares) RequireSuperadminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(HeaderAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}
		if m.InternalConfig.App.SuperadminAPIKey == "" || apiKey != m.InternalConfig.App.SuperadminAPIKey {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r.WithContext(withAPIKeySession(r.Context())))
	})
}

func withAPIKeySession(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, ContextAPIKeyAuth, true)
	return context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, &models.Session{
		UserID: APIKeySuperadminUID,
		Role:   constvars.RoleSuperadmin,
	})
}
