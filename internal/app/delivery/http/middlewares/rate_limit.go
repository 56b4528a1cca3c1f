package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// ConditionalRateLimit routes requests authenticated with the superadmin API key to
// apiKeyLimiter; browser and citizen traffic goes through normalLimiter.
func (m *Middlewares) ConditionalRateLimit(normalLimiter, apiKeyLimiter func(next http.Handler) http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		normal := normalLimiter(next)
		apiKey := apiKeyLimiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAPIKey, ok := r.Context().Value(ContextAPIKeyAuth).(bool); ok && isAPIKey {
				apiKey.ServeHTTP(w, r)
				return
			}
			normal.ServeHTTP(w, r)
		})
	}
}

// CreateRateLimiters builds the per-IP, per-second limiters for consular traffic
// (APP_MAX_REQUEST) and back-office automation (APP_SUPERADMIN_API_KEY_RATE_LIMIT).
func (m *Middlewares) CreateRateLimiters() (normalLimiter, apiKeyLimiter func(next http.Handler) http.Handler) {
	normalLimiter = httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
	apiKeyLimiter = httprate.LimitByIP(m.InternalConfig.App.SuperadminAPIKeyRateLimit, time.Second)
	return normalLimiter, apiKeyLimiter
}
