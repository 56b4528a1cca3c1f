package middlewares

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/app/services/shared/ratelimiter"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const headerRetryAfter = "Retry-After"

// ResourceQuota caps how many times one caller may hit a route per window. The counter lives in
// Redis so the quota holds across replicas. Limiter failures let the request through.
func (m *Middlewares) ResourceQuota(group string, windowSec, maxQuota int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.ResourceLimiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			resource := r.RemoteAddr
			if session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session); ok && session != nil {
				resource = session.UserID
			}

			output, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
				ResourceName:      resource,
				LimiterGroupName:  group,
				WindowDurationSec: windowSec,
				MaxQuota:          maxQuota,
			})
			if err != nil {
				requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
				m.Log.Warn("Middlewares.ResourceQuota limiter unavailable",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String("group", group),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !output.Allowed {
				w.Header().Set(headerRetryAfter, strconv.Itoa(output.RetryAfterSecs))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(fmt.Errorf("quota of %d per %ds exhausted", maxQuota, windowSec), group))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
