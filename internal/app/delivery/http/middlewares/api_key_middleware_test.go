package middlewares

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-superadmin-api-key-12345"

func newAPIKeyMiddlewares() *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				SuperadminAPIKey: testAPIKey,
			},
		},
	}
}

func TestRequireSuperadminAPIKey(t *testing.T) {
	middlewares := newAPIKeyMiddlewares()

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(ContextAPIKeyAuth).(bool)
		assert.True(t, ok, "ContextAPIKeyAuth should be set")
		assert.True(t, apiKeyAuth, "ContextAPIKeyAuth should be true")

		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		assert.True(t, ok, "session should be set in context")
		assert.Equal(t, constvars.RoleSuperadmin, session.Role, "role should be superadmin")
		assert.Equal(t, APIKeySuperadminUID, session.UserID)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tickets", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tickets", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tickets", nil)
		req.Header.Set(HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unconfigured key rejects every value", func(t *testing.T) {
		unconfigured := &Middlewares{Log: zap.NewNop(), InternalConfig: &config.InternalConfig{}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tickets", nil)
		req.Header.Set(HeaderAPIKey, "anything")

		rr := httptest.NewRecorder()
		unconfigured.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	middlewares := newAPIKeyMiddlewares()

	t.Run("No API Key - Should Pass Through", func(t *testing.T) {
		var captured context.Context
		handler := middlewares.APIKeyAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Context()
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/requests", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		_, ok := captured.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		assert.False(t, ok, "no session should be injected without an API key")
	})

	t.Run("Valid API Key - Should Inject Superadmin Session", func(t *testing.T) {
		var captured *models.Session
		handler := middlewares.APIKeyAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.True(t, captured.IsSuperadmin())
	})

	t.Run("Invalid API Key - Should Fail", func(t *testing.T) {
		handler := middlewares.APIKeyAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached")
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", nil)
		req.Header.Set(HeaderAPIKey, "invalid-api-key")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
