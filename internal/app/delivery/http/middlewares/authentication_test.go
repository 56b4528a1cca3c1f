package middlewares

import (
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAuthenticate(t *testing.T) {
	citizen := &models.Session{UserID: "user_1", SessionID: "sess_1", Role: constvars.RoleCitizen}

	newHandler := func(verifier *mocks.SessionVerifier, captured **models.Session) http.Handler {
		m := &Middlewares{Log: zap.NewNop(), SessionVerifier: verifier}
		return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*captured, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("valid bearer token", func(t *testing.T) {
		verifier := new(mocks.SessionVerifier)
		verifier.On("VerifySessionToken", "good-token").Return(citizen, nil)
		var captured *models.Session

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good-token")
		rr := httptest.NewRecorder()
		newHandler(verifier, &captured).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, citizen, captured)
		verifier.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		verifier := new(mocks.SessionVerifier)
		var captured *models.Session

		rr := httptest.NewRecorder()
		newHandler(verifier, &captured).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, captured)
		verifier.AssertNotCalled(t, "VerifySessionToken", "")
	})

	t.Run("rejected token", func(t *testing.T) {
		verifier := new(mocks.SessionVerifier)
		verifier.On("VerifySessionToken", "expired").Return(nil, exceptions.ErrTokenInvalidOrExpired(errors.New("token is expired")))
		var captured *models.Session

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer expired")
		rr := httptest.NewRecorder()
		newHandler(verifier, &captured).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, captured)
	})

	t.Run("session already resolved by api key", func(t *testing.T) {
		verifier := new(mocks.SessionVerifier)
		var captured *models.Session

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tickets", nil)
		req = req.WithContext(withAPIKeySession(req.Context()))
		rr := httptest.NewRecorder()
		newHandler(verifier, &captured).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, APIKeySuperadminUID, captured.UserID)
		verifier.AssertNotCalled(t, "VerifySessionToken", "")
	})
}

func TestAuthorize(t *testing.T) {
	newRequest := func(session *models.Session) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs/org_1/statistics", nil)
		if session != nil {
			req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session))
		}
		return req
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("allowed role", func(t *testing.T) {
		enforcer := new(mocks.RBACEnforcer)
		enforcer.On("Enforce", constvars.RoleAgent, "/api/v1/orgs/org_1/statistics", http.MethodGet).Return(true, nil)
		m := &Middlewares{Log: zap.NewNop(), RBACEnforcer: enforcer}

		rr := httptest.NewRecorder()
		m.Authorize(ok).ServeHTTP(rr, newRequest(&models.Session{UserID: "agent_1", Role: constvars.RoleAgent}))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("denied role", func(t *testing.T) {
		enforcer := new(mocks.RBACEnforcer)
		enforcer.On("Enforce", constvars.RoleCitizen, "/api/v1/orgs/org_1/statistics", http.MethodGet).Return(false, nil)
		m := &Middlewares{Log: zap.NewNop(), RBACEnforcer: enforcer}

		rr := httptest.NewRecorder()
		m.Authorize(ok).ServeHTTP(rr, newRequest(&models.Session{UserID: "user_1", Role: constvars.RoleCitizen}))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("enforcer failure", func(t *testing.T) {
		enforcer := new(mocks.RBACEnforcer)
		enforcer.On("Enforce", constvars.RoleAdmin, "/api/v1/orgs/org_1/statistics", http.MethodGet).Return(false, errors.New("model not loaded"))
		m := &Middlewares{Log: zap.NewNop(), RBACEnforcer: enforcer}

		rr := httptest.NewRecorder()
		m.Authorize(ok).ServeHTTP(rr, newRequest(&models.Session{UserID: "admin_1", Role: constvars.RoleAdmin}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("no session", func(t *testing.T) {
		m := &Middlewares{Log: zap.NewNop(), RBACEnforcer: new(mocks.RBACEnforcer)}

		rr := httptest.NewRecorder()
		m.Authorize(ok).ServeHTTP(rr, newRequest(nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(zap.NewNop(), 2, time.Hour, time.Minute)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/territoriality/evaluate", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	current := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(zap.NewNop(), 1, time.Minute, time.Minute)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.limiters, 2)
	assert.Len(t, limiter.blocked, 1)

	current = current.Add(3 * time.Minute)
	assert.True(t, limiter.allow("10.0.0.3"))

	assert.Len(t, limiter.limiters, 1)
	assert.Contains(t, limiter.limiters, "10.0.0.3")
	assert.Empty(t, limiter.blocked)
}
