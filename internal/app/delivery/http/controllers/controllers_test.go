package controllers

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTerritorialityUsecase struct{ mock.Mock }

func (m *mockTerritorialityUsecase) Evaluate(ctx context.Context, request *requests.EvaluateTerritoriality) (*responses.TerritorialityDecision, error) {
	args := m.Called(ctx, request)
	decision, _ := args.Get(0).(*responses.TerritorialityDecision)
	return decision, args.Error(1)
}

func (m *mockTerritorialityUsecase) GetMyProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	args := m.Called(ctx, session)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *mockTerritorialityUsecase) UpdateProfileLocation(ctx context.Context, session *models.Session, request *requests.UpdateProfileLocation) (*responses.ProfileLocationUpdate, error) {
	args := m.Called(ctx, session, request)
	update, _ := args.Get(0).(*responses.ProfileLocationUpdate)
	return update, args.Error(1)
}

type mockTicketUsecase struct{ mock.Mock }

func (m *mockTicketUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateTicket) (*models.Ticket, error) {
	args := m.Called(ctx, session, request)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

func (m *mockTicketUsecase) FindMine(ctx context.Context, session *models.Session) ([]models.Ticket, error) {
	args := m.Called(ctx, session)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *mockTicketUsecase) FindAll(ctx context.Context, status string) ([]models.Ticket, error) {
	args := m.Called(ctx, status)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *mockTicketUsecase) FindByID(ctx context.Context, session *models.Session, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, session, ticketID)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

func (m *mockTicketUsecase) AddMessage(ctx context.Context, session *models.Session, ticketID string, request *requests.AddTicketMessage) (*models.TicketMessage, error) {
	args := m.Called(ctx, session, ticketID, request)
	message, _ := args.Get(0).(*models.TicketMessage)
	return message, args.Error(1)
}

func (m *mockTicketUsecase) UpdateStatus(ctx context.Context, session *models.Session, ticketID string, request *requests.UpdateTicketStatus) (*models.Ticket, error) {
	args := m.Called(ctx, session, ticketID, request)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

func (m *mockTicketUsecase) Assign(ctx context.Context, session *models.Session, ticketID string, request *requests.AssignTicket) (*models.Ticket, error) {
	args := m.Called(ctx, session, ticketID, request)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRequest(method, target, body string, session *models.Session, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "req-test")
	if session != nil {
		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, session)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestTerritorialityController_Evaluate(t *testing.T) {
	t.Run("valid body returns the decision", func(t *testing.T) {
		usecase := new(mockTerritorialityUsecase)
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: usecase}
		expected := &requests.EvaluateTerritoriality{ResidenceCountry: "FR", CurrentLocation: "GA", StayDurationMonths: 7}
		usecase.On("Evaluate", mock.Anything, expected).Return(&responses.TerritorialityDecision{
			ShouldTransferToCurrentLocation: true,
			Reason:                          "stay of 7 months",
		}, nil)

		rr := httptest.NewRecorder()
		ctrl.Evaluate(rr, newRequest(http.MethodPost, "/api/v1/territoriality/evaluate",
			`{"residenceCountry":"FR","currentLocation":"GA","stayDurationMonths":7}`, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeEnvelope(t, rr)
		assert.True(t, body.Success)
		var decision responses.TerritorialityDecision
		require.NoError(t, json.Unmarshal(body.Data, &decision))
		assert.True(t, decision.ShouldTransferToCurrentLocation)
		usecase.AssertExpectations(t)
	})

	t.Run("country codes are normalized before the usecase", func(t *testing.T) {
		usecase := new(mockTerritorialityUsecase)
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: usecase}
		expected := &requests.EvaluateTerritoriality{ResidenceCountry: "GA", CurrentLocation: "GA", StayDurationMonths: 12}
		usecase.On("Evaluate", mock.Anything, expected).Return(&responses.TerritorialityDecision{}, nil)

		rr := httptest.NewRecorder()
		ctrl.Evaluate(rr, newRequest(http.MethodPost, "/api/v1/territoriality/evaluate",
			`{"residenceCountry":"ga","currentLocation":" GA ","stayDurationMonths":12}`, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("negative duration is rejected before the usecase", func(t *testing.T) {
		usecase := new(mockTerritorialityUsecase)
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: usecase}

		rr := httptest.NewRecorder()
		ctrl.Evaluate(rr, newRequest(http.MethodPost, "/api/v1/territoriality/evaluate",
			`{"residenceCountry":"FR","currentLocation":"GA","stayDurationMonths":-1}`, nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: new(mockTerritorialityUsecase)}

		rr := httptest.NewRecorder()
		ctrl.Evaluate(rr, newRequest(http.MethodPost, "/api/v1/territoriality/evaluate", `{"residenceCountry":`, nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
	})

	t.Run("missing request id", func(t *testing.T) {
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: new(mockTerritorialityUsecase)}

		rr := httptest.NewRecorder()
		ctrl.Evaluate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/territoriality/evaluate", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestTerritorialityController_GetMyProfile(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		ctrl := &TerritorialityController{Log: zap.NewNop(), TerritorialityUsecase: new(mockTerritorialityUsecase)}

		rr := httptest.NewRecorder()
		ctrl.GetMyProfile(rr, newRequest(http.MethodGet, "/api/v1/profiles/me", "", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestTicketController(t *testing.T) {
	owner := &models.Session{UserID: "user_1", Role: constvars.RoleCitizen}

	t.Run("create returns 201", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("Create", mock.Anything, owner, mock.MatchedBy(func(r *requests.CreateTicket) bool {
			return r.Subject == "Passport" && r.Category == "request"
		})).Return(&models.Ticket{ID: "t1", Reference: "TCK-1", Status: models.TicketStatusOpen}, nil)

		rr := httptest.NewRecorder()
		ctrl.Create(rr, newRequest(http.MethodPost, "/api/v1/tickets",
			`{"subject":"Passport","description":"Lost","category":"request"}`, owner, nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("create rejects an unknown category", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}

		rr := httptest.NewRecorder()
		ctrl.Create(rr, newRequest(http.MethodPost, "/api/v1/tickets",
			`{"subject":"Passport","description":"Lost","category":"gossip"}`, owner, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("find by id forwards the path parameter", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("FindByID", mock.Anything, owner, "t1").Return(&models.Ticket{ID: "t1"}, nil)

		rr := httptest.NewRecorder()
		ctrl.FindByID(rr, newRequest(http.MethodGet, "/api/v1/tickets/t1", "", owner, map[string]string{constvars.URLParamTicketID: "t1"}))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("usecase errors keep their status", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("FindByID", mock.Anything, owner, "t2").Return(nil, exceptions.ErrResourceNotFound(nil, "ticket"))

		rr := httptest.NewRecorder()
		ctrl.FindByID(rr, newRequest(http.MethodGet, "/api/v1/tickets/t2", "", owner, map[string]string{constvars.URLParamTicketID: "t2"}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("deadline overruns become gateway timeouts", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("FindMine", mock.Anything, owner).Return(nil, context.DeadlineExceeded)

		rr := httptest.NewRecorder()
		ctrl.FindMine(rr, newRequest(http.MethodGet, "/api/v1/tickets/me", "", owner, nil))

		assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("FindAll", mock.Anything, "open").Return(nil, nil)

		rr := httptest.NewRecorder()
		ctrl.FindAll(rr, newRequest(http.MethodGet, "/api/v1/tickets?status=open", "", owner, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rr).Data))
	})

	t.Run("generic errors are 500", func(t *testing.T) {
		usecase := new(mockTicketUsecase)
		ctrl := &TicketController{Log: zap.NewNop(), TicketUsecase: usecase}
		usecase.On("FindMine", mock.Anything, owner).Return(nil, errors.New("boom"))

		rr := httptest.NewRecorder()
		ctrl.FindMine(rr, newRequest(http.MethodGet, "/api/v1/tickets/me", "", owner, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
