package controllers

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// requestIDFromContext writes the error response itself when the request ID is missing.
func requestIDFromContext(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func sessionFromContext(log *zap.Logger, w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingSessionData(nil))
		return nil, false
	}
	return session, true
}

// requiredURLParam reads a chi path parameter and rejects blank values.
func requiredURLParam(log *zap.Logger, w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		utils.BuildErrorResponse(log, w, exceptions.ErrURLParamValidation(nil, name))
		return "", false
	}
	return value, true
}

// normalizer is implemented by request bodies that canonicalize their fields before validation.
type normalizer interface {
	Normalize()
}

// decodeAndValidate parses the JSON body into dst, normalizes it when supported and runs
// struct validation on it.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return validate(log, w, requestID, dst)
}

func validate(log *zap.Logger, w http.ResponseWriter, requestID string, dst interface{}) bool {
	if err := utils.ValidateStruct(dst); err != nil {
		log.Error("Request validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

// writeUsecaseError maps a deadline overrun to a gateway timeout and passes everything else through.
func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
