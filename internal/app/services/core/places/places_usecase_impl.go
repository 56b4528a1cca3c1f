package places

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	minAutocompleteInputLength = 3
	apiKeyNotConfigured        = "API key not configured"
)

type placesUsecase struct {
	PlacesClient    contracts.PlacesClient
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

var (
	placesUsecaseInstance contracts.PlacesUsecase
	oncePlacesUsecase     sync.Once
)

func NewPlacesUsecase(placesClient contracts.PlacesClient, redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PlacesUsecase {
	oncePlacesUsecase.Do(func() {
		placesUsecaseInstance = &placesUsecase{
			PlacesClient:    placesClient,
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
	})
	return placesUsecaseInstance
}

// Autocomplete never fails the HTTP call: upstream problems are reported in the envelope.
func (uc *placesUsecase) Autocomplete(ctx context.Context, request *requests.PlacesAutocomplete) (*responses.PlacesAutocomplete, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if len([]rune(request.Input)) < minAutocompleteInputLength {
		return &responses.PlacesAutocomplete{Success: true, Predictions: []responses.PlacePrediction{}}, nil
	}
	if uc.InternalConfig.Google.MapsAPIKey == "" {
		return &responses.PlacesAutocomplete{Success: false, Predictions: []responses.PlacePrediction{}, Error: apiKeyNotConfigured}, nil
	}

	predictions, err := uc.PlacesClient.Autocomplete(ctx, request)
	if err != nil {
		uc.Log.Error("placesUsecase.Autocomplete error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return &responses.PlacesAutocomplete{Success: false, Predictions: []responses.PlacePrediction{}, Error: upstreamMessage(err)}, nil
	}
	return &responses.PlacesAutocomplete{Success: true, Predictions: predictions}, nil
}

// GetDetails serves place details from the Redis cache when present. Cache failures only cost
// an upstream call.
func (uc *placesUsecase) GetDetails(ctx context.Context, request *requests.PlaceDetails) (*responses.PlaceDetails, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if uc.InternalConfig.Google.MapsAPIKey == "" {
		return &responses.PlaceDetails{Success: false, Error: apiKeyNotConfigured}, nil
	}

	language := request.Language
	if language == "" {
		language = uc.InternalConfig.Google.DefaultLanguage
	}
	cacheKey := fmt.Sprintf(constvars.RedisKeyPlaceDetailsFormat, language, request.PlaceID)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("placesUsecase.GetDetails cache read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	if cached != "" {
		var address responses.Address
		if err := json.Unmarshal([]byte(cached), &address); err == nil {
			return &responses.PlaceDetails{Success: true, Details: &address}, nil
		}
	}

	address, err := uc.PlacesClient.GetDetails(ctx, request.PlaceID, language)
	if err != nil {
		uc.Log.Error("placesUsecase.GetDetails error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return &responses.PlaceDetails{Success: false, Error: upstreamMessage(err)}, nil
	}

	ttl := time.Duration(constvars.RedisPlaceDetailsTTLInHours) * time.Hour
	if err := uc.RedisRepository.Set(ctx, cacheKey, address, ttl); err != nil {
		uc.Log.Warn("placesUsecase.GetDetails cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	return &responses.PlaceDetails{Success: true, Details: address}, nil
}

// upstreamMessage unwraps the provider message carried by an external service error.
func upstreamMessage(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		if cause := customErr.Unwrap(); cause != nil {
			return cause.Error()
		}
	}
	return err.Error()
}
