package mocks

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type NotificationPublisher struct{ mock.Mock }

func (m *NotificationPublisher) Publish(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

type LockerService struct{ mock.Mock }

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *LockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

type RedisRepository struct{ mock.Mock }

func (m *RedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func (m *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}

type Storage struct{ mock.Mock }

func (m *Storage) UploadFile(ctx context.Context, file io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	args := m.Called(ctx, file, size, bucketName, objectName, contentType)
	return args.String(0), args.Error(1)
}

func (m *Storage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	args := m.Called(ctx, bucketName, objectName)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *Storage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type PaymentGateway struct{ mock.Mock }

func (m *PaymentGateway) CreatePaymentIntent(ctx context.Context, input *contracts.CreatePaymentIntentInput) (*contracts.PaymentIntentResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*contracts.PaymentIntentResult)
	return result, args.Error(1)
}

func (m *PaymentGateway) ParseWebhookEvent(payload []byte, signature string) (*contracts.PaymentEvent, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*contracts.PaymentEvent)
	return event, args.Error(1)
}

type DocumentAnalyzer struct{ mock.Mock }

func (m *DocumentAnalyzer) Analyze(ctx context.Context, data []byte, mimeType, documentType string) (*models.DocumentAnalysis, error) {
	args := m.Called(ctx, data, mimeType, documentType)
	analysis, _ := args.Get(0).(*models.DocumentAnalysis)
	return analysis, args.Error(1)
}

type PlacesClient struct{ mock.Mock }

func (m *PlacesClient) Autocomplete(ctx context.Context, request *requests.PlacesAutocomplete) ([]responses.PlacePrediction, error) {
	args := m.Called(ctx, request)
	predictions, _ := args.Get(0).([]responses.PlacePrediction)
	return predictions, args.Error(1)
}

func (m *PlacesClient) GetDetails(ctx context.Context, placeID, language string) (*responses.Address, error) {
	args := m.Called(ctx, placeID, language)
	address, _ := args.Get(0).(*responses.Address)
	return address, args.Error(1)
}

type IdentityProvider struct{ mock.Mock }

func (m *IdentityProvider) CreateSignInToken(ctx context.Context, userID string) (*responses.SignInToken, error) {
	args := m.Called(ctx, userID)
	token, _ := args.Get(0).(*responses.SignInToken)
	return token, args.Error(1)
}

type TelephonyClient struct{ mock.Mock }

func (m *TelephonyClient) StartOutboundCall(ctx context.Context, aircallUserID, numberID, to string) error {
	return m.Called(ctx, aircallUserID, numberID, to).Error(0)
}

type SessionVerifier struct{ mock.Mock }

func (m *SessionVerifier) VerifySessionToken(token string) (*models.Session, error) {
	args := m.Called(token)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

type RBACEnforcer struct{ mock.Mock }

func (m *RBACEnforcer) Enforce(role, path, method string) (bool, error) {
	args := m.Called(role, path, method)
	return args.Bool(0), args.Error(1)
}
