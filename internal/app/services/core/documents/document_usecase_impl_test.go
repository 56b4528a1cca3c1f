package documents

import (
	"bytes"
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts/mocks"
	"consulat-service/internal/app/models"
	"consulat-service/internal/app/services/shared/gemini"
	"consulat-service/internal/app/services/shared/ratelimiter"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testDeps struct {
	documents *mocks.DocumentRepository
	requests  *mocks.ServiceRequestRepository
	storage   *mocks.Storage
	analyzer  *mocks.DocumentAnalyzer
}

var citizen = &models.Session{UserID: "user_1", Role: constvars.RoleCitizen}

func newTestUsecase(analysisBurst int) (*documentUsecase, testDeps) {
	deps := testDeps{
		documents: new(mocks.DocumentRepository),
		requests:  new(mocks.ServiceRequestRepository),
		storage:   new(mocks.Storage),
		analyzer:  new(mocks.DocumentAnalyzer),
	}
	cfg := &config.InternalConfig{Minio: config.AppMinio{
		BucketName:                               "consulat",
		DocumentMaxUploadSizeInMB:                1,
		MinioPreSignedUrlObjectExpiryTimeInHours: 2,
	}}
	uc := newDocumentUsecase(deps.documents, deps.requests, deps.storage, deps.analyzer, ratelimiter.NewKeyedLimiter(1, analysisBurst), cfg, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc, deps
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func TestDocumentUsecase_Upload(t *testing.T) {
	t.Run("stores the object and returns a presigned url", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		deps.storage.On("UploadFile", mock.Anything, mock.Anything, int64(2048), "consulat", mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "documents/user_1/") && strings.HasSuffix(name, ".jpg")
		}), "image/jpeg").Return("documents/user_1/x.jpg", nil)
		deps.documents.On("Create", mock.Anything, mock.AnythingOfType("*models.Document")).Return(nil)
		deps.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "consulat", mock.Anything, 2*time.Hour).Return("https://minio/signed", nil)

		document, err := uc.Upload(context.Background(), citizen, bytes.NewReader(make([]byte, 2048)), &requests.UploadDocument{
			DocumentType: "passport",
			FileName:     "Passeport.JPG",
			MimeType:     "image/jpeg",
			Size:         2048,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://minio/signed", document.URL)
		assert.Equal(t, "user_1", document.OwnerID)
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		uc, _ := newTestUsecase(1)

		_, err := uc.Upload(context.Background(), citizen, strings.NewReader("x"), &requests.UploadDocument{FileName: "a.exe", MimeType: "application/x-msdownload", Size: 1})
		assert.Equal(t, 400, statusCode(t, err))
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		uc, deps := newTestUsecase(1)

		_, err := uc.Upload(context.Background(), citizen, strings.NewReader("x"), &requests.UploadDocument{FileName: "a.pdf", MimeType: "application/pdf", Size: 2 * 1024 * 1024})
		assert.Equal(t, 413, statusCode(t, err))
		deps.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects attaching to someone else's request", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", UserID: "user_2"}, nil)

		_, err := uc.Upload(context.Background(), citizen, strings.NewReader("x"), &requests.UploadDocument{RequestID: "req_1", FileName: "a.pdf", MimeType: "application/pdf", Size: 1})
		assert.Equal(t, 403, statusCode(t, err))
	})
}

func TestDocumentUsecase_Analyze(t *testing.T) {
	image := base64.StdEncoding.EncodeToString([]byte("fake-image"))

	t.Run("success", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		analysis := &models.DocumentAnalysis{DocumentType: "passport", IsValid: true, Confidence: 0.9}
		deps.analyzer.On("Analyze", mock.Anything, []byte("fake-image"), "image/png", "passport").Return(analysis, nil)

		result, err := uc.Analyze(context.Background(), citizen, &requests.AnalyzeDocument{ImageBase64: image, MimeType: "image/png", DocumentType: "passport"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, analysis, result.Analysis)
	})

	t.Run("unparsable model output yields PARSE_ERROR", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		deps.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, gemini.ErrUnparsableResponse)

		result, err := uc.Analyze(context.Background(), citizen, &requests.AnalyzeDocument{ImageBase64: image, MimeType: "image/png"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "PARSE_ERROR", result.Error)
	})

	t.Run("rate limited per user", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		deps.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.DocumentAnalysis{}, nil).Once()

		_, err := uc.Analyze(context.Background(), citizen, &requests.AnalyzeDocument{ImageBase64: image, MimeType: "image/png"})
		require.NoError(t, err)

		_, err = uc.Analyze(context.Background(), citizen, &requests.AnalyzeDocument{ImageBase64: image, MimeType: "image/png"})
		assert.Equal(t, 429, statusCode(t, err))

		other := &models.Session{UserID: "user_2", Role: constvars.RoleCitizen}
		deps.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&models.DocumentAnalysis{}, nil).Once()
		_, err = uc.Analyze(context.Background(), other, &requests.AnalyzeDocument{ImageBase64: image, MimeType: "image/png"})
		assert.NoError(t, err)
	})
}

func TestDocumentUsecase_AnalyzeStored(t *testing.T) {
	stored := &models.Document{ID: "doc_1", OwnerID: "user_1", RequestID: "req_1", ObjectName: "documents/user_1/a.png", MimeType: "image/png", DocumentType: "passport"}

	t.Run("persists a successful analysis", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		analysis := &models.DocumentAnalysis{DocumentType: "passport", IsValid: true}
		deps.documents.On("FindByID", mock.Anything, "doc_1").Return(stored, nil)
		deps.storage.On("GetObject", mock.Anything, "consulat", "documents/user_1/a.png").Return([]byte("img"), nil)
		deps.analyzer.On("Analyze", mock.Anything, []byte("img"), "image/png", "passport").Return(analysis, nil)
		deps.documents.On("UpdateAnalysis", mock.Anything, "doc_1", analysis).Return(nil)

		result, err := uc.AnalyzeStored(context.Background(), citizen, "doc_1")
		require.NoError(t, err)
		assert.True(t, result.Success)
		deps.documents.AssertExpectations(t)
	})

	t.Run("agents of the handling org may analyze", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		agent := &models.Session{UserID: "agent_1", Role: constvars.RoleAgent, OrgID: "org_1"}
		deps.documents.On("FindByID", mock.Anything, "doc_1").Return(stored, nil)
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", OrgID: "org_1"}, nil)
		deps.storage.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return([]byte("img"), nil)
		deps.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("upstream 500"))

		result, err := uc.AnalyzeStored(context.Background(), agent, "doc_1")
		require.NoError(t, err)
		assert.False(t, result.Success)
		deps.documents.AssertNotCalled(t, "UpdateAnalysis", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("agents of another org are rejected", func(t *testing.T) {
		uc, deps := newTestUsecase(1)
		agent := &models.Session{UserID: "agent_9", Role: constvars.RoleAgent, OrgID: "org_9"}
		deps.documents.On("FindByID", mock.Anything, "doc_1").Return(stored, nil)
		deps.requests.On("FindByID", mock.Anything, "req_1").Return(&models.ServiceRequest{ID: "req_1", OrgID: "org_1"}, nil)

		_, err := uc.AnalyzeStored(context.Background(), agent, "doc_1")
		assert.Equal(t, 403, statusCode(t, err))
	})
}
