package documents

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/app/services/shared/gemini"
	"consulat-service/internal/app/services/shared/ratelimiter"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/metrics"
	"consulat-service/internal/pkg/utils"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	documentObjectPrefix  = "documents"
	analysisLimiterScope  = "document_analysis"
	parseErrorCode        = "PARSE_ERROR"
	analysisFailedMessage = "Erreur lors de l'analyse du document"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heic":      true,
	"application/pdf": true,
}

type documentUsecase struct {
	DocumentRepository       contracts.DocumentRepository
	ServiceRequestRepository contracts.ServiceRequestRepository
	Storage                  contracts.Storage
	Analyzer                 contracts.DocumentAnalyzer
	AnalysisLimiter          *ratelimiter.KeyedLimiter
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
	now                      func() time.Time
}

var (
	documentUsecaseInstance contracts.DocumentUsecase
	onceDocumentUsecase     sync.Once
)

func NewDocumentUsecase(
	documentRepository contracts.DocumentRepository,
	serviceRequestRepository contracts.ServiceRequestRepository,
	storage contracts.Storage,
	analyzer contracts.DocumentAnalyzer,
	analysisLimiter *ratelimiter.KeyedLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DocumentUsecase {
	onceDocumentUsecase.Do(func() {
		documentUsecaseInstance = newDocumentUsecase(
			documentRepository,
			serviceRequestRepository,
			storage,
			analyzer,
			analysisLimiter,
			internalConfig,
			logger,
		)
	})
	return documentUsecaseInstance
}

func newDocumentUsecase(
	documentRepository contracts.DocumentRepository,
	serviceRequestRepository contracts.ServiceRequestRepository,
	storage contracts.Storage,
	analyzer contracts.DocumentAnalyzer,
	analysisLimiter *ratelimiter.KeyedLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *documentUsecase {
	return &documentUsecase{
		DocumentRepository:       documentRepository,
		ServiceRequestRepository: serviceRequestRepository,
		Storage:                  storage,
		Analyzer:                 analyzer,
		AnalysisLimiter:          analysisLimiter,
		InternalConfig:           internalConfig,
		Log:                      logger,
		now:                      time.Now,
	}
}

func (uc *documentUsecase) Upload(ctx context.Context, session *models.Session, file io.Reader, request *requests.UploadDocument) (*responses.Document, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("documentUsecase.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.Int64("size", request.Size),
	)

	if !allowedMimeTypes[request.MimeType] {
		return nil, exceptions.ErrUnsupportedDocumentType(nil, request.MimeType)
	}
	maxSize := uc.InternalConfig.Minio.DocumentMaxUploadSizeInMB * 1024 * 1024
	if maxSize > 0 && request.Size > maxSize {
		return nil, exceptions.ErrDocumentTooLarge(fmt.Errorf("document of %d bytes exceeds %d bytes", request.Size, maxSize))
	}

	if request.RequestID != "" {
		serviceRequest, err := uc.ServiceRequestRepository.FindByID(ctx, request.RequestID)
		if err != nil {
			return nil, err
		}
		if serviceRequest == nil {
			return nil, exceptions.ErrResourceNotFound(nil, "request")
		}
		if serviceRequest.UserID != session.UserID {
			return nil, exceptions.ErrNotResourceOwner(errors.New("request " + request.RequestID))
		}
	}

	objectName := utils.GenerateObjectName(documentObjectPrefix, session.UserID, request.FileName)
	_, err := uc.Storage.UploadFile(ctx, file, request.Size, uc.InternalConfig.Minio.BucketName, objectName, request.MimeType)
	if err != nil {
		uc.Log.Error("documentUsecase.Upload error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	document := &models.Document{
		ID:           uuid.NewString(),
		OwnerID:      session.UserID,
		RequestID:    request.RequestID,
		DocumentType: request.DocumentType,
		FileName:     request.FileName,
		ObjectName:   objectName,
		MimeType:     request.MimeType,
		Size:         request.Size,
		TimeModel:    models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if err := uc.DocumentRepository.Create(ctx, document); err != nil {
		uc.Log.Error("documentUsecase.Upload error saving metadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("documentUsecase.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, document.ID),
	)
	return uc.withURL(ctx, document)
}

func (uc *documentUsecase) FindByID(ctx context.Context, session *models.Session, documentID string) (*responses.Document, error) {
	document, err := uc.findAccessible(ctx, session, documentID)
	if err != nil {
		return nil, err
	}
	return uc.withURL(ctx, document)
}

func (uc *documentUsecase) FindMine(ctx context.Context, session *models.Session) ([]models.Document, error) {
	return uc.DocumentRepository.FindByOwnerID(ctx, session.UserID)
}

// Analyze runs AI extraction on an inline base64 image. Analyzer failures are reported in the
// result envelope rather than as errors.
func (uc *documentUsecase) Analyze(ctx context.Context, session *models.Session, request *requests.AnalyzeDocument) (*responses.DocumentAnalysisResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("documentUsecase.Analyze called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if !uc.AnalysisLimiter.Allow(session.UserID) {
		return nil, exceptions.ErrTooManyRequests(nil, analysisLimiterScope)
	}

	data, err := base64.StdEncoding.DecodeString(request.ImageBase64)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	analysis, err := uc.Analyzer.Analyze(ctx, data, request.MimeType, request.DocumentType)
	return uc.analysisResult(requestID, analysis, err), nil
}

// AnalyzeStored analyzes a previously uploaded document and keeps the result on it.
func (uc *documentUsecase) AnalyzeStored(ctx context.Context, session *models.Session, documentID string) (*responses.DocumentAnalysisResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("documentUsecase.AnalyzeStored called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, documentID),
	)

	document, err := uc.findAccessible(ctx, session, documentID)
	if err != nil {
		return nil, err
	}
	if !uc.AnalysisLimiter.Allow(session.UserID) {
		return nil, exceptions.ErrTooManyRequests(nil, analysisLimiterScope)
	}

	data, err := uc.Storage.GetObject(ctx, uc.InternalConfig.Minio.BucketName, document.ObjectName)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.Analyzer.Analyze(ctx, data, document.MimeType, document.DocumentType)
	result := uc.analysisResult(requestID, analysis, err)
	if !result.Success {
		return result, nil
	}

	if err := uc.DocumentRepository.UpdateAnalysis(ctx, document.ID, analysis); err != nil {
		uc.Log.Error("documentUsecase.AnalyzeStored error saving analysis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

func (uc *documentUsecase) analysisResult(requestID string, analysis *models.DocumentAnalysis, err error) *responses.DocumentAnalysisResult {
	metrics.RecordDocumentAnalysis(err == nil)
	if err == nil {
		return &responses.DocumentAnalysisResult{Success: true, Analysis: analysis}
	}

	uc.Log.Error("documentUsecase analysis failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	if errors.Is(err, gemini.ErrUnparsableResponse) {
		return &responses.DocumentAnalysisResult{Success: false, Error: parseErrorCode}
	}
	return &responses.DocumentAnalysisResult{Success: false, Error: analysisFailedMessage}
}

func (uc *documentUsecase) withURL(ctx context.Context, document *models.Document) (*responses.Document, error) {
	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, document.ObjectName, expiry)
	if err != nil {
		return nil, err
	}
	return &responses.Document{Document: document, URL: url}, nil
}

// findAccessible returns the document when the session owns it, or manages the organization
// handling the request it is attached to.
func (uc *documentUsecase) findAccessible(ctx context.Context, session *models.Session, documentID string) (*models.Document, error) {
	document, err := uc.DocumentRepository.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "document")
	}
	if document.OwnerID == session.UserID || session.IsSuperadmin() {
		return document, nil
	}

	if session.IsStaff() && document.RequestID != "" {
		serviceRequest, err := uc.ServiceRequestRepository.FindByID(ctx, document.RequestID)
		if err != nil {
			return nil, err
		}
		if serviceRequest != nil && session.CanManageOrg(serviceRequest.OrgID) {
			return document, nil
		}
	}
	return nil, exceptions.ErrNotResourceOwner(errors.New("document " + documentID))
}
