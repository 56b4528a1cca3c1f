package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
	"io"
)

type DocumentUsecase interface {
	Upload(ctx context.Context, session *models.Session, file io.Reader, request *requests.UploadDocument) (*responses.Document, error)
	FindByID(ctx context.Context, session *models.Session, documentID string) (*responses.Document, error)
	FindMine(ctx context.Context, session *models.Session) ([]models.Document, error)
	Analyze(ctx context.Context, session *models.Session, request *requests.AnalyzeDocument) (*responses.DocumentAnalysisResult, error)
	AnalyzeStored(ctx context.Context, session *models.Session, documentID string) (*responses.DocumentAnalysisResult, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	FindByID(ctx context.Context, documentID string) (*models.Document, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]models.Document, error)
	UpdateAnalysis(ctx context.Context, documentID string, analysis *models.DocumentAnalysis) error
}

// DocumentAnalyzer extracts structured data from a document image.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, data []byte, mimeType, documentType string) (*models.DocumentAnalysis, error)
}
