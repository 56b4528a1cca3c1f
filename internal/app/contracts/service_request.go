package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type ServiceRequestUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreateServiceRequest) (*models.ServiceRequest, error)
	FindByID(ctx context.Context, session *models.Session, requestID string) (*responses.ServiceRequestDetail, error)
	FindAll(ctx context.Context, session *models.Session, request *requests.ListServiceRequests) ([]models.ServiceRequest, int, error)
	Submit(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error)
	Cancel(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, session *models.Session, requestID string, request *requests.UpdateServiceRequestStatus) (*models.ServiceRequest, error)
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *models.ServiceRequest) error
	FindByID(ctx context.Context, requestID string) (*models.ServiceRequest, error)
	FindByUserID(ctx context.Context, userID string, pagination requests.Pagination) ([]models.ServiceRequest, int, error)
	FindByOrgID(ctx context.Context, orgID string, status models.RequestStatus, pagination requests.Pagination) ([]models.ServiceRequest, int, error)
	// UpdateStatus moves the request from one status to another and appends the activity.
	// It returns false when the stored status no longer matches from.
	UpdateStatus(ctx context.Context, requestID string, from, to models.RequestStatus, activity models.Activity) (bool, error)
	UpdatePaymentStatus(ctx context.Context, requestID string, status models.PaymentStatus) error
	CountByStatus(ctx context.Context, orgID string) (map[models.RequestStatus]int64, error)
}
