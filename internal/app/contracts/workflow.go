package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type WorkflowUsecase interface {
	GetWorkflowProgress(ctx context.Context, session *models.Session, requestID string) (*responses.WorkflowProgress, error)
	GetServiceWorkflow(ctx context.Context, serviceID string) (*responses.ServiceWorkflow, error)
	ValidateWorkflowTransition(ctx context.Context, request *requests.ValidateWorkflowTransition) (*responses.TransitionValidation, error)
}
