package workflow

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type workflowUsecase struct {
	ServiceRequestRepository contracts.ServiceRequestRepository
	OrgServiceRepository     contracts.OrgServiceRepository
	Log                      *zap.Logger
	now                      func() time.Time
}

var (
	workflowUsecaseInstance contracts.WorkflowUsecase
	onceWorkflowUsecase     sync.Once
)

func NewWorkflowUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	logger *zap.Logger,
) contracts.WorkflowUsecase {
	onceWorkflowUsecase.Do(func() {
		workflowUsecaseInstance = newWorkflowUsecase(serviceRequestRepository, orgServiceRepository, logger)
	})
	return workflowUsecaseInstance
}

func newWorkflowUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	logger *zap.Logger,
) *workflowUsecase {
	return &workflowUsecase{
		ServiceRequestRepository: serviceRequestRepository,
		OrgServiceRepository:     orgServiceRepository,
		Log:                      logger,
		now:                      time.Now,
	}
}

func (uc *workflowUsecase) GetWorkflowProgress(ctx context.Context, session *models.Session, requestID string) (*responses.WorkflowProgress, error) {
	logRequestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workflowUsecase.GetWorkflowProgress called",
		zap.String(constvars.LoggingRequestIDKey, logRequestID),
		zap.String(constvars.LoggingRequestRefKey, requestID),
	)

	request, err := uc.ServiceRequestRepository.FindByID(ctx, requestID)
	if err != nil {
		uc.Log.Error("workflowUsecase.GetWorkflowProgress error fetching service request",
			zap.String(constvars.LoggingRequestIDKey, logRequestID),
			zap.Error(err),
		)
		return nil, err
	}
	if request == nil {
		return nil, exceptions.ErrResourceNotFound(errors.New("no document"), "service request")
	}
	if !request.IsOwnedBy(session.UserID) && !session.CanManageOrg(request.OrgID) {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}

	status := string(request.Status)
	completed := request.CompletedSteps()
	progress := &responses.WorkflowProgress{
		CurrentStep:         CurrentStep(status),
		CompletedSteps:      completed,
		TotalSteps:          TotalSteps,
		NextSteps:           NextSteps(status),
		EstimatedCompletion: EstimatedCompletion(uc.now(), completed),
	}

	uc.Log.Info("workflowUsecase.GetWorkflowProgress succeeded",
		zap.String(constvars.LoggingRequestIDKey, logRequestID),
		zap.String("current_step", progress.CurrentStep),
		zap.Int("completed_steps", completed),
	)
	return progress, nil
}

func (uc *workflowUsecase) GetServiceWorkflow(ctx context.Context, serviceID string) (*responses.ServiceWorkflow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workflowUsecase.GetServiceWorkflow called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("service_id", serviceID),
	)

	service, err := uc.findService(ctx, serviceID)
	if err != nil {
		uc.Log.Error("workflowUsecase.GetServiceWorkflow error fetching service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	steps := DefineServiceWorkflow(service.ProcessingMode)
	workflow := make([]responses.WorkflowStep, 0, len(steps))
	for _, step := range steps {
		workflow = append(workflow, responses.WorkflowStep{ID: step.ID, Name: step.Name, Type: step.Type})
	}

	uc.Log.Info("workflowUsecase.GetServiceWorkflow succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.ServiceWorkflow{
		ServiceID:         serviceID,
		Workflow:          workflow,
		EstimatedDuration: WorkflowDuration(steps).Milliseconds(),
	}, nil
}

// ValidateWorkflowTransition answers with a verdict and never fails on an invalid transition.
func (uc *workflowUsecase) ValidateWorkflowTransition(ctx context.Context, request *requests.ValidateWorkflowTransition) (*responses.TransitionValidation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workflowUsecase.ValidateWorkflowTransition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("from_status", request.FromStatus),
		zap.String("to_status", request.ToStatus),
	)

	if request.ServiceID != "" {
		if _, err := uc.findService(ctx, request.ServiceID); err != nil {
			return nil, err
		}
	}

	return &responses.TransitionValidation{
		IsValid:            IsValidTransition(request.FromStatus, request.ToStatus),
		AllowedTransitions: AllowedTransitions(request.FromStatus),
		RequiredActions:    RequiredActions(request.FromStatus, request.ToStatus),
	}, nil
}

func (uc *workflowUsecase) findService(ctx context.Context, serviceID string) (*models.OrgService, error) {
	service, err := uc.OrgServiceRepository.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, exceptions.ErrResourceNotFound(errors.New("no document"), "service")
	}
	return service, nil
}
