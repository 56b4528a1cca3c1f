package servicerequests

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/metrics"
	"consulat-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type serviceRequestUsecase struct {
	ServiceRequestRepository contracts.ServiceRequestRepository
	OrgServiceRepository     contracts.OrgServiceRepository
	ProfileRepository        contracts.ProfileRepository
	NotificationPublisher    contracts.NotificationPublisher
	Log                      *zap.Logger
	now                      func() time.Time
}

var (
	serviceRequestUsecaseInstance contracts.ServiceRequestUsecase
	onceServiceRequestUsecase     sync.Once
)

func NewServiceRequestUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	profileRepository contracts.ProfileRepository,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.ServiceRequestUsecase {
	onceServiceRequestUsecase.Do(func() {
		serviceRequestUsecaseInstance = newServiceRequestUsecase(serviceRequestRepository, orgServiceRepository, profileRepository, notificationPublisher, logger)
	})
	return serviceRequestUsecaseInstance
}

func newServiceRequestUsecase(
	serviceRequestRepository contracts.ServiceRequestRepository,
	orgServiceRepository contracts.OrgServiceRepository,
	profileRepository contracts.ProfileRepository,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) *serviceRequestUsecase {
	return &serviceRequestUsecase{
		ServiceRequestRepository: serviceRequestRepository,
		OrgServiceRepository:     orgServiceRepository,
		ProfileRepository:        profileRepository,
		NotificationPublisher:    notificationPublisher,
		Log:                      logger,
		now:                      time.Now,
	}
}

func (uc *serviceRequestUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateServiceRequest) (*models.ServiceRequest, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("serviceRequestUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	orgService, err := uc.OrgServiceRepository.FindByID(ctx, request.OrgServiceID)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.Create error fetching org service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if orgService == nil || !orgService.IsActive {
		return nil, exceptions.ErrResourceNotFound(errors.New("missing or inactive"), "service")
	}

	profile, err := uc.ProfileRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.Create error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	serviceRequest := &models.ServiceRequest{
		ID:           primitive.NewObjectID().Hex(),
		Reference:    utils.GenerateReference(constvars.RequestReferencePrefix, now),
		UserID:       session.UserID,
		OrgID:        orgService.OrgID,
		OrgServiceID: orgService.ID,
		ServiceName:  orgService.Name,
		Status:       models.RequestStatusDraft,
		FormData:     request.FormData,
		Activities:   []models.Activity{},
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if profile != nil {
		serviceRequest.ProfileID = profile.ID
	}

	if err := uc.ServiceRequestRepository.Create(ctx, serviceRequest); err != nil {
		uc.Log.Error("serviceRequestUsecase.Create error inserting service request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("serviceRequestUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequest.ID),
	)
	return serviceRequest, nil
}

func (uc *serviceRequestUsecase) FindByID(ctx context.Context, session *models.Session, requestID string) (*responses.ServiceRequestDetail, error) {
	logRequestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("serviceRequestUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, logRequestID),
		zap.String(constvars.LoggingRequestRefKey, requestID),
	)

	serviceRequest, err := uc.findAccessible(ctx, session, requestID)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.FindByID error",
			zap.String(constvars.LoggingRequestIDKey, logRequestID),
			zap.Error(err),
		)
		return nil, err
	}
	return toDetail(serviceRequest), nil
}

func (uc *serviceRequestUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.ListServiceRequests) ([]models.ServiceRequest, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("serviceRequestUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if !session.IsStaff() {
		return uc.ServiceRequestRepository.FindByUserID(ctx, session.UserID, request.Pagination)
	}

	orgID := session.OrgID
	if session.IsSuperadmin() && request.OrgID != "" {
		orgID = request.OrgID
	}
	if orgID == "" {
		return nil, 0, exceptions.ErrRoleNotAllowed(errors.New("staff session without organization"))
	}

	status := models.RequestStatus(request.Status)
	if status != "" && !IsKnownStatus(status) {
		return nil, 0, exceptions.ErrURLParamValidation(fmt.Errorf("unknown status %q", status), "status")
	}

	result, total, err := uc.ServiceRequestRepository.FindByOrgID(ctx, orgID, status, request.Pagination)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.FindAll error fetching org requests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("serviceRequestUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, total, nil
}

func (uc *serviceRequestUsecase) Submit(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.findOwned(ctx, session, requestID)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, session, serviceRequest, models.RequestStatusSubmitted, "")
}

// Cancel lets the owner withdraw a request that no agent has started working on.
func (uc *serviceRequestUsecase) Cancel(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.findOwned(ctx, session, requestID)
	if err != nil {
		return nil, err
	}
	if serviceRequest.Status != models.RequestStatusDraft && serviceRequest.Status != models.RequestStatusPending {
		return nil, exceptions.ErrInvalidStatusTransition(
			errors.New("owner may only cancel draft or pending requests"),
			string(serviceRequest.Status), string(models.RequestStatusCancelled), nil,
		)
	}
	return uc.transition(ctx, session, serviceRequest, models.RequestStatusCancelled, "")
}

func (uc *serviceRequestUsecase) UpdateStatus(ctx context.Context, session *models.Session, requestID string, request *requests.UpdateServiceRequestStatus) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.findAccessible(ctx, session, requestID)
	if err != nil {
		return nil, err
	}
	if !session.IsStaff() {
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}

	to := models.RequestStatus(request.Status)
	if !IsKnownStatus(to) {
		return nil, exceptions.ErrInvalidStatusTransition(
			fmt.Errorf("unknown status %q", to),
			string(serviceRequest.Status), request.Status, ValidNextStatuses(serviceRequest.Status),
		)
	}
	return uc.transition(ctx, session, serviceRequest, to, request.Note)
}

func (uc *serviceRequestUsecase) transition(ctx context.Context, session *models.Session, serviceRequest *models.ServiceRequest, to models.RequestStatus, note string) (*models.ServiceRequest, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	from := serviceRequest.Status
	uc.Log.Info("serviceRequestUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequest.ID),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(to)),
	)

	if err := AssertCanTransition(from, to); err != nil {
		return nil, err
	}

	now := uc.now()
	activity := models.Activity{
		Type:       models.ActivityTypeStatusChanged,
		ActorID:    session.UserID,
		FromStatus: from,
		ToStatus:   to,
		Note:       note,
		CreatedAt:  now,
	}

	applied, err := uc.ServiceRequestRepository.UpdateStatus(ctx, serviceRequest.ID, from, to, activity)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.transition error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !applied {
		uc.Log.Warn("serviceRequestUsecase.transition status changed concurrently",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequest.ID),
		)
		return nil, exceptions.ErrInvalidStatusTransition(
			errors.New("status changed concurrently"),
			string(from), string(to), nil,
		)
	}

	serviceRequest.Status = to
	serviceRequest.UpdatedAt = now
	serviceRequest.Activities = append(serviceRequest.Activities, activity)
	switch to {
	case models.RequestStatusSubmitted:
		serviceRequest.SubmittedAt = &now
	case models.RequestStatusCompleted:
		serviceRequest.CompletedAt = &now
	}
	metrics.RecordRequestTransition(string(to))

	uc.notifyStatusChange(ctx, serviceRequest, activity)

	uc.Log.Info("serviceRequestUsecase.transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRequestRefKey, serviceRequest.ID),
		zap.String(constvars.LoggingStatusKey, string(to)),
	)
	return serviceRequest, nil
}

func (uc *serviceRequestUsecase) notifyStatusChange(ctx context.Context, serviceRequest *models.ServiceRequest, activity models.Activity) {
	notification := &models.Notification{
		Type:    constvars.NotificationTypeRequestStatusChanged,
		Subject: fmt.Sprintf("Demande %s : %s", serviceRequest.Reference, activity.ToStatus),
		Payload: map[string]any{
			"requestId":   serviceRequest.ID,
			"reference":   serviceRequest.Reference,
			"serviceName": serviceRequest.ServiceName,
			"fromStatus":  activity.FromStatus,
			"toStatus":    activity.ToStatus,
			"note":        activity.Note,
		},
	}
	// The owner acting on their own request informs the organization instead.
	if activity.ActorID == serviceRequest.UserID {
		notification.RecipientOrgID = serviceRequest.OrgID
	} else {
		notification.RecipientUserID = serviceRequest.UserID
	}

	if err := uc.NotificationPublisher.Publish(ctx, notification); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("serviceRequestUsecase.notifyStatusChange error publishing notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRequestRefKey, serviceRequest.ID),
			zap.Error(err),
		)
	}
}

func (uc *serviceRequestUsecase) find(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.ServiceRequestRepository.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if serviceRequest == nil {
		return nil, exceptions.ErrResourceNotFound(errors.New("no document"), "service request")
	}
	return serviceRequest, nil
}

func (uc *serviceRequestUsecase) findOwned(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.find(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !serviceRequest.IsOwnedBy(session.UserID) {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}
	return serviceRequest, nil
}

// findAccessible allows the owner, staff of the handling organization and superadmins.
func (uc *serviceRequestUsecase) findAccessible(ctx context.Context, session *models.Session, requestID string) (*models.ServiceRequest, error) {
	serviceRequest, err := uc.find(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if serviceRequest.IsOwnedBy(session.UserID) || session.CanManageOrg(serviceRequest.OrgID) {
		return serviceRequest, nil
	}
	return nil, exceptions.ErrNotResourceOwner(nil)
}

func toDetail(serviceRequest *models.ServiceRequest) *responses.ServiceRequestDetail {
	return &responses.ServiceRequestDetail{
		ServiceRequest:      serviceRequest,
		Phase:               Phase(serviceRequest.Status),
		ValidNextStatuses:   ValidNextStatuses(serviceRequest.Status),
		RequiresUserAction:  RequiresUserAction(serviceRequest.Status),
		RequiresAgentAction: RequiresAgentAction(serviceRequest.Status),
	}
}
