package controllers

import (
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// ReminderRunner runs the appointment reminder job once.
type ReminderRunner interface {
	RunOnce(ctx context.Context) bool
}

// OpsController exposes operator actions reachable only with the superadmin API key.
type OpsController struct {
	Log            *zap.Logger
	ReminderRunner ReminderRunner
}

var (
	opsControllerInstance *OpsController
	onceOpsController     sync.Once
)

func NewOpsController(logger *zap.Logger, reminderRunner ReminderRunner) *OpsController {
	onceOpsController.Do(func() {
		opsControllerInstance = &OpsController{
			Log:            logger,
			ReminderRunner: reminderRunner,
		}
	})
	return opsControllerInstance
}

// RunReminders triggers the reminder job outside its schedule. ran is false when another
// instance holds the leader lock.
func (ctrl *OpsController) RunReminders(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ran := ctrl.ReminderRunner.RunOnce(context.WithoutCancel(r.Context()))

	ctrl.Log.Info("OpsController.RunReminders finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("ran", ran),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReminderRunTriggeredSuccessMessage, map[string]bool{"ran": ran})
}
