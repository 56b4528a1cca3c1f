package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type StatisticsController struct {
	Log               *zap.Logger
	StatisticsUsecase contracts.StatisticsUsecase
}

var (
	statisticsControllerInstance *StatisticsController
	onceStatisticsController     sync.Once
)

func NewStatisticsController(logger *zap.Logger, statisticsUsecase contracts.StatisticsUsecase) *StatisticsController {
	onceStatisticsController.Do(func() {
		statisticsControllerInstance = &StatisticsController{
			Log:               logger,
			StatisticsUsecase: statisticsUsecase,
		}
	})
	return statisticsControllerInstance
}

func (ctrl *StatisticsController) GetOrgStatistics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	orgID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamOrgID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	statistics, err := ctrl.StatisticsUsecase.GetOrgStatistics(ctx, session, orgID)
	if err != nil {
		ctrl.Log.Error("StatisticsController.GetOrgStatistics error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrgIDKey, orgID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("StatisticsController.GetOrgStatistics succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.StatisticsGetSuccessMessage, statistics)
}
