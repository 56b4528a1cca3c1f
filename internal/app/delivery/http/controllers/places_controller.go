package controllers

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type PlacesController struct {
	Log           *zap.Logger
	PlacesUsecase contracts.PlacesUsecase
}

var (
	placesControllerInstance *PlacesController
	oncePlacesController     sync.Once
)

func NewPlacesController(logger *zap.Logger, placesUsecase contracts.PlacesUsecase) *PlacesController {
	oncePlacesController.Do(func() {
		placesControllerInstance = &PlacesController{
			Log:           logger,
			PlacesUsecase: placesUsecase,
		}
	})
	return placesControllerInstance
}

func (ctrl *PlacesController) Autocomplete(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.PlacesAutocomplete{
		Input:      query.Get("input"),
		Types:      query.Get("types"),
		Language:   query.Get("language"),
		Components: query.Get("components"),
	}

	result, err := ctrl.PlacesUsecase.Autocomplete(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("PlacesController.Autocomplete error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlacesAutocompleteSuccessMessage, result)
}

func (ctrl *PlacesController) GetDetails(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	placeID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamPlaceID)
	if !ok {
		return
	}

	request := &requests.PlaceDetails{
		PlaceID:  placeID,
		Language: r.URL.Query().Get("language"),
	}
	result, err := ctrl.PlacesUsecase.GetDetails(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("PlacesController.GetDetails error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlaceDetailsSuccessMessage, result)
}
