package controllers

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	documentFormFile      = "file"
	documentFormType      = "document_type"
	documentFormRequestID = "request_id"
)

type DocumentController struct {
	Log             *zap.Logger
	DocumentUsecase contracts.DocumentUsecase
	InternalConfig  *config.InternalConfig
}

var (
	documentControllerInstance *DocumentController
	onceDocumentController     sync.Once
)

func NewDocumentController(logger *zap.Logger, documentUsecase contracts.DocumentUsecase, internalConfig *config.InternalConfig) *DocumentController {
	onceDocumentController.Do(func() {
		documentControllerInstance = &DocumentController{
			Log:             logger,
			DocumentUsecase: documentUsecase,
			InternalConfig:  internalConfig,
		}
	})
	return documentControllerInstance
}

func (ctrl *DocumentController) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	maxMemory := ctrl.InternalConfig.Minio.DocumentMaxUploadSizeInMB << 20
	if maxMemory <= 0 {
		maxMemory = 10 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		ctrl.Log.Error("DocumentController.Upload error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, header, err := r.FormFile(documentFormFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	request := &requests.UploadDocument{
		DocumentType: r.FormValue(documentFormType),
		RequestID:    r.FormValue(documentFormRequestID),
		FileName:     header.Filename,
		MimeType:     header.Header.Get(constvars.HeaderContentType),
		Size:         header.Size,
	}
	if !validate(ctrl.Log, w, requestID, request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	document, err := ctrl.DocumentUsecase.Upload(ctx, session, file, request)
	if err != nil {
		ctrl.Log.Error("DocumentController.Upload error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DocumentUploadedSuccessMessage, document)
}

func (ctrl *DocumentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	documentID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamDocumentID)
	if !ok {
		return
	}

	document, err := ctrl.DocumentUsecase.FindByID(r.Context(), session, documentID)
	if err != nil {
		ctrl.Log.Error("DocumentController.FindByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDocumentIDKey, documentID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentGetSuccessMessage, document)
}

func (ctrl *DocumentController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	documents, err := ctrl.DocumentUsecase.FindMine(r.Context(), session)
	if err != nil {
		ctrl.Log.Error("DocumentController.FindMine error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	if documents == nil {
		documents = []models.Document{}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentsGetSuccessMessage, documents)
}

func (ctrl *DocumentController) Analyze(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.AnalyzeDocument)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.DocumentUsecase.Analyze(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("DocumentController.Analyze error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentAnalyzedSuccessMessage, result)
}

func (ctrl *DocumentController) AnalyzeStored(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	session, ok := sessionFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	documentID, ok := requiredURLParam(ctrl.Log, w, r, constvars.URLParamDocumentID)
	if !ok {
		return
	}

	result, err := ctrl.DocumentUsecase.AnalyzeStored(r.Context(), session, documentID)
	if err != nil {
		ctrl.Log.Error("DocumentController.AnalyzeStored error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDocumentIDKey, documentID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentAnalyzedSuccessMessage, result)
}
