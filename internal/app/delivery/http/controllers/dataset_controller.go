package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/exceptions"
	"slotplan-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DatasetController struct {
	Log            *zap.Logger
	DatasetUsecase contracts.DatasetUsecase
	InternalConfig *config.InternalConfig
}

var (
	datasetControllerInstance *DatasetController
	onceDatasetController     sync.Once
)

func NewDatasetController(logger *zap.Logger, datasetUsecase contracts.DatasetUsecase, internalConfig *config.InternalConfig) *DatasetController {
	onceDatasetController.Do(func() {
		instance := &DatasetController{
			Log:            logger,
			DatasetUsecase: datasetUsecase,
			InternalConfig: internalConfig,
		}
		datasetControllerInstance = instance
	})
	return datasetControllerInstance
}

func (ctrl *DatasetController) UploadDataset(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DatasetController.UploadDataset requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DatasetController.UploadDataset called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	r.Body = http.MaxBytesReader(w, r.Body, ctrl.InternalConfig.Ingest.ExportMaxUploadSizeInMB<<20)
	if err := r.ParseMultipartForm(constvars.DatasetUploadMaxMemoryBytes); err != nil {
		ctrl.Log.Error("DatasetController.UploadDataset error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.MultipartFormFileField)
	if err != nil {
		ctrl.Log.Error("DatasetController.UploadDataset error reading uploaded file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctrl.Log.Error("DatasetController.UploadDataset error reading uploaded file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	request := &requests.UploadDataset{
		Name:     r.FormValue(constvars.MultipartFormDatasetName),
		FileName: fileHeader.Filename,
		Content:  content,
		Tenant:   tenantFromRequest(r),
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DatasetController.UploadDataset validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DatasetUsecase.UploadDataset(ctx, request)
	if err != nil {
		ctrl.Log.Error("DatasetController.UploadDataset error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DatasetController.UploadDataset succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.DatasetUploadedSuccess, response)
}

func (ctrl *DatasetController) FetchDataset(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DatasetController.FetchDataset requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DatasetController.FetchDataset called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.FetchDataset)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("DatasetController.FetchDataset error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Tenant = tenantFromRequest(r)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DatasetController.FetchDataset validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DatasetUsecase.FetchDataset(ctx, request)
	if err != nil {
		ctrl.Log.Error("DatasetController.FetchDataset error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DatasetController.FetchDataset succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.DatasetFetchedSuccess, response)
}

func (ctrl *DatasetController) ListDatasets(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DatasetController.ListDatasets requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DatasetController.ListDatasets called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPage))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))

	request := &requests.ListDatasets{
		Page:     page,
		PageSize: pageSize,
		Tenant:   tenantFromRequest(r),
	}
	ctrl.Log.Info("DatasetController.ListDatasets query parameters",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DatasetUsecase.ListDatasets(ctx, request)
	if err != nil {
		ctrl.Log.Error("DatasetController.ListDatasets error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DatasetController.ListDatasets succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DatasetListSuccess, response)
}

func (ctrl *DatasetController) FindDatasetByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DatasetController.FindDatasetByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DatasetController.FindDatasetByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.FindDatasetByID{
		DatasetID: chi.URLParam(r, constvars.URLParamDatasetID),
		Tenant:    tenantFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DatasetUsecase.FindDatasetByID(ctx, request)
	if err != nil {
		ctrl.Log.Error("DatasetController.FindDatasetByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DatasetController.FindDatasetByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DatasetGetSuccess, response)
}

func (ctrl *DatasetController) DeleteDatasetByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DatasetController.DeleteDatasetByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DatasetController.DeleteDatasetByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.DeleteDatasetByID{
		DatasetID: chi.URLParam(r, constvars.URLParamDatasetID),
		Tenant:    tenantFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.DatasetUsecase.DeleteDatasetByID(ctx, request)
	if err != nil {
		ctrl.Log.Error("DatasetController.DeleteDatasetByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DatasetController.DeleteDatasetByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DatasetDeletedSuccess, nil)
}
