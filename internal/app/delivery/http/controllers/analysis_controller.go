package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/exceptions"
	"slotplan-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AnalysisController struct {
	Log             *zap.Logger
	AnalysisUsecase contracts.AnalysisUsecase
}

var (
	analysisControllerInstance *AnalysisController
	onceAnalysisController     sync.Once
)

func NewAnalysisController(logger *zap.Logger, analysisUsecase contracts.AnalysisUsecase) *AnalysisController {
	onceAnalysisController.Do(func() {
		instance := &AnalysisController{
			Log:             logger,
			AnalysisUsecase: analysisUsecase,
		}
		analysisControllerInstance = instance
	})
	return analysisControllerInstance
}

func buildAnalysisRequest(r *http.Request) *requests.BuildAnalysis {
	acceptWeekend, _ := strconv.ParseBool(r.URL.Query().Get(constvars.URLQueryParamAcceptWeekend))
	return &requests.BuildAnalysis{
		DatasetID:             chi.URLParam(r, constvars.URLParamDatasetID),
		PlanID:                r.URL.Query().Get(constvars.URLQueryParamPlanID),
		AcceptWeekendRequests: acceptWeekend,
		Tenant:                tenantFromRequest(r),
	}
}

func (ctrl *AnalysisController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AnalysisController.GetAnalysis requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AnalysisController.GetAnalysis called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := buildAnalysisRequest(r)
	ctrl.Log.Info("AnalysisController.GetAnalysis query parameters",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingRequestKey, request),
	)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AnalysisController.GetAnalysis validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AnalysisUsecase.BuildAnalysis(ctx, request)
	if err != nil {
		ctrl.Log.Error("AnalysisController.GetAnalysis error from usecase",
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

	ctrl.Log.Info("AnalysisController.GetAnalysis succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AnalysisSuccess, response)
}

// ExportAnalysisWorkbook streams the XLSX straight to the client instead
// of wrapping it in the JSON envelope.
func (ctrl *AnalysisController) ExportAnalysisWorkbook(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AnalysisController.ExportAnalysisWorkbook requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AnalysisController.ExportAnalysisWorkbook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := buildAnalysisRequest(r)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AnalysisController.ExportAnalysisWorkbook validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AnalysisUsecase.ExportAnalysisWorkbook(ctx, request)
	if err != nil {
		ctrl.Log.Error("AnalysisController.ExportAnalysisWorkbook error from usecase",
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

	ctrl.Log.Info("AnalysisController.ExportAnalysisWorkbook succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("file_name", response.FileName),
	)

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationXLSX)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", response.FileName))
	w.WriteHeader(constvars.StatusOK)
	w.Write(response.Content)
}
