package controllers

import (
	"context"
	"encoding/json"
	"net/http"
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

type CapacityPlanController struct {
	Log                 *zap.Logger
	CapacityPlanUsecase contracts.CapacityPlanUsecase
}

var (
	capacityPlanControllerInstance *CapacityPlanController
	onceCapacityPlanController     sync.Once
)

func NewCapacityPlanController(logger *zap.Logger, capacityPlanUsecase contracts.CapacityPlanUsecase) *CapacityPlanController {
	onceCapacityPlanController.Do(func() {
		instance := &CapacityPlanController{
			Log:                 logger,
			CapacityPlanUsecase: capacityPlanUsecase,
		}
		capacityPlanControllerInstance = instance
	})
	return capacityPlanControllerInstance
}

func (ctrl *CapacityPlanController) CreateCapacityPlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CapacityPlanController.CreateCapacityPlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CapacityPlanController.CreateCapacityPlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateCapacityPlan)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("CapacityPlanController.CreateCapacityPlan error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Tenant = tenantFromRequest(r)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("CapacityPlanController.CreateCapacityPlan validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CapacityPlanUsecase.CreateCapacityPlan(ctx, request)
	if err != nil {
		ctrl.Log.Error("CapacityPlanController.CreateCapacityPlan error from usecase",
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

	ctrl.Log.Info("CapacityPlanController.CreateCapacityPlan succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PlanCreatedSuccess, response)
}

func (ctrl *CapacityPlanController) UpdateCapacityPlanByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CapacityPlanController.UpdateCapacityPlanByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CapacityPlanController.UpdateCapacityPlanByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpdateCapacityPlan)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("CapacityPlanController.UpdateCapacityPlanByID error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PlanID = chi.URLParam(r, constvars.URLParamPlanID)
	request.Tenant = tenantFromRequest(r)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("CapacityPlanController.UpdateCapacityPlanByID validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CapacityPlanUsecase.UpdateCapacityPlan(ctx, request)
	if err != nil {
		ctrl.Log.Error("CapacityPlanController.UpdateCapacityPlanByID error from usecase",
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

	ctrl.Log.Info("CapacityPlanController.UpdateCapacityPlanByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanUpdatedSuccess, response)
}

func (ctrl *CapacityPlanController) ListCapacityPlans(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CapacityPlanController.ListCapacityPlans requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CapacityPlanController.ListCapacityPlans called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.ListCapacityPlans{
		Tenant: tenantFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CapacityPlanUsecase.ListCapacityPlans(ctx, request)
	if err != nil {
		ctrl.Log.Error("CapacityPlanController.ListCapacityPlans error from usecase",
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

	ctrl.Log.Info("CapacityPlanController.ListCapacityPlans succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanListSuccess, response)
}

func (ctrl *CapacityPlanController) FindCapacityPlanByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CapacityPlanController.FindCapacityPlanByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CapacityPlanController.FindCapacityPlanByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.FindCapacityPlanByID{
		PlanID: chi.URLParam(r, constvars.URLParamPlanID),
		Tenant: tenantFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CapacityPlanUsecase.FindCapacityPlanByID(ctx, request)
	if err != nil {
		ctrl.Log.Error("CapacityPlanController.FindCapacityPlanByID error from usecase",
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

	ctrl.Log.Info("CapacityPlanController.FindCapacityPlanByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingResponseKey, response),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanGetSuccess, response)
}

func (ctrl *CapacityPlanController) DeleteCapacityPlanByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CapacityPlanController.DeleteCapacityPlanByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CapacityPlanController.DeleteCapacityPlanByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.DeleteCapacityPlanByID{
		PlanID: chi.URLParam(r, constvars.URLParamPlanID),
		Tenant: tenantFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.CapacityPlanUsecase.DeleteCapacityPlanByID(ctx, request)
	if err != nil {
		ctrl.Log.Error("CapacityPlanController.DeleteCapacityPlanByID error from usecase",
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

	ctrl.Log.Info("CapacityPlanController.DeleteCapacityPlanByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanDeletedSuccess, nil)
}
