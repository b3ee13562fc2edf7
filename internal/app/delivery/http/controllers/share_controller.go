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

type ShareController struct {
	Log          *zap.Logger
	ShareUsecase contracts.ShareUsecase
}

var (
	shareControllerInstance *ShareController
	onceShareController     sync.Once
)

func NewShareController(logger *zap.Logger, shareUsecase contracts.ShareUsecase) *ShareController {
	onceShareController.Do(func() {
		instance := &ShareController{
			Log:          logger,
			ShareUsecase: shareUsecase,
		}
		shareControllerInstance = instance
	})
	return shareControllerInstance
}

func (ctrl *ShareController) CreateShare(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ShareController.CreateShare requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ShareController.CreateShare called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateShare)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ShareController.CreateShare error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Tenant = tenantFromRequest(r)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ShareController.CreateShare validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ShareUsecase.CreateShare(ctx, request)
	if err != nil {
		ctrl.Log.Error("ShareController.CreateShare error from usecase",
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

	ctrl.Log.Info("ShareController.CreateShare succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ShareCreatedSuccess, response)
}

func (ctrl *ShareController) ResolveShare(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ShareController.ResolveShare requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ShareController.ResolveShare called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	passcode := r.Header.Get(constvars.HeaderXSharePasscode)
	if passcode == "" {
		passcode = r.URL.Query().Get(constvars.URLQueryParamSharePasscode)
	}

	request := &requests.ResolveShare{
		Token:    chi.URLParam(r, constvars.URLParamShareToken),
		Passcode: passcode,
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ShareController.ResolveShare validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ShareUsecase.ResolveShare(ctx, request)
	if err != nil {
		ctrl.Log.Error("ShareController.ResolveShare error from usecase",
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

	ctrl.Log.Info("ShareController.ResolveShare succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ShareResolvedSuccess, response)
}
