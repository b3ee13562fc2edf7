package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/app/services/core/triage"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
	"slotplan-service/internal/pkg/exceptions"
	"slotplan-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type analysisUsecase struct {
	DatasetRepo       contracts.DatasetRepository
	TriageRequestRepo contracts.TriageRequestRepository
	CapacityPlanRepo  contracts.CapacityPlanRepository
	RedisRepository   contracts.RedisRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	analysisUsecaseInstance contracts.AnalysisUsecase
	onceAnalysisUsecase     sync.Once
)

func NewAnalysisUsecase(
	datasetRepo contracts.DatasetRepository,
	triageRequestRepo contracts.TriageRequestRepository,
	capacityPlanRepo contracts.CapacityPlanRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AnalysisUsecase {
	onceAnalysisUsecase.Do(func() {
		analysisUsecaseInstance = &analysisUsecase{
			DatasetRepo:       datasetRepo,
			TriageRequestRepo: triageRequestRepo,
			CapacityPlanRepo:  capacityPlanRepo,
			RedisRepository:   redisRepository,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return analysisUsecaseInstance
}

func (uc *analysisUsecase) BuildAnalysis(ctx context.Context, request *requests.BuildAnalysis) (*responses.AnalysisReport, error) {
	requestID := utils.GetRequestID(ctx)

	dataset, err := uc.DatasetRepo.FindDatasetByID(ctx, request.Tenant, request.DatasetID)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, exceptions.ErrDatasetNotFound(nil)
	}
	if dataset.Status != constvars.DatasetStatusReady {
		return nil, exceptions.ErrDatasetNotReady(fmt.Errorf("dataset %s is %s", dataset.ID, dataset.Status))
	}

	var plan *models.CapacityPlan
	if request.PlanID != "" {
		plan, err = uc.CapacityPlanRepo.FindCapacityPlanByID(ctx, request.Tenant, request.PlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, exceptions.ErrPlanNotFound(nil)
		}
	}

	cacheKey := analysisCacheKey(request.Tenant, request.DatasetID, plan, request.AcceptWeekendRequests)
	if cached := uc.readCache(ctx, requestID, cacheKey); cached != nil {
		return cached, nil
	}

	report, err := uc.assembleReport(ctx, dataset, plan, request.AcceptWeekendRequests)
	if err != nil {
		return nil, err
	}

	uc.writeCache(ctx, requestID, cacheKey, report)

	uc.Log.Info("Analysis report built",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
		zap.String(constvars.LoggingDatasetIDKey, request.DatasetID),
		zap.String(constvars.LoggingPlanIDKey, request.PlanID),
	)
	return report, nil
}

func (uc *analysisUsecase) ExportAnalysisWorkbook(ctx context.Context, request *requests.BuildAnalysis) (*responses.AnalysisWorkbook, error) {
	report, err := uc.BuildAnalysis(ctx, request)
	if err != nil {
		return nil, err
	}

	content, err := BuildAnalysisWorkbook(report)
	if err != nil {
		return nil, exceptions.ErrServerInternal(err)
	}

	return &responses.AnalysisWorkbook{
		FileName: fmt.Sprintf("analysis_%s.xlsx", report.DatasetID),
		Content:  content,
	}, nil
}

func (uc *analysisUsecase) InvalidateDataset(ctx context.Context, tenant, datasetID string) error {
	pattern := analysisCachePattern(tenant, datasetID)
	if err := uc.RedisRepository.DeleteByPattern(ctx, pattern); err != nil {
		return err
	}

	uc.Log.Info("Invalidated cached analyses for dataset",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingTenantKey, tenant),
		zap.String(constvars.LoggingDatasetIDKey, datasetID),
	)
	return nil
}

func (uc *analysisUsecase) assembleReport(ctx context.Context, dataset *models.Dataset, plan *models.CapacityPlan, acceptWeekend bool) (*responses.AnalysisReport, error) {
	rows, err := uc.TriageRequestRepo.FindRequestsByDatasetID(ctx, dataset.ID)
	if err != nil {
		return nil, err
	}

	summary := triage.Summarize(rows)
	policy := triage.TranslationPolicy{
		Calendar:              triage.DefaultCalendar(),
		AcceptWeekendRequests: acceptWeekend,
	}
	profile := triage.Translate(rows, summary.NumWeeks, policy)
	recommended := triage.RecommendPlan(profile)
	consistency := triage.AnalyzeConsistency(rows, triage.DefaultMismatchRules())

	demand := utils.ConvertDemandSummaryToResponse(summary)
	profileResponse := utils.ConvertCapacityProfileToResponse(profile)
	consistencyResponse := utils.ConvertConsistencyToResponse(consistency)

	report := &responses.AnalysisReport{
		DatasetID:             dataset.ID,
		Tenant:                dataset.Tenant,
		AcceptWeekendRequests: acceptWeekend,
		GeneratedAt:           time.Now().UTC(),
		Demand:                &demand,
		Profile:               &profileResponse,
		RecommendedPlan:       utils.ConvertSlotConfigToTable(recommended),
		Consistency:           &consistencyResponse,
	}

	if plan != nil {
		report.PlanID = plan.ID
		report.PlanRevision = plan.Revision
		gaps := triage.ComputeGaps(profile, triage.ParseCapacityTable(plan.Capacities))
		report.Gaps = utils.ConvertGapRowsToResponse(gaps)
	}

	return report, nil
}

func (uc *analysisUsecase) readCache(ctx context.Context, requestID, key string) *responses.AnalysisReport {
	data, err := uc.RedisRepository.Get(ctx, key)
	if err != nil || data == "" {
		return nil
	}

	var report responses.AnalysisReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		uc.Log.Warn("Dropping unreadable cached analysis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil
	}
	return &report
}

func (uc *analysisUsecase) writeCache(ctx context.Context, requestID, key string, report *responses.AnalysisReport) {
	ttl := time.Duration(uc.InternalConfig.Analysis.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		return
	}

	if err := uc.RedisRepository.Set(ctx, key, report, ttl); err != nil {
		uc.Log.Warn("Failed to cache analysis report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

// Plan identity and revision are part of the key, so a plan edit strands the
// stale entry until the TTL collects it instead of requiring invalidation.
func analysisCacheKey(tenant, datasetID string, plan *models.CapacityPlan, acceptWeekend bool) string {
	planPart := "-"
	revision := 0
	if plan != nil {
		planPart = plan.ID
		revision = plan.Revision
	}
	return fmt.Sprintf("%s:%s:%s:%s:%d:%t", constvars.RedisKeyAnalysisPrefix, tenant, datasetID, planPart, revision, acceptWeekend)
}

func analysisCachePattern(tenant, datasetID string) string {
	return fmt.Sprintf("%s:%s:%s:*", constvars.RedisKeyAnalysisPrefix, tenant, datasetID)
}
