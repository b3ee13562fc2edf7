package capacityplans

import (
	"context"
	"sync"

	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
	"slotplan-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type capacityPlanUsecase struct {
	CapacityPlanRepo contracts.CapacityPlanRepository
	Log              *zap.Logger
}

var (
	capacityPlanUsecaseInstance contracts.CapacityPlanUsecase
	onceCapacityPlanUsecase     sync.Once
)

func NewCapacityPlanUsecase(
	capacityPlanRepo contracts.CapacityPlanRepository,
	logger *zap.Logger,
) contracts.CapacityPlanUsecase {
	onceCapacityPlanUsecase.Do(func() {
		instance := &capacityPlanUsecase{
			CapacityPlanRepo: capacityPlanRepo,
			Log:              logger,
		}
		capacityPlanUsecaseInstance = instance
	})
	return capacityPlanUsecaseInstance
}

func (uc *capacityPlanUsecase) CreateCapacityPlan(ctx context.Context, request *requests.CreateCapacityPlan) (*responses.CapacityPlan, error) {
	plan := &models.CapacityPlan{
		Tenant:     request.Tenant,
		Name:       request.Name,
		Capacities: request.Capacities,
		Revision:   1,
	}
	plan.ClampCapacities()

	planID, err := uc.CapacityPlanRepo.CreateCapacityPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("capacity plan created",
		zap.String(constvars.LoggingPlanIDKey, planID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
	)

	response := plan.ConvertIntoResponse()
	return &response, nil
}

// UpdateCapacityPlan replaces the plan's capacity table and bumps Revision.
// Cached analyses embed the revision in their key, so reports built on the
// old table age out instead of being served.
func (uc *capacityPlanUsecase) UpdateCapacityPlan(ctx context.Context, request *requests.UpdateCapacityPlan) (*responses.CapacityPlan, error) {
	plan, err := uc.CapacityPlanRepo.FindCapacityPlanByID(ctx, request.Tenant, request.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, exceptions.ErrPlanNotFound(nil)
	}

	plan.Name = request.Name
	plan.Capacities = request.Capacities
	plan.ClampCapacities()
	plan.Revision++

	if err := uc.CapacityPlanRepo.UpdateCapacityPlan(ctx, plan); err != nil {
		return nil, err
	}

	uc.Log.Info("capacity plan updated",
		zap.String(constvars.LoggingPlanIDKey, plan.ID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
		zap.Int("revision", plan.Revision),
	)

	response := plan.ConvertIntoResponse()
	return &response, nil
}

func (uc *capacityPlanUsecase) FindCapacityPlanByID(ctx context.Context, request *requests.FindCapacityPlanByID) (*responses.CapacityPlan, error) {
	plan, err := uc.CapacityPlanRepo.FindCapacityPlanByID(ctx, request.Tenant, request.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, exceptions.ErrPlanNotFound(nil)
	}

	response := plan.ConvertIntoResponse()
	return &response, nil
}

func (uc *capacityPlanUsecase) ListCapacityPlans(ctx context.Context, request *requests.ListCapacityPlans) ([]responses.CapacityPlan, error) {
	plans, err := uc.CapacityPlanRepo.FindCapacityPlansByTenant(ctx, request.Tenant)
	if err != nil {
		return nil, err
	}

	out := make([]responses.CapacityPlan, 0, len(plans))
	for _, plan := range plans {
		out = append(out, plan.ConvertIntoResponse())
	}
	return out, nil
}

func (uc *capacityPlanUsecase) DeleteCapacityPlanByID(ctx context.Context, request *requests.DeleteCapacityPlanByID) error {
	plan, err := uc.CapacityPlanRepo.FindCapacityPlanByID(ctx, request.Tenant, request.PlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return exceptions.ErrPlanNotFound(nil)
	}

	if err := uc.CapacityPlanRepo.DeleteCapacityPlanByID(ctx, request.Tenant, request.PlanID); err != nil {
		return err
	}

	uc.Log.Info("capacity plan deleted",
		zap.String(constvars.LoggingPlanIDKey, request.PlanID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
	)
	return nil
}
