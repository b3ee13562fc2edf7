package contracts

import (
	"context"

	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
)

type CapacityPlanUsecase interface {
	CreateCapacityPlan(ctx context.Context, request *requests.CreateCapacityPlan) (*responses.CapacityPlan, error)
	UpdateCapacityPlan(ctx context.Context, request *requests.UpdateCapacityPlan) (*responses.CapacityPlan, error)
	FindCapacityPlanByID(ctx context.Context, request *requests.FindCapacityPlanByID) (*responses.CapacityPlan, error)
	ListCapacityPlans(ctx context.Context, request *requests.ListCapacityPlans) ([]responses.CapacityPlan, error)
	DeleteCapacityPlanByID(ctx context.Context, request *requests.DeleteCapacityPlanByID) error
}

type CapacityPlanRepository interface {
	CreateCapacityPlan(ctx context.Context, plan *models.CapacityPlan) (string, error)
	FindCapacityPlanByID(ctx context.Context, tenant, planID string) (*models.CapacityPlan, error)
	FindCapacityPlansByTenant(ctx context.Context, tenant string) ([]models.CapacityPlan, error)
	UpdateCapacityPlan(ctx context.Context, plan *models.CapacityPlan) error
	DeleteCapacityPlanByID(ctx context.Context, tenant, planID string) error
}
