package requests

type CreateCapacityPlan struct {
	Name       string                    `json:"name" validate:"required,max=120"`
	Capacities map[string]map[string]int `json:"capacities" validate:"required,dive,keys,weekday,endkeys,dive,keys,urgency,endkeys"`
	Tenant     string
}

type UpdateCapacityPlan struct {
	Name       string                    `json:"name" validate:"required,max=120"`
	Capacities map[string]map[string]int `json:"capacities" validate:"required,dive,keys,weekday,endkeys,dive,keys,urgency,endkeys"`
	PlanID     string
	Tenant     string
}

type FindCapacityPlanByID struct {
	PlanID string
	Tenant string
}

type ListCapacityPlans struct {
	Tenant string
}

type DeleteCapacityPlanByID struct {
	PlanID string
	Tenant string
}
