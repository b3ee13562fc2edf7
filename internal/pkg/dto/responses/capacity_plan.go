package responses

import "time"

type CapacityPlan struct {
	PlanID     string                    `json:"plan_id"`
	Tenant     string                    `json:"tenant"`
	Name       string                    `json:"name"`
	Capacities map[string]map[string]int `json:"capacities"`
	Revision   int                       `json:"revision"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}
