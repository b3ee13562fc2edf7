package models

import (
	"slotplan-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
)

// CapacityPlan is a named slot-capacity table for one tenant: per open
// weekday, per urgency tier, the number of bookable slots. Capacities are
// clamped to >= 0 on every write; Revision increments on each update so
// cached analyses built on older revisions can be told apart.
type CapacityPlan struct {
	ID         string                    `json:"id" bson:"_id,omitempty"`
	Tenant     string                    `json:"tenant" bson:"tenant"`
	Name       string                    `json:"name" bson:"name"`
	Capacities map[string]map[string]int `json:"capacities" bson:"capacities"`
	Revision   int                       `json:"revision" bson:"revision"`
	TimeModel  `bson:",inline"`
}

func (p *CapacityPlan) ConvertToBsonM() bson.M {
	return bson.M{
		"tenant":     p.Tenant,
		"name":       p.Name,
		"capacities": p.Capacities,
		"revision":   p.Revision,
		"createdAt":  p.CreatedAt,
		"updatedAt":  p.UpdatedAt,
	}
}

func (p CapacityPlan) ConvertIntoResponse() responses.CapacityPlan {
	return responses.CapacityPlan{
		PlanID:     p.ID,
		Tenant:     p.Tenant,
		Name:       p.Name,
		Capacities: p.Capacities,
		Revision:   p.Revision,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ClampCapacities floors every cell at zero in place.
func (p *CapacityPlan) ClampCapacities() {
	for _, tiers := range p.Capacities {
		for tier, capacity := range tiers {
			if capacity < 0 {
				tiers[tier] = 0
			}
		}
	}
}
