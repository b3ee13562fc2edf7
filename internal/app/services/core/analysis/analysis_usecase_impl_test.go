package analysis

import (
	"testing"

	"slotplan-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisCacheKey(t *testing.T) {
	t.Run("Plan Identity And Revision In The Key", func(t *testing.T) {
		plan := &models.CapacityPlan{ID: "plan-1", Revision: 3}
		key := analysisCacheKey("default", "ds-1", plan, true)
		assert.Equal(t, "analysis:default:ds-1:plan-1:3:true", key)
	})

	t.Run("Plan Free Key Uses Placeholder", func(t *testing.T) {
		key := analysisCacheKey("default", "ds-1", nil, false)
		assert.Equal(t, "analysis:default:ds-1:-:0:false", key)
	})

	t.Run("Revision Bump Rotates The Key", func(t *testing.T) {
		before := analysisCacheKey("default", "ds-1", &models.CapacityPlan{ID: "p", Revision: 1}, false)
		after := analysisCacheKey("default", "ds-1", &models.CapacityPlan{ID: "p", Revision: 2}, false)
		assert.NotEqual(t, before, after, "stale entries must not be reachable after a plan edit")
	})

	t.Run("Weekend Flag Separates Cached Reports", func(t *testing.T) {
		with := analysisCacheKey("default", "ds-1", nil, true)
		without := analysisCacheKey("default", "ds-1", nil, false)
		assert.NotEqual(t, with, without)
	})

	t.Run("Invalidation Pattern Covers Every Key Of The Dataset", func(t *testing.T) {
		assert.Equal(t, "analysis:default:ds-1:*", analysisCachePattern("default", "ds-1"))
	})
}
