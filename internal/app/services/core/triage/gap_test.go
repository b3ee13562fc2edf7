package triage

import (
	"testing"
	"time"

	"slotplan-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func profileWith(needed map[time.Weekday]map[models.Urgency]int) CapacityProfile {
	profile := newProfile(DefaultCalendar(), 1)
	for day, tiers := range needed {
		for tier, count := range tiers {
			profile.Needed[day][tier] = count
		}
	}
	return profile
}

func TestComputeGaps(t *testing.T) {
	t.Run("Positive Gap Is A Shortfall", func(t *testing.T) {
		profile := profileWith(map[time.Weekday]map[models.Urgency]int{
			time.Monday: {models.UrgencyRed: 5},
		})
		config := SlotCapacityConfig{time.Monday: {models.UrgencyRed: 3}}

		rows := ComputeGaps(profile, config)
		assert.Equal(t, 2, rows[0].Gap[models.UrgencyRed], "5 needed against 3 slots leaves 2 short")
	})

	t.Run("Negative Gap Is A Surplus", func(t *testing.T) {
		profile := profileWith(map[time.Weekday]map[models.Urgency]int{
			time.Monday: {models.UrgencyGreen: 1},
		})
		config := SlotCapacityConfig{time.Monday: {models.UrgencyGreen: 4}}

		rows := ComputeGaps(profile, config)
		assert.Equal(t, -3, rows[0].Gap[models.UrgencyGreen])
	})

	t.Run("Missing Config Cells Count As Zero", func(t *testing.T) {
		profile := profileWith(map[time.Weekday]map[models.Urgency]int{
			time.Wednesday: {models.UrgencyAmber: 2},
		})

		rows := ComputeGaps(profile, SlotCapacityConfig{})
		assert.Equal(t, 2, rows[2].Gap[models.UrgencyAmber], "no configured capacity means the full demand is the gap")
	})

	t.Run("Negative Capacity Clamped To Zero", func(t *testing.T) {
		profile := profileWith(nil)
		config := SlotCapacityConfig{time.Monday: {models.UrgencyRed: -7}}

		rows := ComputeGaps(profile, config)
		assert.Equal(t, 0, rows[0].Capacity[models.UrgencyRed])
		assert.Equal(t, 0, rows[0].Gap[models.UrgencyRed])
	})

	t.Run("One Dense Row Per Open Day", func(t *testing.T) {
		rows := ComputeGaps(profileWith(nil), nil)
		assert.Len(t, rows, 5)
		assert.Equal(t, time.Monday, rows[0].Day)
		assert.Equal(t, time.Friday, rows[4].Day)
		for _, row := range rows {
			assert.Len(t, row.Gap, 4, "every tier appears even with zero demand")
		}
	})
}

func TestRecommendPlan(t *testing.T) {
	profile := profileWith(map[time.Weekday]map[models.Urgency]int{
		time.Monday:  {models.UrgencyRed: 10, models.UrgencyAmber: 3},
		time.Tuesday: {models.UrgencyYellow: 1},
	})

	plan := RecommendPlan(profile)

	t.Run("Adds Ten Percent Rounded Up", func(t *testing.T) {
		assert.Equal(t, 11, plan[time.Monday][models.UrgencyRed], "exactly 11.0 must not round to 12")
		assert.Equal(t, 4, plan[time.Monday][models.UrgencyAmber], "3.3 rounds up to 4")
		assert.Equal(t, 2, plan[time.Tuesday][models.UrgencyYellow], "1.1 rounds up to 2")
	})

	t.Run("Zero Demand Stays Zero", func(t *testing.T) {
		assert.Equal(t, 0, plan[time.Friday][models.UrgencyGreen])
	})
}

func TestBufferedCapacity(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 3: 4, 9: 10, 10: 11, 19: 21, 20: 22, 100: 110}
	for needed, expected := range cases {
		assert.Equal(t, expected, bufferedCapacity(needed), "needed %d", needed)
	}
	assert.Equal(t, 0, bufferedCapacity(-5), "negative demand never recommends slots")
}

func TestParseCapacityTable(t *testing.T) {
	t.Run("Name Keyed Table Parsed", func(t *testing.T) {
		config := ParseCapacityTable(map[string]map[string]int{
			"Monday":  {"RED": 4, "amber": 2},
			"tuesday": {"GREEN": 6},
		})
		assert.Equal(t, 4, config[time.Monday][models.UrgencyRed])
		assert.Equal(t, 2, config[time.Monday][models.UrgencyAmber])
		assert.Equal(t, 6, config[time.Tuesday][models.UrgencyGreen])
	})

	t.Run("Unknown Names Skipped And Negatives Clamped", func(t *testing.T) {
		config := ParseCapacityTable(map[string]map[string]int{
			"Funday": {"RED": 4},
			"Friday": {"PURPLE": 1, "YELLOW": -2},
		})
		assert.NotContains(t, config, time.Sunday)
		assert.NotContains(t, config[time.Friday], models.Urgency("PURPLE"))
		assert.Equal(t, 0, config[time.Friday][models.UrgencyYellow])
	})
}
