package triage

import (
	"slotplan-service/internal/app/models"
)

// ComputeGaps compares the needed profile against a configured capacity
// table, one row per open day in planning-week order. Missing config cells
// count as zero capacity; negative cells are clamped. The result is a pure
// read model: same inputs, same rows.
func ComputeGaps(profile CapacityProfile, config SlotCapacityConfig) []GapRow {
	clamped := config.Clamped()
	rows := make([]GapRow, 0, len(profile.Days))
	for _, day := range profile.Days {
		row := GapRow{
			Day:      day,
			Needed:   make(map[models.Urgency]int, 4),
			Capacity: make(map[models.Urgency]int, 4),
			Gap:      make(map[models.Urgency]int, 4),
		}
		for _, tier := range models.AllUrgencies() {
			needed := profile.Needed[day][tier]
			capacity := clamped[day][tier]
			row.Needed[tier] = needed
			row.Capacity[tier] = capacity
			row.Gap[tier] = needed - capacity
		}
		rows = append(rows, row)
	}
	return rows
}

// RecommendPlan buffers every needed cell by a flat 10%, rounding up:
// ceil(needed * 1.1), with zero staying zero. The buffer is a deliberate
// simplification surfaced to the user as such, not a derived safety stock.
func RecommendPlan(profile CapacityProfile) SlotCapacityConfig {
	out := make(SlotCapacityConfig, len(profile.Days))
	for _, day := range profile.Days {
		out[day] = make(map[models.Urgency]int, 4)
		for _, tier := range models.AllUrgencies() {
			out[day][tier] = bufferedCapacity(profile.Needed[day][tier])
		}
	}
	return out
}

// bufferedCapacity computes ceil(n * 1.1) in integer arithmetic so that
// float representation error cannot bump an exact multiple (10 must give
// 11, not 12).
func bufferedCapacity(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*11 + 9) / 10
}
