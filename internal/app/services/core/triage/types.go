package triage

import (
	"time"

	"slotplan-service/internal/app/models"
)

// TranslationPolicy carries the host-owned knobs the translator needs.
// AcceptWeekendRequests gates whether demand submitted on a closed day is
// translated at all: when false such requests are dropped, when true they
// roll forward onto the next opening under the usual tier rules.
type TranslationPolicy struct {
	Calendar              OperatingCalendar
	AcceptWeekendRequests bool
}

// DefaultPolicy translates over the five-day week with weekend submissions
// dropped.
func DefaultPolicy() TranslationPolicy {
	return TranslationPolicy{Calendar: DefaultCalendar()}
}

// SlotCapacityConfig maps each open weekday to the bookable slot count per
// urgency tier.
type SlotCapacityConfig map[time.Weekday]map[models.Urgency]int

// Clamped returns a copy with every negative cell floored at zero.
func (c SlotCapacityConfig) Clamped() SlotCapacityConfig {
	out := make(SlotCapacityConfig, len(c))
	for day, tiers := range c {
		out[day] = make(map[models.Urgency]int, len(tiers))
		for tier, capacity := range tiers {
			if capacity < 0 {
				capacity = 0
			}
			out[day][tier] = capacity
		}
	}
	return out
}

// ParseCapacityTable converts a stored name-keyed capacity table into a
// SlotCapacityConfig. Unknown weekday or tier names are skipped, negative
// capacities clamped to zero.
func ParseCapacityTable(table map[string]map[string]int) SlotCapacityConfig {
	out := make(SlotCapacityConfig, len(table))
	for dayName, tiers := range table {
		day, ok := parseWeekday(dayName)
		if !ok {
			continue
		}
		for tierName, capacity := range tiers {
			tier, ok := models.ParseUrgency(tierName)
			if !ok {
				continue
			}
			if capacity < 0 {
				capacity = 0
			}
			if out[day] == nil {
				out[day] = make(map[models.Urgency]int, 4)
			}
			out[day][tier] = capacity
		}
	}
	return out
}

// CapacityProfile is the derived weekly capacity-needed table: for each open
// day and tier, the average weekly number of appointment slots required.
// Counts holds the raw pre-average accumulation the averages were built
// from. A profile is always rebuilt from scratch, never patched.
type CapacityProfile struct {
	Days     []time.Weekday
	NumWeeks int
	Counts   map[time.Weekday]map[models.Urgency]int
	Needed   map[time.Weekday]map[models.Urgency]int
}

// GapRow compares needed against configured capacity for one open day.
// gap = needed - capacity, so positive means shortfall and negative surplus.
type GapRow struct {
	Day      time.Weekday
	Needed   map[models.Urgency]int
	Capacity map[models.Urgency]int
	Gap      map[models.Urgency]int
}
