package triage

import (
	"math"
	"time"

	"slotplan-service/internal/app/models"
)

// Translate maps every eligible request onto the open day that must hold
// capacity for it and returns the averaged weekly CapacityProfile.
//
// Eligibility: Medical requests with a known urgency and a recognizable
// submission weekday. Requests submitted on a closed day are dropped when
// the policy does not accept weekend intake. Everything else is excluded
// silently so that totals stay deterministic for a given input.
//
// numWeeks is the distinct-ISO-week count from Summarize; values below 1
// are treated as 1. Raw counts are accumulated first and divided once at
// the end, rounding half away from zero.
func Translate(requests []models.TriageRequest, numWeeks int, policy TranslationPolicy) CapacityProfile {
	if numWeeks < 1 {
		numWeeks = 1
	}

	profile := newProfile(policy.Calendar, numWeeks)
	if len(profile.Days) == 0 {
		return profile
	}

	for _, r := range requests {
		if !r.IsMedical() || !r.HasUrgency() {
			continue
		}
		day, ok := parseWeekday(r.RequestDay)
		if !ok {
			continue
		}
		if !policy.Calendar.IsOpen(day) && !policy.AcceptWeekendRequests {
			continue
		}
		targetDay, targetTier := resolveTarget(day, r.Urgency, policy.Calendar)
		profile.Counts[targetDay][targetTier]++
	}

	for _, day := range profile.Days {
		for tier, count := range profile.Counts[day] {
			profile.Needed[day][tier] = int(math.Round(float64(count) / float64(numWeeks)))
		}
	}
	return profile
}

// resolveTarget applies the tier lead-time rules:
//
//	RED    same opening: nthOpenDayAfter(day, 0)
//	AMBER  the next calendar day when it is open; when it is closed the
//	       24-hour guarantee collapses onto the same opening and the demand
//	       is re-classified as RED
//	YELLOW third opening after submission
//	GREEN  fifth opening after submission
func resolveTarget(day time.Weekday, tier models.Urgency, cal OperatingCalendar) (time.Weekday, models.Urgency) {
	switch tier {
	case models.UrgencyRed:
		return cal.NthOpenDayAfter(day, 0), models.UrgencyRed
	case models.UrgencyAmber:
		nextCalendarDay := (day + 1) % 7
		if cal.IsOpen(nextCalendarDay) {
			return nextCalendarDay, models.UrgencyAmber
		}
		return cal.NthOpenDayAfter(day, 0), models.UrgencyRed
	case models.UrgencyYellow:
		return cal.NthOpenDayAfter(day, 3), models.UrgencyYellow
	default:
		return cal.NthOpenDayAfter(day, 5), models.UrgencyGreen
	}
}

// newProfile allocates a zero-filled profile over the calendar's open days
// so downstream consumers always see every day/tier cell.
func newProfile(cal OperatingCalendar, numWeeks int) CapacityProfile {
	days := cal.OpenDays()
	profile := CapacityProfile{
		Days:     days,
		NumWeeks: numWeeks,
		Counts:   make(map[time.Weekday]map[models.Urgency]int, len(days)),
		Needed:   make(map[time.Weekday]map[models.Urgency]int, len(days)),
	}
	for _, day := range days {
		profile.Counts[day] = make(map[models.Urgency]int, 4)
		profile.Needed[day] = make(map[models.Urgency]int, 4)
		for _, tier := range models.AllUrgencies() {
			profile.Counts[day][tier] = 0
			profile.Needed[day][tier] = 0
		}
	}
	return profile
}
