package triage

import (
	"strings"
	"time"
)

// weekdayOrder fixes iteration order for anything keyed by weekday. The
// planning week starts on Monday.
var weekdayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// OperatingCalendar is the set of weekdays on which a practice offers
// appointment capacity. The zero value has every day closed; use
// DefaultCalendar for the usual five-day week.
type OperatingCalendar struct {
	open [7]bool
}

// NewOperatingCalendar builds a calendar with exactly the given days open.
func NewOperatingCalendar(days ...time.Weekday) OperatingCalendar {
	var c OperatingCalendar
	for _, d := range days {
		c.open[int(d)%7] = true
	}
	return c
}

// DefaultCalendar is the standard Monday-Friday operating week.
func DefaultCalendar() OperatingCalendar {
	return NewOperatingCalendar(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

func (c OperatingCalendar) IsOpen(d time.Weekday) bool {
	return c.open[int(d)%7]
}

// OpenDays lists the open weekdays Monday-first.
func (c OperatingCalendar) OpenDays() []time.Weekday {
	var out []time.Weekday
	for _, d := range weekdayOrder {
		if c.IsOpen(d) {
			out = append(out, d)
		}
	}
	return out
}

func (c OperatingCalendar) hasOpenDay() bool {
	for _, open := range c.open {
		if open {
			return true
		}
	}
	return false
}

// NthOpenDayAfter walks forward from day one calendar day at a time,
// counting only open days, until n of them have been counted, and returns
// that day. n = 0 is special-cased: it returns day itself when day is open,
// otherwise the next open day, meaning "as soon as the practice is open".
// A calendar with no open day returns day unchanged.
func (c OperatingCalendar) NthOpenDayAfter(day time.Weekday, n int) time.Weekday {
	if !c.hasOpenDay() {
		return day
	}
	if n <= 0 {
		if c.IsOpen(day) {
			return day
		}
		n = 1
	}
	counted := 0
	d := day
	for {
		d = (d + 1) % 7
		if c.IsOpen(d) {
			counted++
			if counted == n {
				return d
			}
		}
	}
}

// parseWeekday maps a request's day token to a weekday. Tokens come from
// export files and vary in abbreviation.
func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	case "sun", "sunday":
		return time.Sunday, true
	}
	return 0, false
}
