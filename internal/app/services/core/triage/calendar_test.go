package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCalendar(t *testing.T) {
	cal := DefaultCalendar()

	t.Run("Weekdays Open", func(t *testing.T) {
		for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
			assert.True(t, cal.IsOpen(day), "%s should be open", day)
		}
	})

	t.Run("Weekend Closed", func(t *testing.T) {
		assert.False(t, cal.IsOpen(time.Saturday), "Saturday should be closed")
		assert.False(t, cal.IsOpen(time.Sunday), "Sunday should be closed")
	})

	t.Run("Open Days Listed Monday First", func(t *testing.T) {
		expected := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		assert.Equal(t, expected, cal.OpenDays(), "open days should run Monday through Friday")
	})
}

func TestNthOpenDayAfter(t *testing.T) {
	cal := DefaultCalendar()

	t.Run("Zero From Open Day Stays Put", func(t *testing.T) {
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Monday, 0))
		assert.Equal(t, time.Friday, cal.NthOpenDayAfter(time.Friday, 0))
	})

	t.Run("Zero From Closed Day Moves To Next Opening", func(t *testing.T) {
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Saturday, 0))
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Sunday, 0))
	})

	t.Run("Counts Only Open Days", func(t *testing.T) {
		assert.Equal(t, time.Thursday, cal.NthOpenDayAfter(time.Monday, 3))
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Wednesday, 3), "Thursday, Friday then Monday")
	})

	t.Run("Wraps Across The Weekend", func(t *testing.T) {
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Friday, 1))
		assert.Equal(t, time.Tuesday, cal.NthOpenDayAfter(time.Thursday, 2))
	})

	t.Run("Five Openings Is A Full Week", func(t *testing.T) {
		assert.Equal(t, time.Monday, cal.NthOpenDayAfter(time.Monday, 5))
		assert.Equal(t, time.Friday, cal.NthOpenDayAfter(time.Friday, 5))
	})

	t.Run("Custom Three Day Week", func(t *testing.T) {
		threeDay := NewOperatingCalendar(time.Monday, time.Wednesday, time.Friday)
		assert.Equal(t, time.Wednesday, threeDay.NthOpenDayAfter(time.Monday, 1))
		assert.Equal(t, time.Monday, threeDay.NthOpenDayAfter(time.Friday, 1))
		assert.Equal(t, time.Monday, threeDay.NthOpenDayAfter(time.Saturday, 0))
		assert.Equal(t, time.Monday, threeDay.NthOpenDayAfter(time.Monday, 3), "Wednesday, Friday then Monday is three openings")
	})

	t.Run("No Open Days Returns Input", func(t *testing.T) {
		var closed OperatingCalendar
		assert.Equal(t, time.Tuesday, closed.NthOpenDayAfter(time.Tuesday, 4))
	})
}

func TestParseWeekday(t *testing.T) {
	t.Run("Full Names", func(t *testing.T) {
		day, ok := parseWeekday("Wednesday")
		assert.True(t, ok)
		assert.Equal(t, time.Wednesday, day)
	})

	t.Run("Abbreviations", func(t *testing.T) {
		for token, expected := range map[string]time.Weekday{
			"mon":   time.Monday,
			"tues":  time.Tuesday,
			"thur":  time.Thursday,
			"thurs": time.Thursday,
			"sat":   time.Saturday,
		} {
			day, ok := parseWeekday(token)
			assert.True(t, ok, "token %q should parse", token)
			assert.Equal(t, expected, day, "token %q", token)
		}
	})

	t.Run("Case And Whitespace Insensitive", func(t *testing.T) {
		day, ok := parseWeekday("  FRIDAY ")
		assert.True(t, ok)
		assert.Equal(t, time.Friday, day)
	})

	t.Run("Unknown Token Rejected", func(t *testing.T) {
		_, ok := parseWeekday("someday")
		assert.False(t, ok)
		_, ok = parseWeekday("")
		assert.False(t, ok)
	})
}
