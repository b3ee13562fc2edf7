package triage

import (
	"testing"
	"time"

	"slotplan-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func medicalOn(day string, tier models.Urgency) models.TriageRequest {
	return models.TriageRequest{
		RequestType: models.RequestTypeMedical,
		RequestDay:  day,
		Pathway:     "Triage.Headache",
		Urgency:     tier,
	}
}

func repeat(r models.TriageRequest, n int) []models.TriageRequest {
	out := make([]models.TriageRequest, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestTranslateTierRules(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("Red Needs Same Day Capacity", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyRed), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Monday][models.UrgencyRed])
	})

	t.Run("Amber Needs Next Day Capacity", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyAmber), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Tuesday][models.UrgencyAmber])
		assert.Equal(t, 0, profile.Needed[time.Monday][models.UrgencyAmber], "no amber demand should stay on the submission day")
	})

	t.Run("Friday Amber Collapses To Same Day Red", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Friday", models.UrgencyAmber), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Friday][models.UrgencyRed], "Saturday is closed so the 24h promise lands same day as red")
		assert.Equal(t, 0, profile.Needed[time.Monday][models.UrgencyAmber], "amber demand must not slide to Monday")
		assert.Equal(t, 0, profile.Needed[time.Friday][models.UrgencyAmber])
	})

	t.Run("Yellow Lands Three Openings Out", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyYellow), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Thursday][models.UrgencyYellow])

		profile = Translate(repeat(medicalOn("Wednesday", models.UrgencyYellow), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Monday][models.UrgencyYellow], "Thursday, Friday then Monday")
	})

	t.Run("Green Lands Five Openings Out", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Tuesday", models.UrgencyGreen), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Tuesday][models.UrgencyGreen], "five openings from Tuesday is Tuesday again")
	})
}

func TestTranslateWeekendGate(t *testing.T) {
	t.Run("Closed Day Requests Dropped By Default", func(t *testing.T) {
		requests := []models.TriageRequest{
			medicalOn("Saturday", models.UrgencyRed),
			medicalOn("Sunday", models.UrgencyGreen),
		}
		profile := Translate(requests, 1, DefaultPolicy())
		assert.Equal(t, 0, totalNeeded(profile), "weekend demand should not appear anywhere")
	})

	t.Run("Closed Day Requests Roll Forward When Accepted", func(t *testing.T) {
		policy := TranslationPolicy{Calendar: DefaultCalendar(), AcceptWeekendRequests: true}

		profile := Translate(repeat(medicalOn("Saturday", models.UrgencyRed), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Monday][models.UrgencyRed], "red from Saturday lands on the next opening")

		profile = Translate(repeat(medicalOn("Saturday", models.UrgencyAmber), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Monday][models.UrgencyRed], "Sunday is closed so Saturday amber collapses to red on Monday")

		profile = Translate(repeat(medicalOn("Sunday", models.UrgencyGreen), 1), 1, policy)
		assert.Equal(t, 1, profile.Needed[time.Friday][models.UrgencyGreen], "five openings from Sunday is Friday")
	})
}

func TestTranslateExclusions(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("Non Medical Requests Ignored", func(t *testing.T) {
		admin := medicalOn("Monday", models.UrgencyRed)
		admin.RequestType = "Admin"
		profile := Translate([]models.TriageRequest{admin}, 1, policy)
		assert.Equal(t, 0, totalNeeded(profile))
	})

	t.Run("Missing Urgency Ignored", func(t *testing.T) {
		r := medicalOn("Monday", "")
		profile := Translate([]models.TriageRequest{r}, 1, policy)
		assert.Equal(t, 0, totalNeeded(profile))
	})

	t.Run("Unparseable Day Ignored", func(t *testing.T) {
		r := medicalOn("Moonday", models.UrgencyRed)
		profile := Translate([]models.TriageRequest{r}, 1, policy)
		assert.Equal(t, 0, totalNeeded(profile))
	})

	t.Run("No Open Days Yields Empty Profile", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyRed), 3), 1, TranslationPolicy{})
		assert.Empty(t, profile.Days)
		assert.Equal(t, 0, totalNeeded(profile))
	})
}

func TestTranslateAveraging(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("Raw Counts Divided By Week Count", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyRed), 9), 4, policy)
		assert.Equal(t, 9, profile.Counts[time.Monday][models.UrgencyRed], "raw accumulation should stay untouched")
		assert.Equal(t, 2, profile.Needed[time.Monday][models.UrgencyRed], "9 over 4 weeks rounds to 2")
	})

	t.Run("Halves Round Away From Zero", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyRed), 10), 4, policy)
		assert.Equal(t, 3, profile.Needed[time.Monday][models.UrgencyRed], "2.5 rounds up to 3")
	})

	t.Run("Week Count Below One Treated As One", func(t *testing.T) {
		profile := Translate(repeat(medicalOn("Monday", models.UrgencyRed), 2), 0, policy)
		assert.Equal(t, 1, profile.NumWeeks)
		assert.Equal(t, 2, profile.Needed[time.Monday][models.UrgencyRed])
	})
}

func TestTranslateConservation(t *testing.T) {
	policy := DefaultPolicy()
	requests := []models.TriageRequest{
		medicalOn("Monday", models.UrgencyRed),
		medicalOn("Monday", models.UrgencyAmber),
		medicalOn("Tuesday", models.UrgencyYellow),
		medicalOn("Wednesday", models.UrgencyGreen),
		medicalOn("Friday", models.UrgencyAmber),
		medicalOn("Saturday", models.UrgencyRed),
		{RequestType: "Admin", RequestDay: "Monday", Urgency: models.UrgencyRed},
		medicalOn("Thursday", ""),
	}

	profile := Translate(requests, 1, policy)
	assert.Equal(t, 5, totalNeeded(profile), "every open-day medical request with an urgency lands exactly once")
}

func TestTranslateEndToEnd(t *testing.T) {
	requests := append(repeat(medicalOn("Monday", models.UrgencyRed), 5),
		append(repeat(medicalOn("Friday", models.UrgencyAmber), 3),
			repeat(medicalOn("Monday", models.UrgencyYellow), 2)...)...)

	profile := Translate(requests, 1, DefaultPolicy())

	assert.Equal(t, 5, profile.Needed[time.Monday][models.UrgencyRed])
	assert.Equal(t, 3, profile.Needed[time.Friday][models.UrgencyRed], "Friday amber collapses to Friday red")
	assert.Equal(t, 2, profile.Needed[time.Thursday][models.UrgencyYellow])
	assert.Equal(t, 10, totalNeeded(profile), "nothing else should hold demand")
}

func TestTranslateDeterminism(t *testing.T) {
	requests := []models.TriageRequest{
		medicalOn("Monday", models.UrgencyRed),
		medicalOn("Tuesday", models.UrgencyAmber),
		medicalOn("Friday", models.UrgencyGreen),
	}
	first := Translate(requests, 2, DefaultPolicy())
	second := Translate(requests, 2, DefaultPolicy())
	assert.Equal(t, first, second, "same input must produce the same profile")
}

func totalNeeded(profile CapacityProfile) int {
	total := 0
	for _, day := range profile.Days {
		for _, count := range profile.Needed[day] {
			total += count
		}
	}
	return total
}
