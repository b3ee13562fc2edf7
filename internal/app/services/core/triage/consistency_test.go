package triage

import (
	"testing"

	"slotplan-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func bookedAs(pathway string, tier models.Urgency, slotType string) models.TriageRequest {
	return models.TriageRequest{
		RequestType: models.RequestTypeMedical,
		Pathway:     pathway,
		Urgency:     tier,
		SlotType:    slotType,
	}
}

func TestAnalyzeConsistencyEligibility(t *testing.T) {
	t.Run("Automated Requests Excluded", func(t *testing.T) {
		auto := bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP")
		auto.Automated = true
		report := AnalyzeConsistency([]models.TriageRequest{auto}, DefaultMismatchRules())
		assert.Zero(t, report.EligibleRequests, "automated bookings say nothing about clinician habits")
	})

	t.Run("Unset Slot Type Excluded", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Rash", models.UrgencyGreen, "-"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "  "),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Zero(t, report.EligibleRequests)
	})

	t.Run("Non Medical Excluded", func(t *testing.T) {
		admin := bookedAs("Triage.Admin", models.UrgencyGreen, "Routine GP")
		admin.RequestType = "Admin"
		report := AnalyzeConsistency([]models.TriageRequest{admin}, DefaultMismatchRules())
		assert.Zero(t, report.EligibleRequests)
	})

	t.Run("Missing Urgency Counts As Eligible But Unscored", func(t *testing.T) {
		report := AnalyzeConsistency([]models.TriageRequest{bookedAs("Triage.Rash", "", "Routine GP")}, DefaultMismatchRules())
		assert.Equal(t, 1, report.EligibleRequests)
		for _, tier := range report.ByUrgency {
			assert.Zero(t, tier.Total)
		}
	})
}

func TestAnalyzeConsistencyByUrgency(t *testing.T) {
	requests := []models.TriageRequest{
		bookedAs("Triage.ChestPain", models.UrgencyRed, "Same Day GP"),
		bookedAs("Triage.ChestPain", models.UrgencyRed, "Same Day GP"),
		bookedAs("Triage.ChestPain", models.UrgencyRed, "Urgent Telephone"),
	}
	report := AnalyzeConsistency(requests, DefaultMismatchRules())

	t.Run("All Four Tiers Always Present", func(t *testing.T) {
		assert.Len(t, report.ByUrgency, 4)
		assert.Equal(t, models.UrgencyRed, report.ByUrgency[0].Urgency)
		assert.Equal(t, models.UrgencyGreen, report.ByUrgency[3].Urgency)
		assert.Zero(t, report.ByUrgency[3].Total)
		assert.Empty(t, report.ByUrgency[3].Distribution)
	})

	t.Run("Distribution Sorted Most Common First", func(t *testing.T) {
		red := report.ByUrgency[0]
		assert.Equal(t, 3, red.Total)
		assert.Equal(t, "Same Day GP", red.Distribution[0].SlotType)
		assert.Equal(t, 2, red.Distribution[0].Count)
		assert.InDelta(t, 66.6667, red.Distribution[0].Percent, 0.001)
		assert.Equal(t, "Urgent Telephone", red.Distribution[1].SlotType)
	})
}

func TestAnalyzeConsistencyScoring(t *testing.T) {
	t.Run("Uniform Booking Scores Zero", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.ByPathwayUrgency, 1)
		assert.Zero(t, report.ByPathwayUrgency[0].VariationScore)
	})

	t.Run("Even Split Scores Fifty", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Nurse Clinic"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Nurse Clinic"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.InDelta(t, 50.0, report.ByPathwayUrgency[0].VariationScore, 0.0001)
	})

	t.Run("Groups Below Three Observations Dropped", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Nurse Clinic"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Empty(t, report.ByPathwayUrgency, "two observations are noise, not a pattern")
	})

	t.Run("Ranked By Variation Then Volume", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Cough", models.UrgencyYellow, "GP Appointment"),
			bookedAs("Triage.Cough", models.UrgencyYellow, "GP Appointment"),
			bookedAs("Triage.Cough", models.UrgencyYellow, "GP Appointment"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Routine GP"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Nurse Clinic"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.ByPathwayUrgency, 2)
		assert.Equal(t, "Triage.Rash", report.ByPathwayUrgency[0].Pathway, "the scattered group outranks the uniform one")
		assert.Equal(t, "Triage.Cough", report.ByPathwayUrgency[1].Pathway)
	})
}

func TestAnalyzeConsistencyMismatches(t *testing.T) {
	t.Run("Downgrade Detected", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.ChestPain", models.UrgencyRed, "Routine Clinic"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.Mismatches, 1)
		m := report.Mismatches[0]
		assert.Equal(t, models.UrgencyRed, m.RecommendedUrgency)
		assert.Equal(t, models.UrgencyGreen, m.AssignedUrgency)
		assert.Equal(t, MismatchDowngraded, m.Direction)
		assert.Equal(t, 1, m.Count)
	})

	t.Run("Upgrade Detected", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Headache", models.UrgencyYellow, "GP Red Slot"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.Mismatches, 1)
		assert.Equal(t, MismatchUpgraded, report.Mismatches[0].Direction)
		assert.Equal(t, models.UrgencyRed, report.Mismatches[0].AssignedUrgency)
	})

	t.Run("Phrase Rules Beat Color Words", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Rash", models.UrgencyGreen, "Green Next Day Review"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.Mismatches, 1, "next day implies amber even though green also appears in the name")
		assert.Equal(t, models.UrgencyAmber, report.Mismatches[0].AssignedUrgency)
	})

	t.Run("Matching Tier Is Not A Mismatch", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.ChestPain", models.UrgencyRed, "Same Day GP"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Empty(t, report.Mismatches)
	})

	t.Run("Unrecognized Names Flag Nothing", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.ChestPain", models.UrgencyRed, "Telephone Callback"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Empty(t, report.Mismatches, "no substring match means no flag raised")
	})

	t.Run("Groups Ordered By Count With Slot Type Shares", func(t *testing.T) {
		requests := []models.TriageRequest{
			bookedAs("Triage.Cough", models.UrgencyYellow, "Routine Clinic"),
			bookedAs("Triage.Cough", models.UrgencyYellow, "Routine Clinic"),
			bookedAs("Triage.Cough", models.UrgencyYellow, "Green Pathway"),
			bookedAs("Triage.Rash", models.UrgencyGreen, "Same Day GP"),
		}
		report := AnalyzeConsistency(requests, DefaultMismatchRules())
		assert.Len(t, report.Mismatches, 2)

		first := report.Mismatches[0]
		assert.Equal(t, "Triage.Cough", first.Pathway)
		assert.Equal(t, 3, first.Count)
		assert.Equal(t, "Routine Clinic", first.SlotTypes[0].SlotType)
		assert.Equal(t, 2, first.SlotTypes[0].Count)

		assert.Equal(t, "Triage.Rash", report.Mismatches[1].Pathway)
		assert.Equal(t, MismatchUpgraded, report.Mismatches[1].Direction)
	})
}
