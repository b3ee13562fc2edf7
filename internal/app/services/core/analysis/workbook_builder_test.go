package analysis

import (
	"bytes"
	"testing"
	"time"

	"slotplan-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *responses.AnalysisReport {
	return &responses.AnalysisReport{
		DatasetID:    "ds-7f2",
		Tenant:       "default",
		PlanID:       "plan-autumn",
		PlanRevision: 2,
		GeneratedAt:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Demand: &responses.DemandSummary{
			TotalRequests:   12,
			MedicalRequests: 10,
			NumWeeks:        2,
			SevenDayAverage: 1.5,
			Pareto: []responses.ParetoEntry{
				{Pathway: "Chest Pain", Symptom: "chest pain", Count: 5, Percent: 62.5, CumulativePercent: 62.5},
				{Pathway: "Rash", Symptom: "rash", Count: 3, Percent: 37.5, CumulativePercent: 100},
			},
		},
		Profile: &responses.CapacityProfile{
			NumWeeks: 2,
			Days:     []string{"Monday", "Tuesday"},
			Needed: map[string]map[string]int{
				"Monday":  {"RED": 4, "AMBER": 2, "YELLOW": 1, "GREEN": 0},
				"Tuesday": {"RED": 1, "AMBER": 0, "YELLOW": 2, "GREEN": 1},
			},
		},
		Gaps: []responses.GapRow{
			{
				Day:      "Monday",
				Needed:   map[string]int{"RED": 4, "AMBER": 2, "YELLOW": 1, "GREEN": 0},
				Capacity: map[string]int{"RED": 2, "AMBER": 2, "YELLOW": 0, "GREEN": 1},
				Gap:      map[string]int{"RED": 2, "AMBER": 0, "YELLOW": 1, "GREEN": -1},
			},
		},
		RecommendedPlan: map[string]map[string]int{
			"Monday":  {"RED": 5, "AMBER": 3, "YELLOW": 2, "GREEN": 0},
			"Tuesday": {"RED": 2, "AMBER": 0, "YELLOW": 3, "GREEN": 2},
		},
		Consistency: &responses.ConsistencyReport{EligibleRequests: 8},
	}
}

func TestBuildAnalysisWorkbook(t *testing.T) {
	content, err := BuildAnalysisWorkbook(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	t.Run("Full Report Renders Five Sheets", func(t *testing.T) {
		assert.Equal(t, []string{"Summary", "Weekly Capacity", "Gaps", "Recommended Plan", "Pareto"}, f.GetSheetList())
	})

	t.Run("Summary Labels The Dataset And Plan", func(t *testing.T) {
		label, err := f.GetCellValue("Summary", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Dataset", label)

		value, err := f.GetCellValue("Summary", "B1")
		require.NoError(t, err)
		assert.Equal(t, "ds-7f2", value)

		plan, err := f.GetCellValue("Summary", "A4")
		require.NoError(t, err)
		assert.Equal(t, "Capacity Plan", plan)
	})

	t.Run("Capacity Sheet Lays Out Days Against Tiers", func(t *testing.T) {
		header, err := f.GetCellValue("Weekly Capacity", "B1")
		require.NoError(t, err)
		assert.Equal(t, "RED", header)

		day, err := f.GetCellValue("Weekly Capacity", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Monday", day)

		mondayRed, err := f.GetCellValue("Weekly Capacity", "B2")
		require.NoError(t, err)
		assert.Equal(t, "4", mondayRed)

		tuesdayGreen, err := f.GetCellValue("Weekly Capacity", "E3")
		require.NoError(t, err)
		assert.Equal(t, "1", tuesdayGreen)
	})

	t.Run("Gap Sheet Writes One Row Per Tier", func(t *testing.T) {
		urgency, err := f.GetCellValue("Gaps", "B2")
		require.NoError(t, err)
		assert.Equal(t, "RED", urgency)

		shortfall, err := f.GetCellValue("Gaps", "E2")
		require.NoError(t, err)
		assert.Equal(t, "2", shortfall)

		surplus, err := f.GetCellValue("Gaps", "E5")
		require.NoError(t, err)
		assert.Equal(t, "-1", surplus, "a surplus keeps its sign in the export")
	})

	t.Run("Recommendation Sheet Mirrors The Buffered Plan", func(t *testing.T) {
		mondayRed, err := f.GetCellValue("Recommended Plan", "B2")
		require.NoError(t, err)
		assert.Equal(t, "5", mondayRed)

		tuesdayYellow, err := f.GetCellValue("Recommended Plan", "D3")
		require.NoError(t, err)
		assert.Equal(t, "3", tuesdayYellow)
	})

	t.Run("Pareto Sheet Ranks Pathways", func(t *testing.T) {
		pathway, err := f.GetCellValue("Pareto", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Chest Pain", pathway)

		cumulative, err := f.GetCellValue("Pareto", "E3")
		require.NoError(t, err)
		assert.Equal(t, "100", cumulative)
	})
}

func TestBuildAnalysisWorkbookSparse(t *testing.T) {
	report := &responses.AnalysisReport{
		DatasetID:   "ds-empty",
		Tenant:      "default",
		GeneratedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	content, err := BuildAnalysisWorkbook(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Weekly Capacity"}, f.GetSheetList(),
		"gap, recommendation and pareto sheets are omitted without data")
}
