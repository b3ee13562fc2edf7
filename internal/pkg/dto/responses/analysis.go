package responses

import "time"

// AnalysisReport is the full read model returned by the analysis endpoint
// and snapshotted into shares. All day and tier keys are their English
// names so the payload is self-describing without client-side lookup
// tables.
type AnalysisReport struct {
	DatasetID             string                    `json:"dataset_id"`
	Tenant                string                    `json:"tenant"`
	PlanID                string                    `json:"plan_id,omitempty"`
	PlanRevision          int                       `json:"plan_revision,omitempty"`
	AcceptWeekendRequests bool                      `json:"accept_weekend_requests"`
	GeneratedAt           time.Time                 `json:"generated_at"`
	Demand                *DemandSummary            `json:"demand"`
	Profile               *CapacityProfile          `json:"profile"`
	Gaps                  []GapRow                  `json:"gaps,omitempty"`
	RecommendedPlan       map[string]map[string]int `json:"recommended_plan"`
	Consistency           *ConsistencyReport        `json:"consistency"`
}

type DemandSummary struct {
	TotalRequests   int              `json:"total_requests"`
	MedicalRequests int              `json:"medical_requests"`
	NumWeeks        int              `json:"num_weeks"`
	WeekdayCounts   map[string]int   `json:"weekday_counts"`
	HourCounts      []int            `json:"hour_counts"`
	Heatmap         map[string][]int `json:"heatmap"`
	DailyCounts     []DateCount      `json:"daily_counts,omitempty"`
	SevenDayAverage float64          `json:"seven_day_average"`
	Pareto          []ParetoEntry    `json:"pareto,omitempty"`
	SymptomTrends   []SymptomTrend   `json:"symptom_trends,omitempty"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ParetoEntry struct {
	Pathway           string  `json:"pathway"`
	Symptom           string  `json:"symptom"`
	Count             int     `json:"count"`
	Percent           float64 `json:"percent"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type SymptomTrend struct {
	Symptom string       `json:"symptom"`
	Total   int          `json:"total"`
	Monthly []MonthCount `json:"monthly"`
}

type CapacityProfile struct {
	NumWeeks int                       `json:"num_weeks"`
	Days     []string                  `json:"days"`
	Needed   map[string]map[string]int `json:"needed"`
}

type GapRow struct {
	Day      string         `json:"day"`
	Needed   map[string]int `json:"needed"`
	Capacity map[string]int `json:"capacity"`
	Gap      map[string]int `json:"gap"`
}

type ConsistencyReport struct {
	EligibleRequests int                    `json:"eligible_requests"`
	ByUrgency        []TierSlotDistribution `json:"by_urgency"`
	ByPathwayUrgency []ConsistencyRecord    `json:"by_pathway_urgency,omitempty"`
	Mismatches       []MismatchGroup        `json:"mismatches,omitempty"`
}

type SlotTypeShare struct {
	SlotType string  `json:"slot_type"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

type TierSlotDistribution struct {
	Urgency      string          `json:"urgency"`
	Total        int             `json:"total"`
	Distribution []SlotTypeShare `json:"distribution,omitempty"`
}

type ConsistencyRecord struct {
	Pathway        string          `json:"pathway"`
	Urgency        string          `json:"urgency"`
	Total          int             `json:"total"`
	Distribution   []SlotTypeShare `json:"distribution"`
	VariationScore float64         `json:"variation_score"`
}

type MismatchGroup struct {
	Pathway            string          `json:"pathway"`
	RecommendedUrgency string          `json:"recommended_urgency"`
	AssignedUrgency    string          `json:"assigned_urgency"`
	Direction          string          `json:"direction"`
	Count              int             `json:"count"`
	SlotTypes          []SlotTypeShare `json:"slot_types"`
}

// AnalysisWorkbook carries a rendered XLSX export.
type AnalysisWorkbook struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"-"`
}
