package triage

import (
	"sort"
	"time"

	"slotplan-service/internal/app/models"
)

// DateCount is the demand observed on one calendar date.
type DateCount struct {
	Date  string
	Count int
}

// ParetoEntry ranks one pathway within the demand Pareto curve.
type ParetoEntry struct {
	Pathway           string
	Symptom           string
	Count             int
	Percent           float64
	CumulativePercent float64
}

// MonthCount is the demand for one calendar month, keyed YYYY-MM.
type MonthCount struct {
	Month string
	Count int
}

// SymptomTrend is the month-over-month volume series for one symptom.
type SymptomTrend struct {
	Symptom string
	Total   int
	Monthly []MonthCount
}

// DemandSummary is the aggregate view over a full request collection.
// Heatmap is indexed [weekday][hour] with time.Weekday numbering.
type DemandSummary struct {
	TotalRequests   int
	MedicalRequests int
	NumWeeks        int
	WeekdayCounts   map[time.Weekday]int
	HourCounts      [24]int
	Heatmap         [7][24]int
	DailyCounts     []DateCount
	SevenDayAverage float64
	Pareto          []ParetoEntry
	SymptomTrends   []SymptomTrend
}

// Summarize buckets the request collection by weekday, hour, date, pathway
// and month. All averages divide by observed data only: the trailing
// average runs over the 7 most recent dates that actually appear, and
// NumWeeks counts distinct ISO week starts, never less than 1.
func Summarize(requests []models.TriageRequest) DemandSummary {
	summary := DemandSummary{
		WeekdayCounts: make(map[time.Weekday]int, 7),
	}

	dailyCounts := make(map[string]int)
	weekStarts := make(map[string]struct{})
	pathwayCounts := make(map[string]int)
	monthlyBySymptom := make(map[string]map[string]int)

	for _, r := range requests {
		summary.TotalRequests++
		if r.IsMedical() {
			summary.MedicalRequests++
		}

		day, dayOK := parseWeekday(r.RequestDay)
		if dayOK {
			summary.WeekdayCounts[day]++
		}
		if r.RequestHour != nil && *r.RequestHour >= 0 && *r.RequestHour < 24 {
			summary.HourCounts[*r.RequestHour]++
			if dayOK {
				summary.Heatmap[int(day)][*r.RequestHour]++
			}
		}

		if r.RequestDate != nil {
			date := r.RequestDate
			dailyCounts[date.Format("2006-01-02")]++
			weekStarts[isoWeekStart(*date)] = struct{}{}

			if symptom := r.Symptom(); symptom != "" {
				month := date.Format("2006-01")
				if monthlyBySymptom[symptom] == nil {
					monthlyBySymptom[symptom] = make(map[string]int)
				}
				monthlyBySymptom[symptom][month]++
			}
		}

		if r.Pathway != "" {
			pathwayCounts[r.Pathway]++
		}
	}

	summary.NumWeeks = len(weekStarts)
	if summary.NumWeeks < 1 {
		summary.NumWeeks = 1
	}

	summary.DailyCounts = sortedDailyCounts(dailyCounts)
	summary.SevenDayAverage = trailingAverage(summary.DailyCounts, 7)
	summary.Pareto = paretoRanking(pathwayCounts)
	summary.SymptomTrends = symptomTrends(monthlyBySymptom)

	return summary
}

// isoWeekStart returns the Monday date of t's week, used to count distinct
// observed weeks.
func isoWeekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

func sortedDailyCounts(counts map[string]int) []DateCount {
	if len(counts) == 0 {
		return nil
	}
	out := make([]DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// trailingAverage averages the counts of the window most recent observed
// dates. Dates with no data never enter the window.
func trailingAverage(daily []DateCount, window int) float64 {
	if len(daily) == 0 || window <= 0 {
		return 0
	}
	start := len(daily) - window
	if start < 0 {
		start = 0
	}
	sum := 0
	for _, dc := range daily[start:] {
		sum += dc.Count
	}
	return float64(sum) / float64(len(daily)-start)
}

func paretoRanking(pathwayCounts map[string]int) []ParetoEntry {
	if len(pathwayCounts) == 0 {
		return nil
	}
	total := 0
	out := make([]ParetoEntry, 0, len(pathwayCounts))
	for pathway, count := range pathwayCounts {
		total += count
		out = append(out, ParetoEntry{
			Pathway: pathway,
			Symptom: models.TriageRequest{Pathway: pathway}.Symptom(),
			Count:   count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pathway < out[j].Pathway
	})

	cumulative := 0.0
	for i := range out {
		out[i].Percent = float64(out[i].Count) / float64(total) * 100
		cumulative += out[i].Percent
		out[i].CumulativePercent = cumulative
	}
	return out
}

func symptomTrends(monthlyBySymptom map[string]map[string]int) []SymptomTrend {
	if len(monthlyBySymptom) == 0 {
		return nil
	}
	out := make([]SymptomTrend, 0, len(monthlyBySymptom))
	for symptom, months := range monthlyBySymptom {
		trend := SymptomTrend{Symptom: symptom}
		for month, count := range months {
			trend.Total += count
			trend.Monthly = append(trend.Monthly, MonthCount{Month: month, Count: count})
		}
		sort.Slice(trend.Monthly, func(i, j int) bool { return trend.Monthly[i].Month < trend.Monthly[j].Month })
		out = append(out, trend)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Symptom < out[j].Symptom
	})
	return out
}
