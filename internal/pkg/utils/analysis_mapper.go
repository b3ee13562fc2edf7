package utils

import (
	"time"

	"slotplan-service/internal/app/models"
	"slotplan-service/internal/app/services/core/triage"
	"slotplan-service/internal/pkg/dto/responses"
)

func ConvertDemandSummaryToResponse(summary triage.DemandSummary) responses.DemandSummary {
	out := responses.DemandSummary{
		TotalRequests:   summary.TotalRequests,
		MedicalRequests: summary.MedicalRequests,
		NumWeeks:        summary.NumWeeks,
		WeekdayCounts:   make(map[string]int, len(summary.WeekdayCounts)),
		HourCounts:      append([]int(nil), summary.HourCounts[:]...),
		Heatmap:         make(map[string][]int, 7),
		SevenDayAverage: summary.SevenDayAverage,
	}

	for day, count := range summary.WeekdayCounts {
		out.WeekdayCounts[day.String()] = count
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		out.Heatmap[day.String()] = append([]int(nil), summary.Heatmap[day][:]...)
	}

	for _, daily := range summary.DailyCounts {
		out.DailyCounts = append(out.DailyCounts, responses.DateCount{
			Date:  daily.Date,
			Count: daily.Count,
		})
	}
	for _, entry := range summary.Pareto {
		out.Pareto = append(out.Pareto, responses.ParetoEntry{
			Pathway:           entry.Pathway,
			Symptom:           entry.Symptom,
			Count:             entry.Count,
			Percent:           entry.Percent,
			CumulativePercent: entry.CumulativePercent,
		})
	}
	for _, trend := range summary.SymptomTrends {
		converted := responses.SymptomTrend{
			Symptom: trend.Symptom,
			Total:   trend.Total,
		}
		for _, month := range trend.Monthly {
			converted.Monthly = append(converted.Monthly, responses.MonthCount{
				Month: month.Month,
				Count: month.Count,
			})
		}
		out.SymptomTrends = append(out.SymptomTrends, converted)
	}
	return out
}

func ConvertCapacityProfileToResponse(profile triage.CapacityProfile) responses.CapacityProfile {
	out := responses.CapacityProfile{
		NumWeeks: profile.NumWeeks,
		Needed:   make(map[string]map[string]int, len(profile.Needed)),
	}
	for _, day := range profile.Days {
		out.Days = append(out.Days, day.String())
	}
	for day, tiers := range profile.Needed {
		out.Needed[day.String()] = convertTierCounts(tiers)
	}
	return out
}

func ConvertGapRowsToResponse(rows []triage.GapRow) []responses.GapRow {
	var out []responses.GapRow
	for _, row := range rows {
		out = append(out, responses.GapRow{
			Day:      row.Day.String(),
			Needed:   convertTierCounts(row.Needed),
			Capacity: convertTierCounts(row.Capacity),
			Gap:      convertTierCounts(row.Gap),
		})
	}
	return out
}

func ConvertSlotConfigToTable(config triage.SlotCapacityConfig) map[string]map[string]int {
	out := make(map[string]map[string]int, len(config))
	for day, tiers := range config {
		out[day.String()] = convertTierCounts(tiers)
	}
	return out
}

func ConvertConsistencyToResponse(report triage.ConsistencyReport) responses.ConsistencyReport {
	out := responses.ConsistencyReport{
		EligibleRequests: report.EligibleRequests,
	}
	for _, tier := range report.ByUrgency {
		out.ByUrgency = append(out.ByUrgency, responses.TierSlotDistribution{
			Urgency:      string(tier.Urgency),
			Total:        tier.Total,
			Distribution: convertSlotShares(tier.Distribution),
		})
	}
	for _, record := range report.ByPathwayUrgency {
		out.ByPathwayUrgency = append(out.ByPathwayUrgency, responses.ConsistencyRecord{
			Pathway:        record.Pathway,
			Urgency:        string(record.Urgency),
			Total:          record.Total,
			Distribution:   convertSlotShares(record.Distribution),
			VariationScore: record.VariationScore,
		})
	}
	for _, group := range report.Mismatches {
		out.Mismatches = append(out.Mismatches, responses.MismatchGroup{
			Pathway:            group.Pathway,
			RecommendedUrgency: string(group.RecommendedUrgency),
			AssignedUrgency:    string(group.AssignedUrgency),
			Direction:          string(group.Direction),
			Count:              group.Count,
			SlotTypes:          convertSlotShares(group.SlotTypes),
		})
	}
	return out
}

func convertSlotShares(shares []triage.SlotTypeShare) []responses.SlotTypeShare {
	var out []responses.SlotTypeShare
	for _, share := range shares {
		out = append(out, responses.SlotTypeShare{
			SlotType: share.SlotType,
			Count:    share.Count,
			Percent:  share.Percent,
		})
	}
	return out
}

func convertTierCounts(tiers map[models.Urgency]int) map[string]int {
	out := make(map[string]int, len(tiers))
	for tier, count := range tiers {
		out[string(tier)] = count
	}
	return out
}
