package triage

import (
	"sort"
	"strings"

	"slotplan-service/internal/app/models"
)

// minGroupObservations is the statistical-noise floor: pathway/urgency
// combinations with fewer observations are not scored.
const minGroupObservations = 3

// SlotTypeShare is one slot type's share of a distribution.
type SlotTypeShare struct {
	SlotType string
	Count    int
	Percent  float64
}

// TierSlotDistribution answers "what do clinicians actually book for a
// request of this tier".
type TierSlotDistribution struct {
	Urgency      models.Urgency
	Total        int
	Distribution []SlotTypeShare
}

// ConsistencyRecord scores how consistently one (pathway, urgency) pair is
// booked. VariationScore is 100 minus the most common slot type's
// percentage: 0 means fully consistent, values toward 100 mean bookings
// scatter across many slot types.
type ConsistencyRecord struct {
	Pathway        string
	Urgency        models.Urgency
	Total          int
	Distribution   []SlotTypeShare
	VariationScore float64
}

// MismatchRule maps a substring found in a slot type name to the urgency
// tier that name implies. Rules are checked in order, first match wins, so
// longer phrases belong before single colors.
type MismatchRule struct {
	Substring string
	Tier      models.Urgency
}

// DefaultMismatchRules is the stock rule table. Deployments with different
// slot naming conventions can pass their own ordered table instead.
func DefaultMismatchRules() []MismatchRule {
	return []MismatchRule{
		{Substring: "same day", Tier: models.UrgencyRed},
		{Substring: "next day", Tier: models.UrgencyAmber},
		{Substring: "red", Tier: models.UrgencyRed},
		{Substring: "amber", Tier: models.UrgencyAmber},
		{Substring: "yellow", Tier: models.UrgencyYellow},
		{Substring: "green", Tier: models.UrgencyGreen},
		{Substring: "routine", Tier: models.UrgencyGreen},
	}
}

// MismatchDirection says which way a clinician deviated from the
// recommended tier.
type MismatchDirection string

const (
	MismatchUpgraded   MismatchDirection = "upgraded"
	MismatchDowngraded MismatchDirection = "downgraded"
)

// MismatchGroup aggregates requests whose assigned slot type implies a
// different tier than the recommended one, keyed by pathway and the two
// tiers involved.
type MismatchGroup struct {
	Pathway            string
	RecommendedUrgency models.Urgency
	AssignedUrgency    models.Urgency
	Direction          MismatchDirection
	Count              int
	SlotTypes          []SlotTypeShare
}

// ConsistencyReport is the full manual-triage consistency read model.
type ConsistencyReport struct {
	EligibleRequests int
	ByUrgency        []TierSlotDistribution
	ByPathwayUrgency []ConsistencyRecord
	Mismatches       []MismatchGroup
}

// AnalyzeConsistency examines Medical, non-automated requests that carry an
// assigned slot type. Detection of implied tiers is lexical matching over
// free-text category names: it is biased toward false negatives (no
// substring match means no mismatch is reported) and is surfaced as a
// best-effort signal, not ground truth.
func AnalyzeConsistency(requests []models.TriageRequest, rules []MismatchRule) ConsistencyReport {
	report := ConsistencyReport{}

	type pathwayTierKey struct {
		pathway string
		tier    models.Urgency
	}
	type mismatchKey struct {
		pathway     string
		recommended models.Urgency
		assigned    models.Urgency
	}

	byTier := make(map[models.Urgency]map[string]int)
	byPathwayTier := make(map[pathwayTierKey]map[string]int)
	mismatches := make(map[mismatchKey]map[string]int)

	for _, r := range requests {
		if !r.IsMedical() || r.Automated || !r.HasSlotType() {
			continue
		}
		report.EligibleRequests++
		if !r.HasUrgency() {
			continue
		}

		slotType := strings.TrimSpace(r.SlotType)
		if byTier[r.Urgency] == nil {
			byTier[r.Urgency] = make(map[string]int)
		}
		byTier[r.Urgency][slotType]++

		if r.Pathway != "" {
			key := pathwayTierKey{pathway: r.Pathway, tier: r.Urgency}
			if byPathwayTier[key] == nil {
				byPathwayTier[key] = make(map[string]int)
			}
			byPathwayTier[key][slotType]++
		}

		if implied, ok := impliedTier(slotType, rules); ok && implied != r.Urgency {
			key := mismatchKey{pathway: r.Pathway, recommended: r.Urgency, assigned: implied}
			if mismatches[key] == nil {
				mismatches[key] = make(map[string]int)
			}
			mismatches[key][slotType]++
		}
	}

	for _, tier := range models.AllUrgencies() {
		dist, total := buildDistribution(byTier[tier])
		report.ByUrgency = append(report.ByUrgency, TierSlotDistribution{
			Urgency:      tier,
			Total:        total,
			Distribution: dist,
		})
	}

	for key, counts := range byPathwayTier {
		dist, total := buildDistribution(counts)
		if total < minGroupObservations {
			continue
		}
		report.ByPathwayUrgency = append(report.ByPathwayUrgency, ConsistencyRecord{
			Pathway:        key.pathway,
			Urgency:        key.tier,
			Total:          total,
			Distribution:   dist,
			VariationScore: 100 - dist[0].Percent,
		})
	}
	sort.Slice(report.ByPathwayUrgency, func(i, j int) bool {
		a, b := report.ByPathwayUrgency[i], report.ByPathwayUrgency[j]
		if a.VariationScore != b.VariationScore {
			return a.VariationScore > b.VariationScore
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Pathway != b.Pathway {
			return a.Pathway < b.Pathway
		}
		return a.Urgency.Rank() > b.Urgency.Rank()
	})

	for key, counts := range mismatches {
		dist, total := buildDistribution(counts)
		direction := MismatchDowngraded
		if key.assigned.MoreSevereThan(key.recommended) {
			direction = MismatchUpgraded
		}
		report.Mismatches = append(report.Mismatches, MismatchGroup{
			Pathway:            key.pathway,
			RecommendedUrgency: key.recommended,
			AssignedUrgency:    key.assigned,
			Direction:          direction,
			Count:              total,
			SlotTypes:          dist,
		})
	}
	sort.Slice(report.Mismatches, func(i, j int) bool {
		a, b := report.Mismatches[i], report.Mismatches[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Pathway != b.Pathway {
			return a.Pathway < b.Pathway
		}
		if a.RecommendedUrgency != b.RecommendedUrgency {
			return a.RecommendedUrgency.Rank() > b.RecommendedUrgency.Rank()
		}
		return a.AssignedUrgency.Rank() > b.AssignedUrgency.Rank()
	})

	return report
}

// impliedTier scans the slot type name against the rule table. Matching is
// case-insensitive substring containment; the first rule that matches wins.
func impliedTier(slotType string, rules []MismatchRule) (models.Urgency, bool) {
	lowered := strings.ToLower(slotType)
	for _, rule := range rules {
		if strings.Contains(lowered, strings.ToLower(rule.Substring)) {
			return rule.Tier, true
		}
	}
	return "", false
}

// buildDistribution turns raw slot-type counts into shares sorted most
// common first, ties broken by name for stable output.
func buildDistribution(counts map[string]int) ([]SlotTypeShare, int) {
	if len(counts) == 0 {
		return nil, 0
	}
	total := 0
	for _, count := range counts {
		total += count
	}
	out := make([]SlotTypeShare, 0, len(counts))
	for slotType, count := range counts {
		share := SlotTypeShare{SlotType: slotType, Count: count}
		if total > 0 {
			share.Percent = float64(count) / float64(total) * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SlotType < out[j].SlotType
	})
	return out, total
}
