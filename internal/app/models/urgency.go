package models

import "strings"

// Urgency is the triage tier recommended for a request. The four tiers are
// strictly ordered by clinical severity: RED > AMBER > YELLOW > GREEN.
// The empty string means the request carries no urgency and is excluded
// from urgency-based analysis.
type Urgency string

const (
	UrgencyRed    Urgency = "RED"
	UrgencyAmber  Urgency = "AMBER"
	UrgencyYellow Urgency = "YELLOW"
	UrgencyGreen  Urgency = "GREEN"
)

var urgencyRank = map[Urgency]int{
	UrgencyRed:    4,
	UrgencyAmber:  3,
	UrgencyYellow: 2,
	UrgencyGreen:  1,
}

// AllUrgencies lists the tiers most severe first.
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyRed, UrgencyAmber, UrgencyYellow, UrgencyGreen}
}

func (u Urgency) Valid() bool {
	_, ok := urgencyRank[u]
	return ok
}

// Rank returns the severity ordinal, higher is more severe. Zero for an
// unknown or empty tier.
func (u Urgency) Rank() int {
	return urgencyRank[u]
}

func (u Urgency) MoreSevereThan(other Urgency) bool {
	return u.Rank() > other.Rank()
}

// ParseUrgency normalizes free-text tier names from export files.
func ParseUrgency(s string) (Urgency, bool) {
	u := Urgency(strings.ToUpper(strings.TrimSpace(s)))
	if u.Valid() {
		return u, true
	}
	return "", false
}
