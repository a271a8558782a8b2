package engine

// Severity is the five-tier classification of overall impact magnitude,
// driven entirely by explosive yield.
type Severity string

const (
	SeverityLow          Severity = "low"
	SeverityModerate     Severity = "moderate"
	SeverityHigh         Severity = "high"
	SeveritySevere       Severity = "severe"
	SeverityCatastrophic Severity = "catastrophic"
)

// severityRank orders tiers for comparison and repository filtering.
var severityRank = map[Severity]int{
	SeverityLow:          0,
	SeverityModerate:     1,
	SeverityHigh:         2,
	SeveritySevere:       3,
	SeverityCatastrophic: 4,
}

// ClassifySeverity maps TNT-equivalent yield in tons onto a severity tier.
// Boundaries are half-open on the upper side: exactly 1.0 tons is "high".
func ClassifySeverity(yieldTons float64) Severity {
	switch {
	case yieldTons < 0.1:
		return SeverityLow
	case yieldTons < 1:
		return SeverityModerate
	case yieldTons < 10:
		return SeverityHigh
	case yieldTons < 100:
		return SeveritySevere
	default:
		return SeverityCatastrophic
	}
}

// Rank returns the ordinal position of the severity tier, with unknown
// values ranking below "low".
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// ParseSeverity maps a string onto a known tier, returning false for
// unrecognized input.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(s)
	_, ok := severityRank[sev]
	return sev, ok
}
