package domain

// Conflict is a detected tension between two findings from different
// reviewer profiles. The two findings always come from distinct sources
// and both carry HIGH or MEDIUM severity.
type Conflict struct {
	FindingA       Finding `json:"finding_a"`
	FindingB       Finding `json:"finding_b"`
	Description    string  `json:"description"`
	ResolutionHint string  `json:"resolution_hint,omitempty"`
}

// AggregatedReport is the merged result of one review iteration.
// Built fresh each iteration and never mutated after construction.
type AggregatedReport struct {
	ByProfile         map[string]ReviewOutcome
	AllFindings       []Finding
	DuplicatesRemoved int
	Conflicts         []Conflict
	Totals            SeverityTotals
	Outstanding       bool
	ProfilesCompleted int
	ProfilesFailed    int
}

// OutstandingFindings returns the HIGH and MEDIUM findings across all
// profiles, in concatenation order.
func (r *AggregatedReport) OutstandingFindings() []Finding {
	var findings []Finding
	for _, f := range r.AllFindings {
		if f.Level.Outstanding() {
			findings = append(findings, f)
		}
	}
	return findings
}

// AllFailed reports whether every requested profile failed.
func (r *AggregatedReport) AllFailed() bool {
	return len(r.ByProfile) > 0 && r.ProfilesFailed == len(r.ByProfile)
}
