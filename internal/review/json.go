package review

import (
	"encoding/json"
	"io"

	"github.com/fandolabs/planreview/internal/domain"
)

// Report is the machine-readable form of an aggregated review.
type Report struct {
	ByReviewer  map[string][]domain.Finding `json:"by_reviewer"`
	AllFindings []domain.Finding            `json:"all_findings"`
	Conflicts   []domain.Conflict           `json:"conflicts"`
	Errors      map[string]string           `json:"errors,omitempty"`
	Summary     ReportSummary               `json:"summary"`
}

// ReportSummary carries the aggregate counts.
type ReportSummary struct {
	TotalHigh            int  `json:"total_high"`
	TotalMedium          int  `json:"total_medium"`
	TotalLow             int  `json:"total_low"`
	TotalNitpick         int  `json:"total_nitpick"`
	DuplicatesRemoved    int  `json:"duplicates_removed"`
	ConflictsDetected    int  `json:"conflicts_detected"`
	ProfilesCompleted    int  `json:"profiles_completed"`
	ProfilesFailed       int  `json:"profiles_failed"`
	HasOutstandingIssues bool `json:"has_outstanding_issues"`
}

// NewReport converts an aggregated report into its serializable form.
// Slices are initialized so empty collections encode as [] rather than null.
func NewReport(agg *domain.AggregatedReport) *Report {
	r := &Report{
		ByReviewer:  make(map[string][]domain.Finding, len(agg.ByProfile)),
		AllFindings: []domain.Finding{},
		Conflicts:   []domain.Conflict{},
	}

	for id, outcome := range agg.ByProfile {
		if outcome.Failed() {
			if r.Errors == nil {
				r.Errors = make(map[string]string)
			}
			r.Errors[id] = outcome.Err
			continue
		}
		findings := outcome.Findings
		if findings == nil {
			findings = []domain.Finding{}
		}
		r.ByReviewer[id] = findings
	}

	r.AllFindings = append(r.AllFindings, agg.AllFindings...)
	r.Conflicts = append(r.Conflicts, agg.Conflicts...)

	r.Summary = ReportSummary{
		TotalHigh:            agg.Totals.High,
		TotalMedium:          agg.Totals.Medium,
		TotalLow:             agg.Totals.Low,
		TotalNitpick:         agg.Totals.Nitpick,
		DuplicatesRemoved:    agg.DuplicatesRemoved,
		ConflictsDetected:    len(agg.Conflicts),
		ProfilesCompleted:    agg.ProfilesCompleted,
		ProfilesFailed:       agg.ProfilesFailed,
		HasOutstandingIssues: agg.Outstanding,
	}
	return r
}

// EncodeReport writes the aggregated report as indented JSON.
func EncodeReport(w io.Writer, agg *domain.AggregatedReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(agg))
}
