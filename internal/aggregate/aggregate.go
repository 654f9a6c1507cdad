package aggregate

import (
	"github.com/fandolabs/planreview/internal/domain"
)

// Aggregate merges reviewer outcomes into a single report. Findings keep
// their source attribution; near-duplicates across reviewers are counted in
// DuplicatesRemoved but stay in AllFindings so no reviewer's signal is lost.
func Aggregate(outcomes []domain.ReviewOutcome) *domain.AggregatedReport {
	report := &domain.AggregatedReport{
		ByProfile: make(map[string]domain.ReviewOutcome, len(outcomes)),
	}

	for _, outcome := range outcomes {
		report.ByProfile[outcome.Profile] = outcome
		if outcome.Failed() {
			report.ProfilesFailed++
			continue
		}
		report.ProfilesCompleted++

		for _, f := range outcome.Findings {
			report.AllFindings = append(report.AllFindings, f)
			report.Totals.Add(f.Level)
		}
	}

	// Count near-duplicates against earlier-kept findings. Quadratic, but
	// finding counts are small.
	var unique []domain.Finding
	for _, f := range report.AllFindings {
		dupe := false
		for _, existing := range unique {
			if isDuplicate(f, existing) {
				dupe = true
				report.DuplicatesRemoved++
				break
			}
		}
		if !dupe {
			unique = append(unique, f)
		}
	}

	// Conflicts only matter between actionable findings.
	var actionable []domain.Finding
	for _, f := range report.AllFindings {
		if f.Level == domain.SeverityHigh || f.Level == domain.SeverityMedium {
			actionable = append(actionable, f)
		}
	}
	for i := 0; i < len(actionable); i++ {
		for j := i + 1; j < len(actionable); j++ {
			report.Conflicts = append(report.Conflicts, detectConflicts(actionable[i], actionable[j])...)
		}
	}

	report.Outstanding = report.Totals.Outstanding()
	return report
}
