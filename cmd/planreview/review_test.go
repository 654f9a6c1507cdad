package main

import (
	"errors"
	"testing"

	"github.com/fandolabs/planreview/internal/domain"
)

func TestFinalExitFollowsOutstandingOnly(t *testing.T) {
	// Every reviewer failing still exits clean: the code tracks the
	// outstanding-issues determination, not per-profile errors.
	allFailed := &domain.AggregatedReport{
		ByProfile: map[string]domain.ReviewOutcome{
			"security": {Profile: "security", Err: "timed out after 10m"},
			"api":      {Profile: "api", Err: "reviewer exited with code 1"},
		},
		ProfilesFailed: 2,
	}
	if !allFailed.AllFailed() {
		t.Fatal("fixture not recognized as fully failed")
	}
	if err := finalExit(allFailed); err != nil {
		t.Errorf("finalExit() = %v for fully failed run with no findings, want nil", err)
	}

	outstanding := &domain.AggregatedReport{
		Totals:      domain.SeverityTotals{High: 1},
		Outstanding: true,
	}
	err := finalExit(outstanding)
	var coded *exitCodeError
	if !errors.As(err, &coded) || coded.code != domain.ExitOutstanding {
		t.Errorf("finalExit() = %v, want exit code %d", err, domain.ExitOutstanding)
	}

	clean := &domain.AggregatedReport{
		ByProfile: map[string]domain.ReviewOutcome{
			"security": {Profile: "security"},
		},
		ProfilesCompleted: 1,
	}
	if err := finalExit(clean); err != nil {
		t.Errorf("finalExit() = %v for clean run, want nil", err)
	}
}
