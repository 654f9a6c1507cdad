package converge

import (
	"strings"
	"testing"

	"github.com/fandolabs/planreview/internal/domain"
)

func reportWith(texts ...string) *domain.AggregatedReport {
	r := &domain.AggregatedReport{}
	for _, text := range texts {
		r.AllFindings = append(r.AllFindings, domain.Finding{
			Level:  domain.SeverityHigh,
			Text:   text,
			Source: "security",
		})
	}
	return r
}

func TestDetectRepeatingFindings(t *testing.T) {
	var h History

	first := reportWith("No CSRF protection on the form", "Token lifetime is unbounded")
	second := reportWith("No CSRF protection on the form", "Token lifetime is unbounded")
	third := reportWith("No CSRF protection on the form", "Token lifetime is unbounded")

	if sig := h.Detect(first); sig != nil {
		t.Errorf("Detect() = %v with empty history, want nil", sig)
	}
	h.Push(first)

	if sig := h.Detect(second); sig != nil {
		t.Errorf("Detect() = %v with one prior iteration, want nil", sig)
	}
	h.Push(second)

	sig := h.Detect(third)
	if sig == nil || !sig.Repeating {
		t.Fatalf("Detect() = %v on third identical iteration, want repeating signal", sig)
	}
	if sig.Overlap != 2 {
		t.Errorf("Overlap = %d, want 2", sig.Overlap)
	}
	if sig.Message == "" {
		t.Error("Message is empty")
	}
}

func TestDetectProgressMadeNoSignal(t *testing.T) {
	var h History

	h.Push(reportWith("Issue A", "Issue B", "Issue C"))
	h.Push(reportWith("Issue D", "Issue E", "Issue F"))

	current := reportWith("Issue G", "Issue H", "Issue I")
	if sig := h.Detect(current); sig != nil {
		t.Errorf("Detect() = %v for fresh findings, want nil", sig)
	}
}

func TestDetectIgnoresLowSeverity(t *testing.T) {
	var h History
	h.Push(reportWith("Persistent issue"))
	h.Push(reportWith("Persistent issue"))

	current := &domain.AggregatedReport{
		AllFindings: []domain.Finding{
			{Level: domain.SeverityLow, Text: "Persistent issue", Source: "security"},
		},
	}
	if sig := h.Detect(current); sig != nil {
		t.Errorf("Detect() = %v with no actionable findings, want nil", sig)
	}
}

func TestDetectOverlapBoundary(t *testing.T) {
	var h History

	prior := reportWith("Issue A", "Issue B", "Issue C", "Issue D", "Issue E",
		"Issue F", "Issue G", "Issue H", "Issue I", "Issue J")
	h.Push(prior)
	h.Push(prior)

	// 7 of 10 recur: exactly at the 70% boundary.
	current := reportWith("Issue A", "Issue B", "Issue C", "Issue D", "Issue E",
		"Issue F", "Issue G", "New 1", "New 2", "New 3")
	sig := h.Detect(current)
	if sig == nil {
		t.Fatal("Detect() = nil at 70% overlap, want signal")
	}
	if sig.Overlap != 7 {
		t.Errorf("Overlap = %d, want 7", sig.Overlap)
	}

	// 6 of 10: below the boundary.
	current = reportWith("Issue A", "Issue B", "Issue C", "Issue D", "Issue E",
		"Issue F", "New 1", "New 2", "New 3", "New 4")
	if sig := h.Detect(current); sig != nil {
		t.Errorf("Detect() = %v below 70%% overlap, want nil", sig)
	}
}

func TestDetectComparesPrefixes(t *testing.T) {
	var h History

	long := "The migration plan has no rollback strategy " + strings.Repeat("and this matters ", 10)
	rephrased := long[:100] + " with a completely different tail than before"

	h.Push(reportWith(long))
	h.Push(reportWith(long))

	sig := h.Detect(reportWith(rephrased))
	if sig == nil {
		t.Error("Detect() = nil for findings sharing a 100-char prefix, want signal")
	}
}

func TestHistoryWindowEvicts(t *testing.T) {
	var h History

	old := reportWith("Ancient issue")
	h.Push(old)
	h.Push(reportWith("Middle issue"))
	h.Push(reportWith("Recent issue"))

	// "Ancient issue" fell out of the two-slot window.
	if sig := h.Detect(old); sig != nil {
		t.Errorf("Detect() = %v for evicted iteration, want nil", sig)
	}
	if h.Len() != windowSize {
		t.Errorf("Len() = %d, want %d", h.Len(), windowSize)
	}
}
