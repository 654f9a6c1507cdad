// Package converge tracks findings across review iterations and flags when
// reviewers keep raising the same issues without resolution.
package converge

import (
	"fmt"

	"github.com/fandolabs/planreview/internal/domain"
)

const (
	// windowSize is how many prior iterations are compared against.
	windowSize = 2

	// prefixLen is how many characters of each finding identify it across
	// iterations. Reviewers rephrase tails more often than openings.
	prefixLen = 100

	// overlapRatio is the fraction of current actionable findings that must
	// recur in a prior iteration to signal a loop.
	overlapRatio = 0.7
)

// Signal reports that reviewers appear stuck repeating the same findings.
type Signal struct {
	Repeating bool
	Overlap   int
	Message   string
}

// History is a bounded window of finding fingerprints from past iterations.
// The zero value is ready to use.
type History struct {
	window [windowSize]map[string]struct{}
	size   int
	next   int
}

// Push records the actionable findings of a completed iteration, evicting
// the oldest iteration once the window is full.
func (h *History) Push(report *domain.AggregatedReport) {
	h.window[h.next] = prefixSet(report)
	h.next = (h.next + 1) % windowSize
	if h.size < windowSize {
		h.size++
	}
}

// Len returns the number of iterations currently recorded.
func (h *History) Len() int {
	return h.size
}

// Detect compares the current report against recorded iterations and returns
// a Signal when enough actionable findings recur. Call before Push so the
// current iteration is not compared against itself. Returns nil when fewer
// than two prior iterations exist or the current report has no actionable
// findings.
func (h *History) Detect(current *domain.AggregatedReport) *Signal {
	if h.size < windowSize {
		return nil
	}

	currentSet := prefixSet(current)
	if len(currentSet) == 0 {
		return nil
	}

	threshold := overlapRatio * float64(len(currentSet))
	for i := 0; i < h.size; i++ {
		overlap := 0
		for fp := range currentSet {
			if _, ok := h.window[i][fp]; ok {
				overlap++
			}
		}
		if float64(overlap) >= threshold {
			return &Signal{
				Repeating: true,
				Overlap:   overlap,
				Message:   fmt.Sprintf("reviewers appear to be repeating findings: %d issues unchanged", overlap),
			}
		}
	}
	return nil
}

// prefixSet fingerprints the HIGH and MEDIUM findings of a report by a
// rune-safe prefix of their text.
func prefixSet(report *domain.AggregatedReport) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range report.AllFindings {
		if f.Level != domain.SeverityHigh && f.Level != domain.SeverityMedium {
			continue
		}
		runes := []rune(f.Text)
		if len(runes) > prefixLen {
			runes = runes[:prefixLen]
		}
		set[string(runes)] = struct{}{}
	}
	return set
}
