// Package aggregate merges findings from multiple reviewers, counting
// near-duplicates and detecting cross-reviewer conflicts.
package aggregate

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/fandolabs/planreview/internal/domain"
)

// DuplicateThreshold is the minimum similarity ratio for two findings of the
// same severity to count as duplicates.
const DuplicateThreshold = 0.7

// normalize lowercases text and collapses all whitespace runs to single
// spaces so similarity compares content rather than formatting.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Similarity returns the character-level similarity ratio between two texts
// after normalization, in the range [0, 1].
func Similarity(a, b string) float64 {
	na := strings.Split(normalize(a), "")
	nb := strings.Split(normalize(b), "")
	return difflib.NewMatcher(na, nb).Ratio()
}

// isDuplicate reports whether two findings are near-duplicates. Findings at
// different severity levels are never duplicates regardless of text.
func isDuplicate(a, b domain.Finding) bool {
	if a.Level != b.Level {
		return false
	}
	return Similarity(a.Text, b.Text) >= DuplicateThreshold
}
