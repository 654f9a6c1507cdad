// Package domain provides core types for the plan review engine.
package domain

import "strings"

// Severity classifies how urgent a finding is.
type Severity string

const (
	SeverityHigh    Severity = "HIGH"
	SeverityMedium  Severity = "MEDIUM"
	SeverityLow     Severity = "LOW"
	SeverityNitpick Severity = "NITPICK"
)

// ParseSeverity converts a severity tag to a Severity, case-insensitively.
// Returns false if the tag is not a known severity.
func ParseSeverity(tag string) (Severity, bool) {
	switch Severity(strings.ToUpper(tag)) {
	case SeverityHigh:
		return SeverityHigh, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityLow:
		return SeverityLow, true
	case SeverityNitpick:
		return SeverityNitpick, true
	default:
		return "", false
	}
}

// Outstanding reports whether the severity demands another review iteration.
func (s Severity) Outstanding() bool {
	return s == SeverityHigh || s == SeverityMedium
}

// Finding is a single reported issue from one reviewer profile.
// Immutable once parsed.
type Finding struct {
	Level  Severity `json:"level"`
	Text   string   `json:"text"`
	Source string   `json:"source"`
}

// SeverityTotals counts findings by severity across all profiles,
// before duplicate detection.
type SeverityTotals struct {
	High    int `json:"total_high"`
	Medium  int `json:"total_medium"`
	Low     int `json:"total_low"`
	Nitpick int `json:"total_nitpick"`
}

// Add increments the counter for the given severity.
func (t *SeverityTotals) Add(s Severity) {
	switch s {
	case SeverityHigh:
		t.High++
	case SeverityMedium:
		t.Medium++
	case SeverityLow:
		t.Low++
	case SeverityNitpick:
		t.Nitpick++
	}
}

// Sum returns the total finding count across all severities.
func (t SeverityTotals) Sum() int {
	return t.High + t.Medium + t.Low + t.Nitpick
}

// Outstanding reports whether any HIGH or MEDIUM findings remain.
func (t SeverityTotals) Outstanding() bool {
	return t.High > 0 || t.Medium > 0
}
