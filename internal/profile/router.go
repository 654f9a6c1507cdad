package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPlan indicates no plan text was supplied.
var ErrEmptyPlan = errors.New("empty plan")

// DefaultMinMatches is the minimum distinct keyword matches required to
// select a profile.
const DefaultMinMatches = 2

// Detection holds the result of routing plan text to reviewer profiles.
type Detection struct {
	Profiles         []string            `json:"profiles"`
	DetectedKeywords map[string][]string `json:"detected_keywords"`
	Summary          string              `json:"summary"`
}

// Detect analyzes plan text and returns the profiles whose keyword sets
// match at least minMatches distinct keywords. Profiles are returned in
// routing order. Returns ErrEmptyPlan if the plan is empty or whitespace.
func Detect(plan string, minMatches int) (*Detection, error) {
	if strings.TrimSpace(plan) == "" {
		return nil, ErrEmptyPlan
	}
	if minMatches < 1 {
		minMatches = DefaultMinMatches
	}

	lower := strings.ToLower(plan)
	result := &Detection{DetectedKeywords: make(map[string][]string)}

	for _, p := range Profiles {
		matched := matchKeywords(lower, p.Keywords)
		if len(matched) >= minMatches {
			result.Profiles = append(result.Profiles, p.ID)
			result.DetectedKeywords[p.ID] = matched
		}
	}

	if len(result.Profiles) > 0 {
		descriptions := make([]string, len(result.Profiles))
		for i, id := range result.Profiles {
			p, _ := ByID(id)
			descriptions[i] = p.Description
		}
		result.Summary = fmt.Sprintf("Detected: %s", strings.Join(descriptions, ", "))
	} else {
		result.Summary = "No specific domain detected, using generic architect review"
	}

	return result, nil
}
