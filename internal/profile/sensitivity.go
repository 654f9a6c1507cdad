package profile

import (
	"math"
	"strings"
)

// Level is a security sensitivity classification for a plan.
type Level string

const (
	LevelPersonal   Level = "personal"
	LevelInternal   Level = "internal"
	LevelPublic     Level = "public"
	LevelEnterprise Level = "enterprise"
)

// DefaultLevel is used when detection is uncertain.
const DefaultLevel = LevelPublic

// LevelInfo describes one sensitivity level and its keyword set.
type LevelInfo struct {
	Level       Level
	Description string
	Keywords    []string
}

// Levels is the fixed, exhaustive table of sensitivity levels.
var Levels = []LevelInfo{
	{
		Level:       LevelPersonal,
		Description: "Personal/hobby project with minimal exposure",
		Keywords: []string{
			"side project", "learning", "prototype", "hobby",
			"personal", "toy", "experiment", "playground", "demo",
			"tutorial", "practice", "sandbox", "test project", "poc",
			"proof of concept", "just for fun", "pet project",
		},
	},
	{
		Level:       LevelInternal,
		Description: "Internal tool for authenticated employees",
		Keywords: []string{
			"internal", "admin", "backoffice", "employee", "intranet",
			"dashboard", "ops", "tooling", "internal tool", "staff",
			"company", "corporate", "back office", "management",
			"hr", "operations", "internal users", "employees only",
		},
	},
	{
		Level:       LevelPublic,
		Description: "Public-facing app with customer data",
		Keywords: []string{
			"public", "customer", "user-facing", "saas", "production",
			"users", "signup", "registration", "billing", "payment",
			"checkout", "consumer", "end user", "customer-facing",
			"public api", "external", "internet", "web app",
		},
	},
	{
		Level:       LevelEnterprise,
		Description: "Regulated industry with compliance requirements",
		Keywords: []string{
			"compliance", "hipaa", "pci", "soc2", "gdpr", "regulated",
			"healthcare", "financial", "government", "audit", "pii",
			"sox", "fedramp", "banking", "insurance", "medical",
			"phi", "ferpa", "ccpa", "sensitive data", "classified",
		},
	},
}

// ValidLevel reports whether s names a known sensitivity level.
func ValidLevel(s string) bool {
	for _, l := range Levels {
		if string(l.Level) == s {
			return true
		}
	}
	return false
}

// LevelDescription returns the description for a level, or the default
// level's description for unknown input.
func LevelDescription(level Level) string {
	for _, l := range Levels {
		if l.Level == level {
			return l.Description
		}
	}
	return LevelDescription(DefaultLevel)
}

// LevelDetection holds the result of sensitivity classification.
type LevelDetection struct {
	Level           Level              `json:"level"`
	Confidence      float64            `json:"confidence"`
	MatchedKeywords []string           `json:"matched_keywords"`
	Description     string             `json:"description"`
	AllMatches      map[Level][]string `json:"all_matches,omitempty"`
}

// DetectLevel classifies plan text into a sensitivity level using the same
// keyword-count approach as profile routing. The level with the most
// distinct matches wins; confidence scales with match count and drops when
// a second level is within one match of the winner. No matches at all
// yields the default level with low confidence, never an error.
func DetectLevel(plan string) *LevelDetection {
	lower := strings.ToLower(plan)

	scores := make(map[Level][]string)
	for _, l := range Levels {
		matched := matchKeywords(lower, l.Keywords)
		if len(matched) > 0 {
			scores[l.Level] = matched
		}
	}

	if len(scores) == 0 {
		return &LevelDetection{
			Level:       DefaultLevel,
			Confidence:  0.3,
			Description: LevelDescription(DefaultLevel),
		}
	}

	// Pick the level with the most matches; table order breaks ties.
	var best Level
	bestCount := -1
	secondCount := 0
	for _, l := range Levels {
		matched, ok := scores[l.Level]
		if !ok {
			continue
		}
		if len(matched) > bestCount {
			secondCount = bestCount
			best = l.Level
			bestCount = len(matched)
		} else if len(matched) > secondCount {
			secondCount = len(matched)
		}
	}

	confidence := baseConfidence(bestCount)
	if len(scores) > 1 && secondCount >= bestCount-1 {
		// Close competition between levels reduces confidence.
		confidence *= 0.8
	}

	result := &LevelDetection{
		Level:           best,
		Confidence:      math.Round(confidence*100) / 100,
		MatchedKeywords: scores[best],
		Description:     LevelDescription(best),
	}
	if len(scores) > 1 {
		result.AllMatches = scores
	}
	return result
}

func baseConfidence(matches int) float64 {
	switch {
	case matches >= 5:
		return 0.95
	case matches >= 3:
		return 0.85
	case matches >= 2:
		return 0.75
	default:
		return 0.6
	}
}
