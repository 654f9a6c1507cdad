package aggregate

import (
	"strings"

	"github.com/fandolabs/planreview/internal/domain"
)

// conflictPattern describes a recurring tension between reviewer
// recommendations. A pair of findings matches when one side's text contains
// a keyword from keywordsA and the other side's contains one from keywordsB,
// in either direction.
type conflictPattern struct {
	name        string
	keywordsA   []string
	keywordsB   []string
	description string
	hint        string
}

var conflictPatterns = []conflictPattern{
	{
		name:        "rate_limit_conflict",
		keywordsA:   []string{"rate limit", "throttle", "restrict", "limit requests"},
		keywordsB:   []string{"throughput", "performance", "scale", "high volume"},
		description: "Rate limiting vs. throughput requirements",
		hint:        "Consider tiered rate limits: strict for public APIs, relaxed for authenticated users",
	},
	{
		name:        "client_vs_server_validation",
		keywordsA:   []string{"client-side validation", "frontend validation", "ui validation"},
		keywordsB:   []string{"server-side validation", "backend validation", "never trust client"},
		description: "Client-side vs. server-side validation approach",
		hint:        "Both: client-side for UX, server-side for security",
	},
	{
		name:        "caching_vs_consistency",
		keywordsA:   []string{"cache", "caching", "cache aggressively"},
		keywordsB:   []string{"consistency", "real-time", "up-to-date", "stale data"},
		description: "Caching strategy vs. data consistency",
		hint:        "Use cache invalidation strategies, consider TTL based on data sensitivity",
	},
	{
		name:        "simplicity_vs_security",
		keywordsA:   []string{"simple", "straightforward", "minimal"},
		keywordsB:   []string{"security", "secure", "protection", "defense in depth"},
		description: "Implementation simplicity vs. security requirements",
		hint:        "Security is non-negotiable; simplify within security constraints",
	},
	{
		name:        "deploy_vs_migration",
		keywordsA:   []string{"simple deploy", "quick deploy", "fast rollout"},
		keywordsB:   []string{"migration", "data migration", "schema change", "backwards compatible"},
		description: "Deployment simplicity vs. migration complexity",
		hint:        "Phased approach: deploy code first, migrate data incrementally",
	},
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// detectConflicts returns one Conflict per catalogue pattern the pair
// matches. Findings from the same reviewer never conflict; a reviewer
// contradicting itself is a parsing artifact, not a domain tension.
func detectConflicts(a, b domain.Finding) []domain.Conflict {
	if a.Source == b.Source {
		return nil
	}

	textA := normalize(a.Text)
	textB := normalize(b.Text)

	var conflicts []domain.Conflict
	for _, p := range conflictPatterns {
		forward := containsAny(textA, p.keywordsA) && containsAny(textB, p.keywordsB)
		reverse := containsAny(textA, p.keywordsB) && containsAny(textB, p.keywordsA)
		if forward || reverse {
			conflicts = append(conflicts, domain.Conflict{
				FindingA:       a,
				FindingB:       b,
				Description:    p.description,
				ResolutionHint: p.hint,
			})
		}
	}
	return conflicts
}
