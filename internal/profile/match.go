package profile

import (
	"regexp"
	"strings"
)

// wordPatterns holds precompiled word-boundary patterns for every
// single-word keyword in the profile and sensitivity tables. Built once at
// startup; never written afterward.
var wordPatterns = buildWordPatterns()

func buildWordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	add := func(keywords []string) {
		for _, kw := range keywords {
			if strings.Contains(kw, " ") {
				continue
			}
			if _, ok := patterns[kw]; !ok {
				patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
	for _, p := range Profiles {
		add(p.Keywords)
	}
	for _, l := range Levels {
		add(l.Keywords)
	}
	return patterns
}

// matchKeywords returns the distinct keywords that occur in the lowercased
// plan text. Phrase keywords match as contiguous substrings; single-word
// keywords require word boundaries so "api" does not match inside "capital".
func matchKeywords(lowerPlan string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(lowerPlan, kw) {
				matched = append(matched, kw)
			}
			continue
		}
		if re, ok := wordPatterns[kw]; ok && re.MatchString(lowerPlan) {
			matched = append(matched, kw)
		}
	}
	return matched
}
