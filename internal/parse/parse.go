// Package parse extracts structured findings from a reviewer's free-text
// response. Parsing is a single-pass scan keyed on fixed delimiter tokens,
// not a grammar; drift in the upstream reviewer's output format is an
// accepted limitation.
package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/fandolabs/planreview/internal/domain"
)

var (
	// ErrEmptyResponse indicates the reviewer returned no text at all.
	ErrEmptyResponse = errors.New("empty response")
	// ErrNoFindingsSection indicates the response has neither a findings
	// section nor an approval signal and could not be parsed.
	ErrNoFindingsSection = errors.New("no findings section found")
)

// Stop reasons reported when a reviewer response ends the iteration loop.
const (
	StopReasonApproved   = "LGTM - plan approved"
	StopReasonNoFindings = "No findings - plan approved"
	StopReasonLowOnly    = "Only LOW/NITPICK findings remain"
)

// findingsHeading delimits the findings section of a response.
const findingsHeading = "## Findings"

var (
	// lgtmPattern matches the unambiguous approval phrase. The whole phrase
	// must sit on one line; "LGTM" and the closing words drifting apart
	// across paragraphs is not an approval.
	lgtmPattern = regexp.MustCompile(`(?i)LGTM.*(?:ready to implement|no further changes)`)

	// findingTag anchors on the severity tag literal at line start, so
	// severity words inside finding prose never start a new finding.
	findingTag = regexp.MustCompile(`(?i)^-\s*\[(HIGH|MEDIUM|LOW|NITPICK)\]\s*(.*)$`)
)

// Result holds the findings extracted from one reviewer response.
type Result struct {
	Totals     domain.SeverityTotals `json:"totals"`
	LGTM       bool                  `json:"lgtm"`
	Findings   []domain.Finding      `json:"items"`
	ShouldStop bool                  `json:"should_stop"`
	StopReason string                `json:"stop_reason,omitempty"`
}

// Parse extracts findings and the stop recommendation from a reviewer's raw
// response text. Findings preserve discovery order. Returns
// ErrNoFindingsSection when the response has no findings section and no
// approval signal.
func Parse(response string) (*Result, error) {
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyResponse
	}

	result := &Result{
		LGTM: lgtmPattern.MatchString(response),
	}

	section, ok := findingsSection(response)
	if !ok {
		if result.LGTM {
			result.ShouldStop = true
			result.StopReason = StopReasonApproved
			return result, nil
		}
		return nil, ErrNoFindingsSection
	}

	result.Findings = scanFindings(section)
	for _, f := range result.Findings {
		result.Totals.Add(f.Level)
	}

	if result.LGTM || !result.Totals.Outstanding() {
		result.ShouldStop = true
		switch {
		case result.LGTM:
			result.StopReason = StopReasonApproved
		case result.Totals.Low == 0 && result.Totals.Nitpick == 0:
			result.StopReason = StopReasonNoFindings
		default:
			result.StopReason = StopReasonLowOnly
		}
	}

	return result, nil
}

// findingsSection returns the text between the findings heading and the
// next "## " heading (or end of response). The heading only counts when a
// newline follows it, with nothing but whitespace in between; a response
// trailing off mid-heading has no findings section.
func findingsSection(response string) (string, bool) {
	idx := strings.Index(response, findingsHeading)
	if idx < 0 {
		return "", false
	}
	rest := response[idx+len(findingsHeading):]
	nl := strings.Index(rest, "\n")
	if nl < 0 || strings.TrimSpace(rest[:nl]) != "" {
		return "", false
	}
	body := rest[nl+1:]
	if end := strings.Index(body, "\n## "); end >= 0 {
		body = body[:end]
	}
	return body, true
}

// scanFindings segments the section into findings. Each finding starts at a
// tagged line and runs until the next tagged line or end of section.
func scanFindings(section string) []domain.Finding {
	var findings []domain.Finding
	var level domain.Severity
	var text []string
	open := false

	flush := func() {
		if !open {
			return
		}
		findings = append(findings, domain.Finding{
			Level: level,
			Text:  strings.TrimSpace(strings.Join(text, "\n")),
		})
	}

	for _, line := range strings.Split(section, "\n") {
		if m := findingTag.FindStringSubmatch(line); m != nil {
			flush()
			level, _ = domain.ParseSeverity(m[1])
			text = []string{m[2]}
			open = true
			continue
		}
		if open {
			text = append(text, line)
		}
	}
	flush()

	return findings
}
