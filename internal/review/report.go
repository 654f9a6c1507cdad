package review

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/terminal"
)

// severityColor maps a finding level to its display color.
func severityColor(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return terminal.Red
	case domain.SeverityMedium:
		return terminal.Yellow
	case domain.SeverityLow:
		return terminal.Cyan
	default:
		return terminal.Dim
	}
}

// RenderText writes a human-readable report to w.
func RenderText(w io.Writer, result *IterationResult) {
	width := terminal.ReportWidth()
	agg := result.Report

	fmt.Fprintln(w, sectionHeading("Findings by Reviewer", width))

	for _, id := range sortedProfiles(agg) {
		outcome := agg.ByProfile[id]
		fmt.Fprintf(w, "\n%s%s%s\n", terminal.Color(terminal.Bold), id, terminal.Color(terminal.Reset))

		if outcome.Failed() {
			fmt.Fprintf(w, "  %s✗ %s%s\n", terminal.Color(terminal.Red), outcome.Err, terminal.Color(terminal.Reset))
			continue
		}
		if len(outcome.Findings) == 0 {
			fmt.Fprintf(w, "  %s✓ No issues%s\n", terminal.Color(terminal.Green), terminal.Color(terminal.Reset))
			continue
		}
		for _, f := range outcome.Findings {
			tag := fmt.Sprintf("%s[%s]%s", terminal.Color(severityColor(f.Level)), f.Level, terminal.Color(terminal.Reset))
			body := terminal.WrapText(f.Text, width, "      ")
			fmt.Fprintf(w, "  - %s %s\n", tag, strings.TrimLeft(body, " "))
		}
	}

	if len(agg.Conflicts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionHeading("Potential Conflicts", width))
		for _, c := range agg.Conflicts {
			fmt.Fprintf(w, "\n%s! %s%s\n", terminal.Color(terminal.Yellow), c.Description, terminal.Color(terminal.Reset))
			fmt.Fprintf(w, "  %s: %s\n", c.FindingA.Source, truncate(c.FindingA.Text, 80))
			fmt.Fprintf(w, "  %s: %s\n", c.FindingB.Source, truncate(c.FindingB.Text, 80))
			if c.ResolutionHint != "" {
				fmt.Fprintf(w, "  %sSuggestion: %s%s\n", terminal.Color(terminal.Dim), c.ResolutionHint, terminal.Color(terminal.Reset))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionHeading("Summary", width))
	t := agg.Totals
	fmt.Fprintf(w, "Total: %d HIGH, %d MEDIUM, %d LOW, %d NITPICK\n", t.High, t.Medium, t.Low, t.Nitpick)
	fmt.Fprintf(w, "Reviewers: %d completed, %d failed\n", agg.ProfilesCompleted, agg.ProfilesFailed)
	fmt.Fprintf(w, "Duplicates detected: %d\n", agg.DuplicatesRemoved)
	fmt.Fprintf(w, "Conflicts detected: %d\n", len(agg.Conflicts))
	if result.Elapsed > 0 {
		fmt.Fprintf(w, "Elapsed: %s\n", terminal.FormatDuration(result.Elapsed))
	}

	if result.Loop != nil && result.Loop.Repeating {
		fmt.Fprintf(w, "\n%s%s%s\n", terminal.Color(terminal.Yellow), result.Loop.Message, terminal.Color(terminal.Reset))
	}

	if agg.Outstanding {
		fmt.Fprintf(w, "\n%sOutstanding issues require attention before implementation.%s\n",
			terminal.Color(terminal.Red), terminal.Color(terminal.Reset))
	} else {
		fmt.Fprintf(w, "\n%s✓ Plan approved, ready to implement.%s\n",
			terminal.Color(terminal.Green), terminal.Color(terminal.Reset))
	}
}

func sectionHeading(title string, width int) string {
	return fmt.Sprintf("%s %s%s%s %s",
		terminal.Ruler(3, "━"),
		terminal.Color(terminal.Bold), title, terminal.Color(terminal.Reset),
		terminal.Ruler(max(0, width-len(title)-6), "━"))
}

func sortedProfiles(agg *domain.AggregatedReport) []string {
	ids := make([]string, 0, len(agg.ByProfile))
	for id := range agg.ByProfile {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

