// Package dispatch fans a plan out to reviewer profiles concurrently and
// collects their outcomes.
package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fandolabs/planreview/internal/profile"
)

// focusPreamble is prepended to every reviewer instruction so specialists
// stay in their lane while still seeing the full plan for context.
const focusPreamble = `## Your Role in This Review

You are one of several specialist reviewers examining this plan. You have the FULL plan
for context - this helps you understand WHY decisions were made and how your domain
connects to others.

**However**: Only flag issues in YOUR domain. Other specialists cover other areas.
- Understand the full context and reasoning
- But only raise findings for your area of expertise
- If something in your domain depends on another domain's decision, note it but don't
  flag the other domain's choice

This focused approach prevents duplicate findings and lets each specialist go deep
in their area.

---

`

// instructionTemplate is the built-in reviewer instruction, parameterized by
// the profile's display name. The response format it demands is what the
// parse package understands.
const instructionTemplate = `You are a %s reviewing an implementation plan.

Review this plan focusing on your area of expertise. Identify issues that would cause problems during implementation.

For each finding, assign a risk level:
- **HIGH**: Critical issue that must be addressed before implementation
- **MEDIUM**: Important consideration that should be addressed
- **LOW**: Minor improvement, nice-to-have
- **NITPICK**: Cosmetic or stylistic preference

Format your response as:

## Findings
- [HIGH/MEDIUM/LOW/NITPICK] Finding description...

## Summary
X high, Y medium, Z low, W nitpick findings.
If no issues: "LGTM - no concerns in my domain"
`

// BuildInstruction assembles the full instruction for a profile. When
// promptDir contains <profile>.md that file replaces the built-in template.
// The security profile additionally receives the plan's sensitivity level so
// it can calibrate severity.
func BuildInstruction(profileID string, level profile.Level, promptDir string) (string, error) {
	instruction := ""

	if promptDir != "" {
		path := filepath.Join(promptDir, profileID+".md")
		data, err := os.ReadFile(path)
		if err == nil {
			instruction = string(data)
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading prompt override for %s: %w", profileID, err)
		}
	}

	if instruction == "" {
		instruction = fmt.Sprintf(instructionTemplate, profile.DisplayName(profileID))
	}

	if profileID == "security" {
		instruction = fmt.Sprintf("Security Level: %s\n\n%s", level, instruction)
	}

	var b strings.Builder
	b.WriteString(focusPreamble)
	b.WriteString(instruction)
	return b.String(), nil
}
