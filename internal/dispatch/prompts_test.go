package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fandolabs/planreview/internal/profile"
)

func TestBuildInstructionBuiltIn(t *testing.T) {
	got, err := BuildInstruction("frontend", profile.DefaultLevel, "")
	if err != nil {
		t.Fatalf("BuildInstruction() error = %v", err)
	}

	if !strings.HasPrefix(got, "## Your Role in This Review") {
		t.Error("instruction missing focus preamble")
	}
	if !strings.Contains(got, "Frontend Architect") {
		t.Error("instruction missing display name")
	}
	if !strings.Contains(got, "## Findings") {
		t.Error("instruction missing response format")
	}
	if strings.Contains(got, "Security Level:") {
		t.Error("non-security profile received a security level")
	}
}

func TestBuildInstructionSecurityLevel(t *testing.T) {
	got, err := BuildInstruction("security", profile.LevelEnterprise, "")
	if err != nil {
		t.Fatalf("BuildInstruction() error = %v", err)
	}
	if !strings.Contains(got, "Security Level: enterprise") {
		t.Error("security profile instruction missing sensitivity level")
	}
	// The preamble still leads; the level sits just before the instruction.
	if !strings.HasPrefix(got, "## Your Role in This Review") {
		t.Error("instruction missing focus preamble")
	}
}

func TestBuildInstructionPromptDirOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "You are our in-house database specialist. Use the usual format."
	if err := os.WriteFile(filepath.Join(dir, "data.md"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BuildInstruction("data", profile.DefaultLevel, dir)
	if err != nil {
		t.Fatalf("BuildInstruction() error = %v", err)
	}
	if !strings.Contains(got, custom) {
		t.Error("override file content not used")
	}
	if strings.Contains(got, "Data Architect") {
		t.Error("built-in template used despite override")
	}

	// Profiles without an override file keep the built-in template.
	got, err = BuildInstruction("api", profile.DefaultLevel, dir)
	if err != nil {
		t.Fatalf("BuildInstruction() error = %v", err)
	}
	if !strings.Contains(got, "API Designer") {
		t.Error("missing built-in template for profile without override")
	}
}

func TestBuildInstructionGenericProfile(t *testing.T) {
	got, err := BuildInstruction(profile.GenericID, profile.DefaultLevel, "")
	if err != nil {
		t.Fatalf("BuildInstruction() error = %v", err)
	}
	if !strings.Contains(got, profile.GenericDisplayName) {
		t.Error("generic instruction missing display name")
	}
}
