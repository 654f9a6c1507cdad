package profile

import (
	"errors"
	"testing"
)

func TestDetectSelectsMatchingProfiles(t *testing.T) {
	plan := `# Plan: user accounts

Add OAuth login with JWT tokens. Sessions are stored server-side.
The React dashboard gets a new settings component with a modal form.`

	detection, err := Detect(plan, 2)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	want := []string{"security", "frontend"}
	if len(detection.Profiles) != len(want) {
		t.Fatalf("Profiles = %v, want %v", detection.Profiles, want)
	}
	for i, id := range want {
		if detection.Profiles[i] != id {
			t.Errorf("Profiles[%d] = %q, want %q", i, detection.Profiles[i], id)
		}
	}

	if len(detection.DetectedKeywords["security"]) < 2 {
		t.Errorf("security keywords = %v, want at least 2", detection.DetectedKeywords["security"])
	}
}

func TestDetectWordBoundaries(t *testing.T) {
	// "api" must not match inside "capital", "rest" not inside "restructure".
	plan := "The capital restructure plan reallocates the budget across departments and teams."

	detection, err := Detect(plan, 2)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(detection.Profiles) != 0 {
		t.Errorf("Profiles = %v, want none", detection.Profiles)
	}
	if detection.Summary != "No specific domain detected, using generic architect review" {
		t.Errorf("Summary = %q", detection.Summary)
	}
}

func TestDetectThreshold(t *testing.T) {
	plan := "Ship the service in a docker image."

	detection, err := Detect(plan, 2)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(detection.Profiles) != 0 {
		t.Errorf("minMatches=2: Profiles = %v, want none", detection.Profiles)
	}

	detection, err = Detect(plan, 1)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(detection.Profiles) != 1 || detection.Profiles[0] != "devops" {
		t.Errorf("minMatches=1: Profiles = %v, want [devops]", detection.Profiles)
	}
}

func TestDetectEmptyPlan(t *testing.T) {
	for _, plan := range []string{"", "   \n\t  "} {
		if _, err := Detect(plan, 2); !errors.Is(err, ErrEmptyPlan) {
			t.Errorf("Detect(%q) error = %v, want ErrEmptyPlan", plan, err)
		}
	}
}

func TestDetectSummaryListsDescriptions(t *testing.T) {
	plan := "Add a postgres schema migration and a new index on the users table."

	detection, err := Detect(plan, 2)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	want := "Detected: schema design, queries, indexes, consistency"
	if detection.Summary != want {
		t.Errorf("Summary = %q, want %q", detection.Summary, want)
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	plan := "Add OAUTH and TLS termination with a CERTIFICATE rotation job."

	detection, err := Detect(plan, 2)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(detection.Profiles) == 0 || detection.Profiles[0] != "security" {
		t.Errorf("Profiles = %v, want security first", detection.Profiles)
	}
}
