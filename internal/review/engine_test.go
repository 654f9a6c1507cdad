package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/profile"
)

// scriptedInvoker replays responses keyed by attempt count, so successive
// iterations can observe reviewer behavior changing (or not changing).
type scriptedInvoker struct {
	responses []string
	calls     int
}

func (s *scriptedInvoker) Name() string       { return "scripted" }
func (s *scriptedInvoker) IsAvailable() error { return nil }

func (s *scriptedInvoker) Invoke(ctx context.Context, instruction, plan string) (*invoker.Result, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return &invoker.Result{Stdout: s.responses[idx]}, nil
}

const approvedResponse = `## Findings

## Summary
LGTM - ready to implement.`

const outstandingResponse = `## Findings
- [HIGH] Tokens never expire and remain valid after logout

## Summary
1 high finding.`

func TestReviewApprovedPlan(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{approvedResponse}}
	engine := NewEngine(Options{
		Profiles: []string{"security"},
		Timeout:  time.Minute,
	}, inv, nil)

	result, err := engine.Review(context.Background(), "Add OAuth login with session tokens.")
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	if result.Report.Outstanding {
		t.Error("Outstanding = true for approved plan")
	}
	if !result.ShouldStop() {
		t.Error("ShouldStop() = false for approved plan")
	}
	if result.Report.ProfilesCompleted != 1 {
		t.Errorf("ProfilesCompleted = %d, want 1", result.Report.ProfilesCompleted)
	}
}

func TestReviewRoutesWhenNoProfilesGiven(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{approvedResponse}}
	engine := NewEngine(Options{Timeout: time.Minute}, inv, nil)

	result, err := engine.Review(context.Background(), "Add OAuth login with JWT and session handling.")
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if len(result.Routing.Profiles) == 0 {
		t.Fatal("Routing.Profiles is empty, want security detected")
	}
	if result.Routing.Profiles[0] != "security" {
		t.Errorf("Routing.Profiles[0] = %q, want security", result.Routing.Profiles[0])
	}
	if !strings.HasPrefix(result.Routing.Summary, "Detected:") {
		t.Errorf("Summary = %q", result.Routing.Summary)
	}
}

func TestReviewFallsBackToGenericProfile(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{approvedResponse}}
	engine := NewEngine(Options{Timeout: time.Minute}, inv, nil)

	result, err := engine.Review(context.Background(), "Tidy up the internal directory naming over the quarter.")
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if _, ok := result.Report.ByProfile[profile.GenericID]; !ok {
		t.Errorf("ByProfile = %v, want generic %q reviewer", result.Report.ByProfile, profile.GenericID)
	}
}

func TestReviewEmptyPlan(t *testing.T) {
	engine := NewEngine(Options{Timeout: time.Minute}, &scriptedInvoker{responses: []string{approvedResponse}}, nil)
	if _, err := engine.Review(context.Background(), "  \n "); !errors.Is(err, profile.ErrEmptyPlan) {
		t.Errorf("Review() error = %v, want ErrEmptyPlan", err)
	}
}

func TestReviewLoopDetectionAcrossIterations(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{outstandingResponse}}
	engine := NewEngine(Options{
		Profiles: []string{"security"},
		Timeout:  time.Minute,
	}, inv, nil)

	plan := "Add OAuth login with session tokens."

	for i := 0; i < 2; i++ {
		result, err := engine.Review(context.Background(), plan)
		if err != nil {
			t.Fatalf("iteration %d: Review() error = %v", i+1, err)
		}
		if result.Loop != nil {
			t.Errorf("iteration %d: Loop = %v, want nil", i+1, result.Loop)
		}
		if result.ShouldStop() {
			t.Errorf("iteration %d: ShouldStop() = true, want false", i+1)
		}
	}

	result, err := engine.Review(context.Background(), plan)
	if err != nil {
		t.Fatalf("third iteration: Review() error = %v", err)
	}
	if result.Loop == nil || !result.Loop.Repeating {
		t.Fatalf("third iteration: Loop = %v, want repeating signal", result.Loop)
	}
	if !result.ShouldStop() {
		t.Error("ShouldStop() = false despite repeating findings")
	}
}

func TestReviewSecurityLevelOverride(t *testing.T) {
	inv := &scriptedInvoker{responses: []string{approvedResponse}}
	engine := NewEngine(Options{
		Profiles:      []string{"security"},
		SecurityLevel: "enterprise",
		Timeout:       time.Minute,
	}, inv, nil)

	result, err := engine.Review(context.Background(), "Add OAuth login.")
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if result.Level.Level != profile.LevelEnterprise {
		t.Errorf("Level = %q, want enterprise", result.Level.Level)
	}
	if result.Level.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 for explicit override", result.Level.Confidence)
	}
}
