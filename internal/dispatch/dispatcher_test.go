package dispatch

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/profile"
	"github.com/fandolabs/planreview/internal/terminal"
)

// fakeInvoker returns canned responses per profile, keyed on the display
// name embedded in the instruction.
type fakeInvoker struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []string

	active  atomic.Int32
	maxSeen atomic.Int32
	delay   time.Duration
}

func (f *fakeInvoker) Name() string { return "fake" }

func (f *fakeInvoker) IsAvailable() error { return nil }

func (f *fakeInvoker) Invoke(ctx context.Context, instruction, plan string) (*invoker.Result, error) {
	cur := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, invoker.ErrTimeout
		}
	}

	id := ""
	for _, p := range profile.Profiles {
		if strings.Contains(instruction, p.DisplayName) {
			id = p.ID
			break
		}
	}
	if id == "" && strings.Contains(instruction, profile.GenericDisplayName) {
		id = profile.GenericID
	}

	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	return &invoker.Result{Stdout: f.responses[id]}, nil
}

const cleanResponse = `## Findings
- [MEDIUM] Something worth fixing

## Summary
1 medium finding.`

func testLogger() *terminal.Logger {
	return terminal.NewLogger()
}

func TestRunCollectsAllProfiles(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"security":    cleanResponse,
			"frontend":    cleanResponse,
			"performance": cleanResponse,
		},
		errs: map[string]error{"frontend": invoker.ErrTimeout},
	}

	d, err := New(Config{Timeout: time.Minute, Level: profile.DefaultLevel}, inv, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	outcomes, _ := d.Run(context.Background(), "plan text", []string{"security", "frontend", "performance"})
	if len(outcomes) != 3 {
		t.Fatalf("len(outcomes) = %d, want 3", len(outcomes))
	}

	byProfile := map[string]int{}
	failed := 0
	for i, o := range outcomes {
		byProfile[o.Profile] = i
		if o.Failed() {
			failed++
			if o.Profile != "frontend" {
				t.Errorf("unexpected failure for %s: %s", o.Profile, o.Err)
			}
			if !o.TimedOut {
				t.Error("TimedOut = false for timed out reviewer")
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed outcomes = %d, want 1", failed)
	}
	if len(byProfile) != 3 {
		t.Errorf("distinct profiles = %d, want 3", len(byProfile))
	}

	ok := outcomes[byProfile["security"]]
	if len(ok.Findings) != 1 || ok.Findings[0].Source != "security" {
		t.Errorf("security findings = %+v, want one finding with source set", ok.Findings)
	}
}

func TestRunRespectsConcurrencyCap(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"security": cleanResponse, "frontend": cleanResponse,
			"data": cleanResponse, "api": cleanResponse,
		},
		delay: 20 * time.Millisecond,
	}

	d, err := New(Config{Timeout: time.Minute, Concurrency: 2, Level: profile.DefaultLevel}, inv, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	outcomes, _ := d.Run(context.Background(), "plan", []string{"security", "frontend", "data", "api"})
	if len(outcomes) != 4 {
		t.Fatalf("len(outcomes) = %d, want 4", len(outcomes))
	}
	if peak := inv.maxSeen.Load(); peak > 2 {
		t.Errorf("max concurrent invocations = %d, want <= 2", peak)
	}
}

func TestRunUnparseableResponse(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{"api": "I have nothing structured to say."},
	}

	d, err := New(Config{Timeout: time.Minute, Level: profile.DefaultLevel}, inv, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	outcomes, _ := d.Run(context.Background(), "plan", []string{"api"})
	if len(outcomes) != 1 {
		t.Fatalf("len(outcomes) = %d, want 1", len(outcomes))
	}
	if !outcomes[0].Failed() {
		t.Error("outcome not failed for unparseable response")
	}
	if !strings.Contains(outcomes[0].Err, "unparseable") {
		t.Errorf("Err = %q, want unparseable marker", outcomes[0].Err)
	}
}

func TestNewRequiresInvoker(t *testing.T) {
	if _, err := New(Config{}, nil, nil); err == nil {
		t.Error("New(nil invoker) error = nil, want error")
	}
}
