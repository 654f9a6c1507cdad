package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/parse"
	"github.com/fandolabs/planreview/internal/profile"
	"github.com/fandolabs/planreview/internal/terminal"
)

// Config controls how reviews are dispatched.
type Config struct {
	// Timeout bounds each individual reviewer call.
	Timeout time.Duration

	// Concurrency caps simultaneous reviewer calls. Zero means one worker
	// per profile.
	Concurrency int

	// Level is the plan's sensitivity level, passed to the security profile.
	Level profile.Level

	// PromptDir optionally overrides built-in reviewer instructions.
	PromptDir string

	// Verbose enables per-reviewer progress logging.
	Verbose bool
}

// Dispatcher runs reviewer profiles against a plan concurrently.
type Dispatcher struct {
	config  Config
	invoker invoker.Invoker
	logger  *terminal.Logger
}

// New creates a Dispatcher. The invoker must not be nil.
func New(config Config, inv invoker.Invoker, logger *terminal.Logger) (*Dispatcher, error) {
	if inv == nil {
		return nil, errors.New("dispatch: invoker is required")
	}
	if logger == nil {
		logger = terminal.NewLogger()
	}
	return &Dispatcher{config: config, invoker: inv, logger: logger}, nil
}

// Run dispatches all profiles concurrently and returns one outcome per
// profile, in completion order. A reviewer failure becomes a failed outcome,
// never an error; Run only returns early when the parent context is
// cancelled, and even then every started profile reports an outcome.
func (d *Dispatcher) Run(ctx context.Context, plan string, profiles []string) ([]domain.ReviewOutcome, time.Duration) {
	start := time.Now()
	if len(profiles) == 0 {
		return nil, time.Since(start)
	}

	concurrency := d.config.Concurrency
	if concurrency <= 0 || concurrency > len(profiles) {
		concurrency = len(profiles)
	}

	spinner := terminal.NewSpinner(len(profiles))
	spinnerCtx, stopSpinner := context.WithCancel(context.Background())
	spinnerDone := make(chan struct{})
	go func() {
		defer close(spinnerDone)
		spinner.Run(spinnerCtx)
	}()

	sem := make(chan struct{}, concurrency)
	resultCh := make(chan domain.ReviewOutcome, len(profiles))

	for _, id := range profiles {
		go func(profileID string) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultCh <- domain.ReviewOutcome{
					Profile: profileID,
					Err:     "cancelled before start",
				}
				return
			}

			outcome := d.reviewProfile(ctx, profileID, plan)
			spinner.Completed().Add(1)
			if d.config.Verbose {
				if outcome.Failed() {
					d.logger.Logf(terminal.StyleWarning, "%s failed after %s: %s",
						profileID, terminal.FormatDuration(outcome.Elapsed), outcome.Err)
				} else {
					d.logger.Logf(terminal.StyleDim, "%s finished in %s (%d findings)",
						profileID, terminal.FormatDuration(outcome.Elapsed), len(outcome.Findings))
				}
			}
			resultCh <- outcome
		}(id)
	}

	outcomes := make([]domain.ReviewOutcome, 0, len(profiles))
	for range profiles {
		outcomes = append(outcomes, <-resultCh)
	}

	stopSpinner()
	<-spinnerDone

	return outcomes, time.Since(start)
}

// reviewProfile runs one reviewer end to end: build the instruction, invoke
// the reviewer CLI, parse its response.
func (d *Dispatcher) reviewProfile(ctx context.Context, profileID, plan string) domain.ReviewOutcome {
	start := time.Now()
	outcome := domain.ReviewOutcome{Profile: profileID}

	instruction, err := BuildInstruction(profileID, d.config.Level, d.config.PromptDir)
	if err != nil {
		outcome.Err = err.Error()
		outcome.Elapsed = time.Since(start)
		return outcome
	}

	callCtx := ctx
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	result, err := d.invoker.Invoke(callCtx, instruction, plan)
	outcome.Elapsed = time.Since(start)
	if err != nil {
		if errors.Is(err, invoker.ErrTimeout) {
			outcome.TimedOut = true
			outcome.Err = fmt.Sprintf("timed out after %s", terminal.FormatDuration(d.config.Timeout))
		} else {
			outcome.Err = err.Error()
		}
		return outcome
	}

	outcome.RawResponse = result.Stdout
	parsed, err := parse.Parse(result.Stdout)
	if err != nil {
		outcome.Err = fmt.Sprintf("unparseable response: %v", err)
		return outcome
	}

	for i := range parsed.Findings {
		parsed.Findings[i].Source = profileID
	}
	outcome.Findings = parsed.Findings
	return outcome
}
