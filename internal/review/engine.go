// Package review orchestrates a full plan review: profile routing,
// sensitivity classification, concurrent reviewer dispatch, aggregation,
// and loop detection across iterations.
package review

import (
	"context"
	"strings"
	"time"

	"github.com/fandolabs/planreview/internal/aggregate"
	"github.com/fandolabs/planreview/internal/converge"
	"github.com/fandolabs/planreview/internal/dispatch"
	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/profile"
	"github.com/fandolabs/planreview/internal/terminal"
)

// Options configures a review Engine.
type Options struct {
	// MinMatches is the keyword threshold for profile routing.
	MinMatches int

	// Profiles, when non-empty, bypasses routing and runs exactly these.
	Profiles []string

	// SecurityLevel, when non-empty, bypasses sensitivity detection.
	SecurityLevel string

	// Timeout bounds each reviewer call.
	Timeout time.Duration

	// Concurrency caps simultaneous reviewer calls. Zero means unbounded.
	Concurrency int

	// PromptDir overrides built-in reviewer instructions.
	PromptDir string

	// Verbose enables per-reviewer progress logging.
	Verbose bool
}

// Engine runs review iterations and tracks convergence across them.
type Engine struct {
	opts    Options
	invoker invoker.Invoker
	logger  *terminal.Logger
	history converge.History
}

// NewEngine creates an Engine.
func NewEngine(opts Options, inv invoker.Invoker, logger *terminal.Logger) *Engine {
	if logger == nil {
		logger = terminal.NewLogger()
	}
	return &Engine{opts: opts, invoker: inv, logger: logger}
}

// IterationResult holds everything produced by one review iteration.
type IterationResult struct {
	Routing *profile.Detection
	Level   *profile.LevelDetection
	Report  *domain.AggregatedReport
	Loop    *converge.Signal
	Elapsed time.Duration
}

// ShouldStop reports whether iteration can end: no outstanding findings, or
// reviewers repeating themselves.
func (r *IterationResult) ShouldStop() bool {
	if r.Loop != nil && r.Loop.Repeating {
		return true
	}
	return !r.Report.Outstanding
}

// Review runs one full iteration over the plan. Routing and sensitivity run
// fresh each call so plan edits between iterations take effect; convergence
// history carries across calls.
func (e *Engine) Review(ctx context.Context, plan string) (*IterationResult, error) {
	if strings.TrimSpace(plan) == "" {
		return nil, profile.ErrEmptyPlan
	}

	result := &IterationResult{}

	if len(e.opts.Profiles) > 0 {
		result.Routing = &profile.Detection{
			Profiles: e.opts.Profiles,
			Summary:  "Profiles selected explicitly",
		}
	} else {
		routing, err := profile.Detect(plan, e.opts.MinMatches)
		if err != nil {
			return nil, err
		}
		result.Routing = routing
	}

	profiles := result.Routing.Profiles
	if len(profiles) == 0 {
		profiles = []string{profile.GenericID}
	}

	if e.opts.SecurityLevel != "" {
		level := profile.Level(e.opts.SecurityLevel)
		result.Level = &profile.LevelDetection{
			Level:       level,
			Confidence:  1.0,
			Description: profile.LevelDescription(level),
		}
	} else {
		result.Level = profile.DetectLevel(plan)
	}

	e.logger.Logf(terminal.StyleInfo, "%s", result.Routing.Summary)
	e.logger.Logf(terminal.StyleDim, "security level: %s (confidence %.2f)",
		result.Level.Level, result.Level.Confidence)

	dispatcher, err := dispatch.New(dispatch.Config{
		Timeout:     e.opts.Timeout,
		Concurrency: e.opts.Concurrency,
		Level:       result.Level.Level,
		PromptDir:   e.opts.PromptDir,
		Verbose:     e.opts.Verbose,
	}, e.invoker, e.logger)
	if err != nil {
		return nil, err
	}

	outcomes, elapsed := dispatcher.Run(ctx, plan, profiles)
	result.Elapsed = elapsed
	result.Report = aggregate.Aggregate(outcomes)

	// Compare against prior iterations before recording this one.
	result.Loop = e.history.Detect(result.Report)
	e.history.Push(result.Report)

	if result.Loop != nil && result.Loop.Repeating {
		e.logger.Log(result.Loop.Message, terminal.StyleWarning)
	}

	return result, nil
}
