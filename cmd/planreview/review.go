package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/config"
	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/profile"
	"github.com/fandolabs/planreview/internal/review"
	"github.com/fandolabs/planreview/internal/terminal"
)

const configFileHint = config.ConfigFileName

// reviewOptions holds root command flag values.
type reviewOptions struct {
	minMatches    int
	profiles      []string
	securityLevel string
	timeout       time.Duration
	concurrency   int
	reviewerCmd   string
	promptDir     string
	format        string
	iterations    int
	verbose       bool
	noConfig      bool
}

// resolveConfig merges the config file, environment, and flags.
func resolveConfig(cmd *cobra.Command, opts *reviewOptions, logger *terminal.Logger) (config.ResolvedConfig, error) {
	cfg := &config.Config{}
	if !opts.noConfig {
		dir, err := os.Getwd()
		if err != nil {
			return config.ResolvedConfig{}, err
		}
		cfg, err = config.Load(dir, logger)
		if err != nil {
			return config.ResolvedConfig{}, err
		}
	}

	flags := config.FlagState{
		ReviewerCommand: cmd.Flags().Changed("reviewer-cmd"),
		Timeout:         cmd.Flags().Changed("timeout"),
		Concurrency:     cmd.Flags().Changed("concurrency"),
		MinMatches:      cmd.Flags().Changed("min-matches"),
		SecurityLevel:   cmd.Flags().Changed("security-level"),
		Profiles:        cmd.Flags().Changed("profiles"),
		PromptDir:       cmd.Flags().Changed("prompt-dir"),
		Iterations:      cmd.Flags().Changed("iterations"),
	}
	values := config.ResolvedConfig{
		ReviewerCommand: opts.reviewerCmd,
		Timeout:         opts.timeout,
		Concurrency:     opts.concurrency,
		MinMatches:      opts.minMatches,
		SecurityLevel:   opts.securityLevel,
		Profiles:        opts.profiles,
		PromptDir:       opts.promptDir,
		Iterations:      opts.iterations,
	}

	resolved := config.Resolve(cfg, config.LoadEnvState(), flags, values)

	if resolved.SecurityLevel != "" && !profile.ValidLevel(resolved.SecurityLevel) {
		return resolved, fmt.Errorf("unknown security level %q", resolved.SecurityLevel)
	}
	if err := config.ValidateProfiles(resolved.Profiles); err != nil {
		return resolved, err
	}
	if resolved.Timeout <= 0 {
		return resolved, fmt.Errorf("timeout must be positive")
	}
	if resolved.Iterations < 1 {
		resolved.Iterations = 1
	}
	return resolved, nil
}

func runReview(cmd *cobra.Command, opts *reviewOptions, planPath string) error {
	logger := terminal.NewLogger()

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q: use text or json", opts.format)
	}

	resolved, err := resolveConfig(cmd, opts, logger)
	if err != nil {
		return err
	}

	inv, err := invoker.NewCommand(resolved.ReviewerCommand)
	if err != nil {
		return err
	}
	if err := inv.IsAvailable(); err != nil {
		return err
	}

	engine := review.NewEngine(review.Options{
		MinMatches:    resolved.MinMatches,
		Profiles:      resolved.Profiles,
		SecurityLevel: resolved.SecurityLevel,
		Timeout:       resolved.Timeout,
		Concurrency:   resolved.Concurrency,
		PromptDir:     resolved.PromptDir,
		Verbose:       opts.verbose,
	}, inv, logger)

	plan, fromStdin, err := readPlan(planPath)
	if err != nil {
		return err
	}

	iterations := resolved.Iterations
	if fromStdin && iterations > 1 {
		logger.Log("plan read from stdin, running a single iteration", terminal.StyleWarning)
		iterations = 1
	}

	var last *review.IterationResult
	for i := 1; i <= iterations; i++ {
		if i > 1 {
			// Pick up edits made between iterations.
			plan, _, err = readPlan(planPath)
			if err != nil {
				return err
			}
		}

		if iterations > 1 {
			logger.Logf(terminal.StyleInfo, "iteration %d of %d", i, iterations)
		}

		result, err := engine.Review(cmd.Context(), plan)
		if err != nil {
			return err
		}
		last = result

		if opts.format == "json" {
			if err := review.EncodeReport(os.Stdout, result.Report); err != nil {
				return err
			}
		} else {
			review.RenderText(os.Stdout, result)
		}

		if result.ShouldStop() {
			break
		}
		if i < iterations && !promptContinue(logger) {
			break
		}
	}

	if last == nil {
		return exitCode(domain.ExitError)
	}
	if last.Report.AllFailed() {
		logger.Log("every reviewer failed; no findings were collected", terminal.StyleWarning)
	}
	return finalExit(last.Report)
}

// finalExit maps the last iteration's report to the process exit status.
// The exit code follows the outstanding-issues determination alone:
// reviewer failures surface in the report but never change the code.
func finalExit(report *domain.AggregatedReport) error {
	if report.Outstanding {
		return exitCode(domain.ExitOutstanding)
	}
	return nil
}

// promptContinue asks whether to run another iteration. Non-interactive
// sessions continue automatically.
func promptContinue(logger *terminal.Logger) bool {
	if !terminal.IsStderrTTY() {
		return true
	}

	fmt.Fprint(os.Stderr, "Update the plan, then press Enter to re-review (q to stop): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	if strings.TrimSpace(strings.ToLower(line)) == "q" {
		logger.Log("stopping at user request", terminal.StyleDim)
		return false
	}
	return true
}
