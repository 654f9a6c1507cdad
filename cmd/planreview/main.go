// Command planreview routes an implementation plan to specialist reviewers,
// runs them concurrently through a reviewer CLI, and aggregates their
// findings into a single report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/terminal"
)

var version = "dev"

func main() {
	if !terminal.IsStderrTTY() && !terminal.IsStdoutTTY() {
		terminal.DisableColors()
	}
	if os.Getenv("NO_COLOR") != "" {
		terminal.DisableColors()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetContext(ctx)

	err := root.Execute()
	if err == nil {
		return
	}

	var coded *exitCodeError
	if errors.As(err, &coded) {
		if coded.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", coded.err)
		}
		os.Exit(coded.code.Int())
	}

	if ctx.Err() != nil {
		os.Exit(domain.ExitInterrupted.Int())
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(domain.ExitError.Int())
}

func newRootCmd() *cobra.Command {
	opts := &reviewOptions{}

	cmd := &cobra.Command{
		Use:   "planreview [plan-file]",
		Short: "Multi-reviewer convergence engine for implementation plans",
		Long: `planreview dispatches an implementation plan to specialist reviewer
profiles (security, frontend, data, api, devops, performance) selected by
keyword routing, runs them concurrently through a reviewer CLI, and merges
their findings into one report with duplicate counting and conflict
detection.

The plan is read from the named file, or from stdin when no file is given.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			planPath := ""
			if len(args) > 0 {
				planPath = args[0]
			}
			return runReview(cmd, opts, planPath)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&opts.minMatches, "min-matches", 0, "distinct keyword matches required to select a profile")
	fl.StringSliceVar(&opts.profiles, "profiles", nil, "run exactly these profiles, bypassing routing")
	fl.StringVar(&opts.securityLevel, "security-level", "", "override sensitivity detection (personal, internal, public, enterprise)")
	fl.DurationVar(&opts.timeout, "timeout", 0, "per-reviewer timeout")
	fl.IntVar(&opts.concurrency, "concurrency", 0, "maximum concurrent reviewers (0 = one per profile)")
	fl.StringVar(&opts.reviewerCmd, "reviewer-cmd", "", "reviewer command line (default \"codex exec -\")")
	fl.StringVar(&opts.promptDir, "prompt-dir", "", "directory of per-profile prompt overrides")
	fl.StringVar(&opts.format, "format", "text", "output format: text or json")
	fl.IntVar(&opts.iterations, "iterations", 0, "maximum review iterations over the plan file")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-reviewer progress")
	fl.BoolVar(&opts.noConfig, "no-config", false, "ignore "+configFileHint)

	cmd.AddCommand(newRouteCmd())
	cmd.AddCommand(newLevelCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}
