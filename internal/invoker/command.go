package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// DefaultCommand is the reviewer CLI invoked when none is configured.
// The trailing "-" makes codex read the prompt from stdin.
const DefaultCommand = "codex exec -"

// Command invokes an external reviewer CLI as a subprocess, passing the
// combined prompt on stdin and capturing stdout/stderr.
type Command struct {
	path string
	args []string
}

// NewCommand creates a Command from a shell-style command line, e.g.
// "codex exec -". Splitting is on whitespace only; quoting is not supported.
func NewCommand(commandLine string) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty reviewer command")
	}
	return &Command{path: fields[0], args: fields[1:]}, nil
}

// Name returns the executable name of the reviewer command.
func (c *Command) Name() string {
	return c.path
}

// IsAvailable checks that the reviewer executable is on PATH.
func (c *Command) IsAvailable() error {
	if _, err := exec.LookPath(c.path); err != nil {
		return fmt.Errorf("%w: %q not found in PATH", ErrUnavailable, c.path)
	}
	return nil
}

// Invoke runs the reviewer command with the combined prompt on stdin.
// The caller bounds the call with a context deadline; a deadline hit is
// returned wrapping ErrTimeout, a missing executable wrapping
// ErrUnavailable, and a non-zero exit as a plain error carrying stderr.
func (c *Command) Invoke(ctx context.Context, instruction, plan string) (*Result, error) {
	// #nosec G204 - the command comes from trusted configuration, not from
	// reviewer output or plan content.
	cmd := exec.CommandContext(ctx, c.path, c.args...)
	cmd.Stdin = strings.NewReader(FullPrompt(instruction, plan))

	// Set process group so timeouts kill the whole reviewer process tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.ExitCode = -1
			return result, ErrTimeout
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("reviewer exited with code %d: %s",
				result.ExitCode, strings.TrimSpace(result.Stderr))
		}
		result.ExitCode = -1
		return result, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return result, nil
}
