// Package invoker wraps the external reviewer mechanism: an opaque CLI that
// accepts a prompt and plan text on stdin and returns free-form review text.
package invoker

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates the reviewer command cannot be invoked.
	ErrUnavailable = errors.New("reviewer command not available")
	// ErrTimeout indicates a reviewer call exceeded its per-call timeout.
	ErrTimeout = errors.New("reviewer call timed out")
)

// Result holds the raw output of one reviewer invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Invoker is the black-box contract for one reviewer call. Implementations
// must honor context cancellation; the dispatcher applies a per-call timeout
// via the context.
type Invoker interface {
	// Name returns the invoker's identifier for logs and reports.
	Name() string

	// IsAvailable checks that the reviewer mechanism can be invoked.
	IsAvailable() error

	// Invoke sends the instruction and plan to the reviewer and returns its
	// raw output. Non-zero exit, missing command, and timeout are returned
	// as errors wrapping ErrUnavailable or ErrTimeout where applicable.
	Invoke(ctx context.Context, instruction, plan string) (*Result, error)
}

// planHeading separates the review instruction from the plan content in the
// combined prompt sent to the reviewer.
const planHeading = "\n\n## Plan to Review\n\n"

// FullPrompt combines a review instruction and plan text into the single
// prompt the reviewer receives on stdin.
func FullPrompt(instruction, plan string) string {
	return instruction + planHeading + plan
}
