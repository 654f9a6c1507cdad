package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fandolabs/planreview/internal/domain"
)

// exitCodeError carries a specific exit code through cobra's error path.
type exitCodeError struct {
	code domain.ExitCode
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

// exitCode returns a silent error that maps to the given exit code.
func exitCode(code domain.ExitCode) error {
	return &exitCodeError{code: code}
}

// readPlan reads the plan from the named file, or from stdin when path is
// empty or "-". The second return value is true when stdin was used.
func readPlan(path string) (string, bool, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", true, fmt.Errorf("reading plan from stdin: %w", err)
		}
		return string(data), true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading plan: %w", err)
	}
	return string(data), false, nil
}
