package domain

// ExitCode represents the exit status of the review run.
type ExitCode int

const (
	// ExitClean indicates the run finished with no outstanding HIGH/MEDIUM findings.
	ExitClean ExitCode = 0
	// ExitOutstanding indicates HIGH or MEDIUM findings remain.
	ExitOutstanding ExitCode = 1
	// ExitError indicates the run failed due to an error.
	ExitError ExitCode = 2
	// ExitInterrupted indicates the run was interrupted by a signal.
	ExitInterrupted ExitCode = 130
)

// Int returns the exit code as an int for use with os.Exit.
func (e ExitCode) Int() int {
	return int(e)
}
