package cmd

import (
	"errors"
	"fmt"
)

const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitUnknownUpstream = 2
)

// ExitError carries the process exit code back to main. A nil Err means the
// command already wrote its own message to stderr.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
