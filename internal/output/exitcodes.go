package output

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitRenderError = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem with the command line or its input.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorWithCause reports a user error caused by err, keeping err in
// the chain.
func NewUserErrorWithCause(message string, err error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message + ": " + err.Error(), Cause: err}
}

// NewSystemError reports a failure of the environment, such as an
// unreadable file.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause reports a system error caused by err.
func NewSystemErrorWithCause(message string, err error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message + ": " + err.Error(), Cause: err}
}

// NewRenderError reports that failed of total blocks rendered their error
// state instead of cards.
func NewRenderError(failed, total int) *ExitError {
	noun := "blocks"
	if total == 1 {
		noun = "block"
	}
	return &ExitError{
		Code:    ExitRenderError,
		Message: fmt.Sprintf("%d of %d %s failed to render", failed, total, noun),
	}
}

// GetExitCode extracts the exit code from an error. Errors that carry no
// code are user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
