package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1 // runtime error: storage, I/O
	ExitUsage   = 2 // bad arguments, blank input, unknown ref or filter
)

// ExitError carries an exit code. An empty Message means the command already
// reported the problem.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

var usageSentinels = []error{
	model.ErrBlank,
	model.ErrListNotFound,
	model.ErrItemNotFound,
	model.ErrDuplicateID,
	route.ErrUnknownFilter,
	route.ErrBadRoute,
}

// GetExitCode maps err to an exit code. Input mistakes are usage errors;
// anything else is a failure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	for _, s := range usageSentinels {
		if errors.Is(err, s) {
			return ExitUsage
		}
	}
	if strings.HasPrefix(err.Error(), "unknown command") || strings.HasPrefix(err.Error(), "unknown flag") {
		return ExitUsage
	}
	return ExitFailure
}
