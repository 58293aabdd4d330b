package cli

import (
	"errors"

	"github.com/yaklabco/wikitok/pkg/runner"
)

// Exit codes for wikitok.
const (
	// ExitSuccess indicates every file was parsed.
	ExitSuccess = 0

	// ExitFilesFailed indicates at least one file could not be parsed.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when one or more files could not be parsed.
// The per-file errors have already been reported.
var ErrFilesFailed = errors.New("some files could not be parsed")

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasErrors() {
		return ExitSuccess
	}
	return ExitFilesFailed
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrFilesFailed) {
		return ExitFilesFailed
	}
	// Flag parsing and argument errors come straight from cobra.
	return ExitInvalidUsage
}
