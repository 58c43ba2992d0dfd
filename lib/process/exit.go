// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"os"
)

const (
	// ExitSuccess is returned when the requested work completed.
	ExitSuccess = 0

	// ExitFailure covers argument errors, privilege violations and
	// server construction failures.
	ExitFailure = 1

	// ExitAbort is 128+SIGABRT, the status a shell reports for a
	// process killed by abort(). Used when a launch precondition is
	// missing and nothing else can be trusted.
	ExitAbort = 134
)

// ExitError signals an exit with Code. The component that returns it
// has already written whatever the user needs to see, so the caller
// must not print the error string. Err, when set, names the cause for
// errors.Is matching.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an *ExitError with the given code and no cause.
func Exit(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitWith returns an *ExitError with the given code and cause.
func ExitWith(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode maps err to a process exit status: nil is success, anything
// implementing ExitCode() int reports its own code, and every other
// error is a plain failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}

// Fatal writes "error: err" to stderr and exits with code 1. Use it in
// main() for errors from run() where the structured logger may not be
// initialized.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(ExitFailure)
}
