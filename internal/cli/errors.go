// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for the installer commands.
//
// Command handlers always return errors and never call os.Exit. Main turns
// the returned error into a message and an exit code.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ziggornif/appimage-installer/internal/config"
	"github.com/ziggornif/appimage-installer/internal/desktop"
	"github.com/ziggornif/appimage-installer/internal/installer"
	"github.com/ziggornif/appimage-installer/internal/prompt"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess covers success and a user-declined replacement
	ExitSuccess = 0
	// ExitGeneralError covers validation and file system failures
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitInterrupted is used when a prompt is aborted with Ctrl+C
	ExitInterrupted = 130
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError is a malformed command line.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

// ExitError carries an explicit exit code. Shown is set when the user has
// already been told what happened, so main prints nothing more.
type ExitError struct {
	Code  int
	Err   error
	Shown bool
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

// shown wraps err for an exit after a user-facing message was printed.
func shown(code int, err error) error {
	return &ExitError{Code: code, Err: err, Shown: true}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error returned by a command.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var usageErr *UsageError
	switch {
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalid):
		return ExitUsageError
	case errors.Is(err, prompt.ErrAborted):
		return ExitInterrupted
	case errors.Is(err, installer.ErrDeclined), errors.Is(err, desktop.ErrKept):
		return ExitSuccess
	}
	// Invalid input, existing descriptor, missing input and I/O failures
	return ExitGeneralError
}

// DisplayError writes err to w unless it was already shown to the user.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && (exitErr.Shown || exitErr.Err == nil) {
		return
	}
	if GetExitCode(err) == ExitSuccess {
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, DimStyle.Render("Run 'appimage-installer help' for usage."))
	}
}
