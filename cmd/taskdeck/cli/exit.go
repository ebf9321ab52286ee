// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error line.
// The main function checks for the ExitCode method on returned errors
// and exits silently with that code; the command is expected to have
// already written its own output. Used where non-zero is a valid
// outcome rather than a failure to report, such as "task get" on a
// missing id after the lookup message has been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the process exit code for this error.
func (e *ExitError) ExitCode() int {
	return e.Code
}
