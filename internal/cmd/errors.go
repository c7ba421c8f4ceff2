package cmd

import "fmt"

// ExitCodeError carries a specific process exit code through the cobra
// error path. main maps it to os.Exit without printing anything beyond what
// the command already wrote.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError creates an error that requests the given exit code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

// Error returns a description of the exit code.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
