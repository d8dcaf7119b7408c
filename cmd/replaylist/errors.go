package replaylist

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tsahi-Elkayam/replaylist/pkg/posthog"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError is returned when the command line is invalid. Nothing has been
// sent to PostHog when it occurs.
type UsageError struct {
	Command string
	Err     error
}

// Error implements the error interface
func (e *UsageError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a usage error for cmd
func NewUsageError(cmd *cobra.Command, err error) *UsageError {
	return &UsageError{
		Command: cmd.CommandPath(),
		Err:     err,
	}
}

// IsUsageError checks if an error is a usage error
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// ReportError writes err to w and returns the process exit code for it
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(w, "Error: %s\n", usageErr.Err)
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", usageErr.Command)
		return ExitUsage
	}

	if apiErr, ok := posthog.IsAPIError(err); ok {
		fmt.Fprintf(w, "Error: %d - %s\n", apiErr.StatusCode, apiErr.Body)
		if posthog.IsAuthenticationError(err) {
			fmt.Fprintf(w, "Check that the personal API key is valid and has the session_recording_playlist:write scope.\n")
		}
		return ExitError
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitError
}
