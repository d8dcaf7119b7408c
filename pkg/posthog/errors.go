package posthog

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the client has no API key or project
var ErrMissingCredentials = errors.New("posthog api key and project id are required")

// APIError is returned when PostHog answers with a non-2xx status
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("posthog %s returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// NewAPIError creates a new API error
func NewAPIError(operation string, statusCode int, body string) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
	}
}

// IsAPIError checks if an error is an API error and returns it
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthenticationError checks if PostHog rejected the API key
func IsAuthenticationError(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
