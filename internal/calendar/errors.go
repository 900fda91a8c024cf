package calendar

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// APIError wraps a Google Calendar API failure with the operation and the
// calendar it hit, so the report can say which query aborted the run.
type APIError struct {
	Operation  string // API operation (list, get)
	CalendarID string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calendar %s failed for %s: %v", e.Operation, e.CalendarID, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError wraps an API failure.
func NewAPIError(operation, calendarID string, err error) *APIError {
	return &APIError{
		Operation:  operation,
		CalendarID: calendarID,
		Err:        err,
	}
}

// StatusCode returns the HTTP status of the wrapped API error, or 0 when the
// failure never reached the API (network errors, context cancellation).
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsNotFound reports whether the error is a 404 from the API, which for
// calendar list lookups means the calendar does not exist or the account is
// not subscribed to it.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}

// IsPermissionDenied reports whether the error is a 403 from the API,
// meaning the calendar exists but the account has no access to it.
func IsPermissionDenied(err error) bool {
	return StatusCode(err) == 403
}
