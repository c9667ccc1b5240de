// Package errors defines the error returned when the backend answers with a
// non-success status. The client never interprets the status; it only keeps
// it, together with the body, for the caller.
package errors

import (
	"errors"
	"fmt"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Op         string // client operation, e.g. "get project"
	Method     string
	URL        string
	StatusCode int
	Status     string // status line as received, e.g. "404 Not Found"
	Body       []byte // response body, unmodified
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("%s: %s %s: HTTP %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s %s: HTTP %d", e.Op, e.Method, e.URL, e.StatusCode)
}

// StatusCodeOf returns the HTTP status carried by err, or 0 when err is not
// (and does not wrap) an *APIError.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
