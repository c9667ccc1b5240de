package client

import (
	"net/http"

	apierrors "github.com/42tr/venus/client/internal/errors"
)

// APIError is returned when the backend answers with a non-2xx status.
// StatusCode and Body are exactly what the backend sent.
type APIError = apierrors.APIError

// IsStatus reports whether err carries the HTTP status code.
func IsStatus(err error, code int) bool { return apierrors.StatusCodeOf(err) == code }

// IsUnauthorized reports whether the backend rejected the credentials.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }
