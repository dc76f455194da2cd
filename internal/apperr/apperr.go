// Package apperr defines the error kinds shared by the nearby services core
// and the HTTP layer that maps them to status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks bad or missing coordinates and non-positive radii
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUpstreamUnavailable marks transport failures and timeouts; safe to retry
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamError marks a non-success status from the provider
	ErrUpstreamError = errors.New("upstream error")
	// ErrUpstreamMalformedResponse marks a success status with an unparsable body
	ErrUpstreamMalformedResponse = errors.New("upstream malformed response")
	// ErrInternal is the catch-all for unexpected failures
	ErrInternal = errors.New("internal error")
)

// UpstreamStatusError carries the provider's HTTP status for diagnostics
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUpstreamError) match any status error
func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamError
}

// Invalid wraps a validation message as ErrInvalidRequest
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
