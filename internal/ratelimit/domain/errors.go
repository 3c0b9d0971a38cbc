package domain

import (
	"fmt"
	"time"

	"github.com/allisson/subtrack/internal/errors"
)

// ErrUnknownOperation indicates a rate limit check for an unrecognized
// operation class.
var ErrUnknownOperation = errors.Wrap(errors.ErrInvalidInput, "unknown rate limit operation")

// RateLimitError reports a denied request with machine-readable retry data.
//
// Callers surface this as a 429 response with a Retry-After header computed
// from ResetAt, never just the message string.
type RateLimitError struct {
	// ResetAt is when the current window ends and requests are allowed again.
	ResetAt time.Time
	// Remaining is the quota left in the window (always zero on denial).
	Remaining int
	// RetryAfter is the whole-second delay until ResetAt, rounded up.
	RetryAfter int
}

// NewRateLimitError builds a RateLimitError relative to the given current time.
func NewRateLimitError(resetAt time.Time, remaining int, now time.Time) *RateLimitError {
	retryAfter := int((resetAt.Sub(now) + time.Second - 1) / time.Second)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return &RateLimitError{
		ResetAt:    resetAt,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}
}

// Error returns a human-readable message stating the retry delay in whole seconds.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %d seconds", e.RetryAfter)
}

// Unwrap links the error into the domain taxonomy so handlers map it to 429.
func (e *RateLimitError) Unwrap() error {
	return errors.ErrRateLimited
}
