// Package usecase implements the fixed-window rate limit check against a
// durable counter store.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/subtrack/internal/ratelimit/domain"
)

// CounterRepository defines the interface for rate limit counter persistence.
type CounterRepository interface {
	// Get returns the counter for a key, or apperrors.ErrNotFound when the key
	// has never been seen.
	Get(ctx context.Context, key string) (*domain.Counter, error)
	// Upsert creates or replaces the counter row for its key.
	Upsert(ctx context.Context, counter *domain.Counter) error
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// UseCase defines the interface for rate limit checks.
type UseCase interface {
	// Check applies the fixed-window algorithm for one request and persists
	// the updated counter when the request is allowed.
	Check(ctx context.Context, op domain.Operation, identifier string) (domain.Result, error)
}

// realClock implements Clock with the system time.
type realClock struct{}

// Now returns the current UTC time.
func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return realClock{}
}
