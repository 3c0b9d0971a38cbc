package usecase

import (
	"context"
	"errors"

	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/ratelimit/domain"
)

// rateLimitUseCase implements the UseCase interface.
type rateLimitUseCase struct {
	counterRepo CounterRepository
	clock       Clock
}

// Check applies the fixed-window rate limit for one request.
//
// The counter is read, reset if its window has lapsed, and written back
// incremented when the request is allowed. The read-modify-write pair is not
// locked: two concurrent requests for the same key can both observe the same
// count and under-count by one. The limiter is advisory, so this race is
// tolerated rather than serialized.
func (u *rateLimitUseCase) Check(
	ctx context.Context,
	op domain.Operation,
	identifier string,
) (domain.Result, error) {
	cfg, ok := domain.ConfigFor(op)
	if !ok {
		return domain.Result{}, domain.ErrUnknownOperation
	}

	key := domain.Key(op, identifier)
	now := u.clock.Now()

	counter, err := u.counterRepo.Get(ctx, key)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Result{}, err
	}

	// Missing or lapsed windows count as a fresh window starting now.
	windowStart := now
	count := 0
	if counter != nil && counter.WindowStart.After(now.Add(-cfg.Window)) {
		windowStart = counter.WindowStart
		count = counter.Count
	}

	resetAt := windowStart.Add(cfg.Window)

	if count >= cfg.MaxRequests {
		return domain.Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   resetAt,
		}, nil
	}

	count++
	if err := u.counterRepo.Upsert(ctx, &domain.Counter{
		Key:         key,
		WindowStart: windowStart,
		Count:       count,
	}); err != nil {
		return domain.Result{}, err
	}

	return domain.Result{
		Allowed:   true,
		Remaining: cfg.MaxRequests - count,
		ResetAt:   resetAt,
	}, nil
}

// NewRateLimitUseCase creates a rate limit use case with the provided dependencies.
func NewRateLimitUseCase(counterRepo CounterRepository, clock Clock) UseCase {
	return &rateLimitUseCase{
		counterRepo: counterRepo,
		clock:       clock,
	}
}
