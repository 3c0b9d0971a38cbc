// Package domain defines core domain models for durable rate limiting.
//
// The limiter uses fixed, non-overlapping time windows backed by one persisted
// counter row per operation and principal. Bursts of up to twice the limit are
// possible across adjacent window boundaries; this is the accepted tradeoff
// for O(1) storage and O(1) checks versus a sliding log.
package domain

import (
	"time"
)

// Counter is the persisted request count for one rate limit key.
//
// The count is only meaningful within [WindowStart, WindowStart+Window);
// outside that interval the counter is treated as reset to zero. Rows are
// created lazily on first request and never deleted; stale rows are harmless
// and reset on next access.
type Counter struct {
	// Key is the composed "<operation>:<identifier>" counter key.
	Key string
	// WindowStart is the UTC start of the current counting window.
	WindowStart time.Time
	// Count is the number of requests observed in the current window.
	Count int
}

// Result is the outcome of a rate limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAt is when the current window ends and the counter resets.
	ResetAt time.Time
}
