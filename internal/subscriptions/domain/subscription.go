// Package domain defines the core domain models for subscription tracking.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BillingCycle is the recurrence period of a subscription charge.
type BillingCycle string

// Recognized billing cycles.
const (
	BillingCycleWeekly  BillingCycle = "weekly"
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// KnownBillingCycle reports whether the value is a recognized billing cycle.
func KnownBillingCycle(cycle BillingCycle) bool {
	switch cycle {
	case BillingCycleWeekly, BillingCycleMonthly, BillingCycleYearly:
		return true
	default:
		return false
	}
}

// Subscription represents a recurring payment tracked by its owner.
type Subscription struct {
	// ID is the unique identifier for this subscription.
	ID uuid.UUID
	// OwnerID is the stable identifier of the user who created the subscription.
	// Identity comes from the external auth provider, so it is an opaque string.
	OwnerID string
	// Name is the display name (e.g., "Netflix Premium").
	Name string
	// Cost is the amount charged per billing cycle.
	Cost float64
	// Currency is the ISO 4217 code for Cost.
	Currency string
	// BillingCycle is the recurrence period.
	BillingCycle BillingCycle
	// MaxSlots caps the number of concurrent beneficiaries (owner included).
	// Nil means the plan has no seat concept.
	MaxSlots *int
	// CreatedAt is the UTC timestamp when the subscription was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time
}
