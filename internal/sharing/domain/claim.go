package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClaimDenialReason is the closed set of reasons a preview or claim is refused.
//
// The strings are part of the JSON contract consumed by existing clients and
// must not be reworded.
type ClaimDenialReason string

// Denial reasons in deterministic check order: not found, already claimed,
// expired, subscription missing, then the claim-only self-share and duplicate
// checks.
const (
	ReasonInviteNotFound       ClaimDenialReason = "Invite not found"
	ReasonInviteAlreadyClaimed ClaimDenialReason = "Invite already claimed"
	ReasonInviteExpired        ClaimDenialReason = "Invite expired"
	ReasonSubscriptionMissing  ClaimDenialReason = "Subscription no longer exists"
	ReasonSelfShare            ClaimDenialReason = "You cannot share with yourself"
	ReasonAlreadyShared        ClaimDenialReason = "Already shared with you"
)

// InvitePreview is the read-only view of an invite shown to a prospective
// claimer before they authenticate.
type InvitePreview struct {
	// Valid reports whether the invite can still be claimed.
	Valid bool
	// Reason explains an invalid invite, empty when Valid.
	Reason ClaimDenialReason
	// SubscriptionName is the display name of the shared subscription.
	SubscriptionName string
	// OwnerName is the display name of the subscription owner.
	OwnerName string
	// Cost is the amount charged per billing cycle.
	Cost float64
	// Currency is the ISO 4217 code for Cost.
	Currency string
	// BillingCycle is the recurrence period of the subscription.
	BillingCycle string
	// MaxSlots is the seat cap, nil when the plan has no seat concept.
	MaxSlots *int
	// ExpiresAt is when the invite stops being claimable.
	ExpiresAt time.Time
}

// ClaimResult is the outcome of a claim attempt.
type ClaimResult struct {
	// Success reports whether the share was created.
	Success bool
	// Reason explains a failed claim, empty on success.
	Reason ClaimDenialReason
	// SubscriptionID is the joined subscription, set only on success.
	SubscriptionID uuid.UUID
}

// SharedSubscription is one row of a beneficiary's shared-with-me view:
// the share joined to its surviving parent subscription and owner name.
type SharedSubscription struct {
	// ShareID identifies the share row backing this entry.
	ShareID uuid.UUID
	// SubscriptionID references the parent subscription.
	SubscriptionID uuid.UUID
	// SubscriptionName is the display name of the subscription.
	SubscriptionName string
	// OwnerID is the stable user identifier of the subscription owner.
	OwnerID string
	// OwnerName is the owner's display name.
	OwnerName string
	// Cost is the amount charged per billing cycle.
	Cost float64
	// Currency is the ISO 4217 code for Cost.
	Currency string
	// BillingCycle is the recurrence period of the subscription.
	BillingCycle string
	// IsHidden reports whether the beneficiary suppressed this entry.
	IsHidden bool
	// CreatedAt is when the share was created.
	CreatedAt time.Time
}
