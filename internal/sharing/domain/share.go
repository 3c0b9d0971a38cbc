// Package domain defines the core domain models for subscription sharing.
// Sharing is capability based: an owner either records an anonymous
// beneficiary directly or hands out a claimable invite token.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareType distinguishes registered-user shares from name-only entries.
type ShareType string

// Recognized share types.
const (
	// ShareTypeUser is a share claimed by a registered user via an invite.
	ShareTypeUser ShareType = "user"
	// ShareTypeAnonymous is a share the owner created directly for someone
	// tracked by name only, with no application account.
	ShareTypeAnonymous ShareType = "anonymous"
)

// SubscriptionShare represents one beneficiary of a shared subscription.
//
// Invariant: a "user" share has UserID set and no Name; an "anonymous" share
// has Name set and no UserID. At most one "user" share exists per
// (subscription, user) pair.
type SubscriptionShare struct {
	// ID is the unique identifier for this share.
	ID uuid.UUID
	// SubscriptionID references the parent subscription.
	SubscriptionID uuid.UUID
	// Type is "user" or "anonymous".
	Type ShareType
	// UserID is the beneficiary's stable user identifier (user shares only).
	UserID *string
	// Name is the display name of an anonymous beneficiary.
	Name *string
	// IsHidden suppresses the share from the beneficiary's own cost overview.
	// Mutable only by the beneficiary, defaults to false.
	IsHidden bool
	// CreatedAt is the UTC timestamp when the share was created.
	CreatedAt time.Time
}
