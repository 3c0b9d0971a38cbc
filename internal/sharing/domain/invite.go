package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/subtrack/internal/errors"
)

// DefaultInviteExpiryDays is the invite lifetime when the owner does not pick one.
const DefaultInviteExpiryDays = 7

// inviteTokenBytes is the entropy of an invite token before encoding.
// 256 bits makes token collision and guessing astronomically improbable,
// which is the only uniqueness guarantee invites rely on.
const inviteTokenBytes = 32

// ShareInvite is a claimable capability for joining a shared subscription.
//
// Lifecycle: Pending (ClaimedBy unset, ExpiresAt in the future) transitions to
// Claimed exactly once when ClaimedBy is set. Expiry is detected lazily at
// read or claim time, never by a background sweep. Revocation is a hard delete.
type ShareInvite struct {
	// ID is the unique identifier for this invite.
	ID uuid.UUID
	// SubscriptionID references the subscription being shared.
	SubscriptionID uuid.UUID
	// Token is the URL-safe capability string embedded in the invite link.
	Token string
	// ExpiresAt is when the invite stops being claimable.
	ExpiresAt time.Time
	// ClaimedBy is the user ID of the claimer, nil while pending.
	ClaimedBy *string
	// CreatedAt is the UTC timestamp when the invite was created.
	CreatedAt time.Time
}

// NewInviteToken generates a fresh invite token from 32 bytes of
// cryptographically secure randomness, URL-safe base64 encoded without
// padding so it is usable as a URL path segment without escaping.
func NewInviteToken() (string, error) {
	raw := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", apperrors.Wrap(err, "failed to generate invite token")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
