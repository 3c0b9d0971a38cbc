// Package domain contains the core entities for per-user credentials and
// profile settings.
package domain

import (
	"time"
)

// UserSettings holds a user's profile and encrypted credentials.
//
// The user ID comes from the external identity provider, so this table is the
// only per-user state the service owns. The API key is stored as an envelope
// encrypted blob and never persisted in plaintext.
type UserSettings struct {
	// UserID is the stable identifier issued by the identity provider.
	UserID string
	// DisplayName is the name shown to beneficiaries of this user's shares.
	// Empty when the user never set one.
	DisplayName string
	// EncryptedAPIKey is the envelope encrypted API key blob.
	// Empty when the user never stored a key.
	EncryptedAPIKey string
	// UpdatedAt is the UTC timestamp of the last settings change.
	UpdatedAt time.Time
}
