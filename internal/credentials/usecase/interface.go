// Package usecase implements business logic for user credentials and profile
// settings.
package usecase

import (
	"context"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
)

// SettingsRepository defines the interface for UserSettings persistence operations.
type SettingsRepository interface {
	// GetByUserID returns ErrNotFound when the user has no settings row.
	GetByUserID(ctx context.Context, userID string) (*credentialsDomain.UserSettings, error)
	Upsert(ctx context.Context, settings *credentialsDomain.UserSettings) error
}

// CredentialsUseCase defines the interface for settings operations.
//
// GetDisplayName also serves the sharing context, which resolves owner names
// through it when rendering invites and shared-with-me listings.
type CredentialsUseCase interface {
	// SetAPIKey encrypts and stores the user's API key.
	SetAPIKey(ctx context.Context, userID string, apiKey string) error
	// GetAPIKey decrypts and returns the stored API key. Blobs written under a
	// rotated-out key are re-encrypted and persisted before returning.
	GetAPIKey(ctx context.Context, userID string) (string, error)
	// SetDisplayName stores the user's display name.
	SetDisplayName(ctx context.Context, userID string, displayName string) error
	// GetDisplayName returns ErrNotFound when the user never set a name.
	GetDisplayName(ctx context.Context, userID string) (string, error)
	// GetSettings returns the user's profile view.
	GetSettings(ctx context.Context, userID string) (*credentialsDomain.UserSettings, error)
}
