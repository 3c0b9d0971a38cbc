package usecase

import (
	"context"
	"errors"
	"time"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	cryptoService "github.com/allisson/subtrack/internal/crypto/service"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

// credentialsUseCase implements the CredentialsUseCase interface.
type credentialsUseCase struct {
	settingsRepo SettingsRepository
	cipher       cryptoService.Cipher
}

// NewCredentialsUseCase creates a new credentials use case with required dependencies.
func NewCredentialsUseCase(
	settingsRepo SettingsRepository,
	cipher cryptoService.Cipher,
) CredentialsUseCase {
	return &credentialsUseCase{
		settingsRepo: settingsRepo,
		cipher:       cipher,
	}
}

// loadOrInit returns the user's settings row, or a zero row when none exists.
func (u *credentialsUseCase) loadOrInit(
	ctx context.Context,
	userID string,
) (*credentialsDomain.UserSettings, error) {
	settings, err := u.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &credentialsDomain.UserSettings{UserID: userID}, nil
		}
		return nil, err
	}
	return settings, nil
}

// SetAPIKey encrypts the API key under the current key and stores it,
// preserving the user's display name.
func (u *credentialsUseCase) SetAPIKey(ctx context.Context, userID string, apiKey string) error {
	if apiKey == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "api key is required")
	}

	settings, err := u.loadOrInit(ctx, userID)
	if err != nil {
		return err
	}

	blob, err := u.cipher.Encrypt([]byte(apiKey))
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt api key")
	}

	settings.EncryptedAPIKey = blob
	settings.UpdatedAt = time.Now().UTC()

	return u.settingsRepo.Upsert(ctx, settings)
}

// GetAPIKey decrypts and returns the stored API key.
//
// Blobs written under the previous key, or predating blob versioning, are
// re-encrypted under the current key and persisted before the plaintext is
// returned. Rotation therefore completes one read at a time with no bulk
// migration. Decryption failures are surfaced, never masked as not found.
func (u *credentialsUseCase) GetAPIKey(ctx context.Context, userID string) (string, error) {
	settings, err := u.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if settings.EncryptedAPIKey == "" {
		return "", apperrors.ErrNotFound
	}

	if u.cipher.NeedsReEncryption(settings.EncryptedAPIKey) {
		blob, err := u.cipher.ReEncrypt(settings.EncryptedAPIKey)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to re-encrypt api key")
		}
		settings.EncryptedAPIKey = blob
		settings.UpdatedAt = time.Now().UTC()
		if err := u.settingsRepo.Upsert(ctx, settings); err != nil {
			return "", err
		}
	}

	plaintext, err := u.cipher.Decrypt(settings.EncryptedAPIKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decrypt api key")
	}

	return string(plaintext), nil
}

// SetDisplayName stores the user's display name, preserving the stored API key.
func (u *credentialsUseCase) SetDisplayName(ctx context.Context, userID string, displayName string) error {
	if displayName == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "display name is required")
	}

	settings, err := u.loadOrInit(ctx, userID)
	if err != nil {
		return err
	}

	settings.DisplayName = displayName
	settings.UpdatedAt = time.Now().UTC()

	return u.settingsRepo.Upsert(ctx, settings)
}

// GetDisplayName returns the user's display name.
// A settings row without a name reports ErrNotFound, same as no row at all.
func (u *credentialsUseCase) GetDisplayName(ctx context.Context, userID string) (string, error) {
	settings, err := u.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if settings.DisplayName == "" {
		return "", apperrors.ErrNotFound
	}
	return settings.DisplayName, nil
}

// GetSettings returns the user's settings row, or a zero row when none exists.
func (u *credentialsUseCase) GetSettings(
	ctx context.Context,
	userID string,
) (*credentialsDomain.UserSettings, error) {
	return u.loadOrInit(ctx, userID)
}
