package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	cryptoDomain "github.com/allisson/subtrack/internal/crypto/domain"
	cryptoService "github.com/allisson/subtrack/internal/crypto/service"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

// fakeSettingsRepository is an in-memory SettingsRepository.
type fakeSettingsRepository struct {
	settings map[string]*credentialsDomain.UserSettings
	upserts  int
}

func newFakeSettingsRepository() *fakeSettingsRepository {
	return &fakeSettingsRepository{settings: map[string]*credentialsDomain.UserSettings{}}
}

func (f *fakeSettingsRepository) GetByUserID(ctx context.Context, userID string) (*credentialsDomain.UserSettings, error) {
	settings, ok := f.settings[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *settings
	return &copied, nil
}

func (f *fakeSettingsRepository) Upsert(ctx context.Context, settings *credentialsDomain.UserSettings) error {
	f.upserts++
	copied := *settings
	f.settings[settings.UserID] = &copied
	return nil
}

func newTestKeychain(t *testing.T, current, previous string) *cryptoService.Keychain {
	t.Helper()

	keychain, err := cryptoService.NewKeychain(cryptoService.KeychainConfig{
		CurrentKey:  current,
		PreviousKey: previous,
	})
	require.NoError(t, err)
	return keychain
}

func TestCredentialsUseCase_APIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet_RoundTrip", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))

		// Act
		err := useCase.SetAPIKey(ctx, "user123", "sk-live-abc")
		require.NoError(t, err)
		apiKey, err := useCase.GetAPIKey(ctx, "user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "sk-live-abc", apiKey)
		assert.NotContains(t, repo.settings["user123"].EncryptedAPIKey, "sk-live-abc")
	})

	t.Run("SetAPIKey_EmptyKey", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))

		// Act
		err := useCase.SetAPIKey(ctx, "user123", "")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("SetAPIKey_PreservesDisplayName", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, useCase.SetDisplayName(ctx, "user123", "Alice"))

		// Act
		err := useCase.SetAPIKey(ctx, "user123", "sk-live-abc")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Alice", repo.settings["user123"].DisplayName)
	})

	t.Run("GetAPIKey_NeverStored", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, useCase.SetDisplayName(ctx, "user123", "Alice"))

		// Act
		_, err := useCase.GetAPIKey(ctx, "user123")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("GetAPIKey_MigratesRotatedBlob", func(t *testing.T) {
		// Arrange - store under key one, then rotate to key two
		repo := newFakeSettingsRepository()
		oldUseCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, oldUseCase.SetAPIKey(ctx, "user123", "sk-live-abc"))
		staleBlob := repo.settings["user123"].EncryptedAPIKey

		rotatedKeychain := newTestKeychain(t, "key-two", "key-one")
		useCase := NewCredentialsUseCase(repo, rotatedKeychain)

		// Act
		apiKey, err := useCase.GetAPIKey(ctx, "user123")

		// Assert - plaintext survives and the stored blob moved to the current key
		require.NoError(t, err)
		assert.Equal(t, "sk-live-abc", apiKey)
		assert.NotEqual(t, staleBlob, repo.settings["user123"].EncryptedAPIKey)
		assert.False(t, rotatedKeychain.NeedsReEncryption(repo.settings["user123"].EncryptedAPIKey))
	})

	t.Run("GetAPIKey_SecondReadDoesNotRewrite", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		oldUseCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, oldUseCase.SetAPIKey(ctx, "user123", "sk-live-abc"))
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-two", "key-one"))

		// Act
		_, err := useCase.GetAPIKey(ctx, "user123")
		require.NoError(t, err)
		upsertsAfterMigration := repo.upserts
		_, err = useCase.GetAPIKey(ctx, "user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, upsertsAfterMigration, repo.upserts)
	})

	t.Run("GetAPIKey_UndecryptableBlob_SurfacesFailure", func(t *testing.T) {
		// Arrange - the writing key is gone entirely
		repo := newFakeSettingsRepository()
		oldUseCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, oldUseCase.SetAPIKey(ctx, "user123", "sk-live-abc"))
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-two", ""))

		// Act
		_, err := useCase.GetAPIKey(ctx, "user123")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCredentialsUseCase_DisplayName(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet_RoundTrip", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))

		// Act
		err := useCase.SetDisplayName(ctx, "user123", "Alice")
		require.NoError(t, err)
		name, err := useCase.GetDisplayName(ctx, "user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Alice", name)
	})

	t.Run("GetDisplayName_NoProfile", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))

		// Act
		_, err := useCase.GetDisplayName(ctx, "user123")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("GetDisplayName_RowWithoutName", func(t *testing.T) {
		// Arrange - the user stored a key but never set a name
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, useCase.SetAPIKey(ctx, "user123", "sk-live-abc"))

		// Act
		_, err := useCase.GetDisplayName(ctx, "user123")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("SetDisplayName_PreservesAPIKey", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, useCase.SetAPIKey(ctx, "user123", "sk-live-abc"))

		// Act
		err := useCase.SetDisplayName(ctx, "user123", "Alice")

		// Assert
		require.NoError(t, err)
		apiKey, err := useCase.GetAPIKey(ctx, "user123")
		require.NoError(t, err)
		assert.Equal(t, "sk-live-abc", apiKey)
	})
}

func TestCredentialsUseCase_GetSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("ExistingProfile", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))
		require.NoError(t, useCase.SetDisplayName(ctx, "user123", "Alice"))

		// Act
		settings, err := useCase.GetSettings(ctx, "user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Alice", settings.DisplayName)
		assert.Empty(t, settings.EncryptedAPIKey)
	})

	t.Run("NoProfile_ReturnsZeroRow", func(t *testing.T) {
		// Arrange
		repo := newFakeSettingsRepository()
		useCase := NewCredentialsUseCase(repo, newTestKeychain(t, "key-one", ""))

		// Act
		settings, err := useCase.GetSettings(ctx, "fresh-user")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "fresh-user", settings.UserID)
		assert.Empty(t, settings.DisplayName)
	})
}
