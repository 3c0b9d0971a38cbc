package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func TestPostgreSQLSettingsRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("GetByUserID_Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingsRepository(db)

		rows := sqlmock.NewRows([]string{"user_id", "display_name", "encrypted_api_key", "updated_at"}).
			AddRow("user123", "Alice", "blob", now)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, display_name, encrypted_api_key, updated_at")).
			WithArgs("user123").
			WillReturnRows(rows)

		// Act
		settings, err := repo.GetByUserID(ctx, "user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Alice", settings.DisplayName)
		assert.Equal(t, "blob", settings.EncryptedAPIKey)
	})

	t.Run("GetByUserID_NotFound", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingsRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, display_name, encrypted_api_key, updated_at")).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetByUserID(ctx, "missing")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Upsert", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingsRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_settings")).
			WithArgs("user123", "Alice", "blob", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Upsert(ctx, &credentialsDomain.UserSettings{
			UserID:          "user123",
			DisplayName:     "Alice",
			EncryptedAPIKey: "blob",
			UpdatedAt:       now,
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLSettingsRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Upsert", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewMySQLSettingsRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_settings")).
			WithArgs("user123", "Alice", "blob", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Upsert(ctx, &credentialsDomain.UserSettings{
			UserID:          "user123",
			DisplayName:     "Alice",
			EncryptedAPIKey: "blob",
			UpdatedAt:       now,
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
