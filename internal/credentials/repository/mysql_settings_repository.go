package repository

import (
	"context"
	"database/sql"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

// MySQLSettingsRepository implements UserSettings persistence for MySQL databases.
type MySQLSettingsRepository struct {
	db *sql.DB
}

// GetByUserID retrieves the settings row for a user.
func (m *MySQLSettingsRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*credentialsDomain.UserSettings, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT user_id, display_name, encrypted_api_key, updated_at
			  FROM user_settings
			  WHERE user_id = ?`

	var settings credentialsDomain.UserSettings
	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.DisplayName,
		&settings.EncryptedAPIKey,
		&settings.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user settings")
	}
	return &settings, nil
}

// Upsert inserts or replaces the settings row for a user.
func (m *MySQLSettingsRepository) Upsert(
	ctx context.Context,
	settings *credentialsDomain.UserSettings,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO user_settings (user_id, display_name, encrypted_api_key, updated_at)
			  VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE display_name = VALUES(display_name),
									  encrypted_api_key = VALUES(encrypted_api_key),
									  updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		settings.UserID,
		settings.DisplayName,
		settings.EncryptedAPIKey,
		settings.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert user settings")
	}
	return nil
}

// NewMySQLSettingsRepository creates a new MySQL UserSettings repository instance.
func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{db: db}
}
