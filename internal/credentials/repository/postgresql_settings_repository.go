// Package repository implements data persistence for user settings.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

// PostgreSQLSettingsRepository implements UserSettings persistence for PostgreSQL databases.
type PostgreSQLSettingsRepository struct {
	db *sql.DB
}

// GetByUserID retrieves the settings row for a user.
func (p *PostgreSQLSettingsRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*credentialsDomain.UserSettings, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT user_id, display_name, encrypted_api_key, updated_at
			  FROM user_settings
			  WHERE user_id = $1`

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
func (p *PostgreSQLSettingsRepository) Upsert(
	ctx context.Context,
	settings *credentialsDomain.UserSettings,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_settings (user_id, display_name, encrypted_api_key, updated_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_id)
			  DO UPDATE SET display_name = EXCLUDED.display_name,
							encrypted_api_key = EXCLUDED.encrypted_api_key,
							updated_at = EXCLUDED.updated_at`

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

// NewPostgreSQLSettingsRepository creates a new PostgreSQL UserSettings repository instance.
func NewPostgreSQLSettingsRepository(db *sql.DB) *PostgreSQLSettingsRepository {
	return &PostgreSQLSettingsRepository{db: db}
}
