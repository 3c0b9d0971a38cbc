// Package repository implements data persistence for invites and shares.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// PostgreSQLInviteRepository implements ShareInvite persistence for PostgreSQL databases.
type PostgreSQLInviteRepository struct {
	db *sql.DB
}

// Create inserts a new pending invite.
func (p *PostgreSQLInviteRepository) Create(ctx context.Context, invite *sharingDomain.ShareInvite) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO share_invites (id, subscription_id, token, expires_at, claimed_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		invite.ID,
		invite.SubscriptionID,
		invite.Token,
		invite.ExpiresAt,
		invite.ClaimedBy,
		invite.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create invite")
	}
	return nil
}

// GetByToken retrieves an invite by its capability token.
func (p *PostgreSQLInviteRepository) GetByToken(
	ctx context.Context,
	token string,
) (*sharingDomain.ShareInvite, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subscription_id, token, expires_at, claimed_by, created_at
			  FROM share_invites
			  WHERE token = $1`

	return p.scanInvite(querier.QueryRowContext(ctx, query, token))
}

// GetByID retrieves an invite by its ID.
func (p *PostgreSQLInviteRepository) GetByID(
	ctx context.Context,
	inviteID uuid.UUID,
) (*sharingDomain.ShareInvite, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subscription_id, token, expires_at, claimed_by, created_at
			  FROM share_invites
			  WHERE id = $1`

	return p.scanInvite(querier.QueryRowContext(ctx, query, inviteID))
}

// SetClaimedBy patches the invite's claimer.
func (p *PostgreSQLInviteRepository) SetClaimedBy(
	ctx context.Context,
	inviteID uuid.UUID,
	claimerID string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE share_invites SET claimed_by = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, claimerID, inviteID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set invite claimer")
	}
	return nil
}

// Delete removes an invite by its ID.
func (p *PostgreSQLInviteRepository) Delete(ctx context.Context, inviteID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM share_invites WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, inviteID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete invite")
	}
	return nil
}

// DeleteBySubscriptionID removes every invite of a subscription.
func (p *PostgreSQLInviteRepository) DeleteBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM share_invites WHERE subscription_id = $1`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete invites by subscription")
	}
	return nil
}

// scanInvite maps one row to a ShareInvite.
func (p *PostgreSQLInviteRepository) scanInvite(row *sql.Row) (*sharingDomain.ShareInvite, error) {
	var invite sharingDomain.ShareInvite
	err := row.Scan(
		&invite.ID,
		&invite.SubscriptionID,
		&invite.Token,
		&invite.ExpiresAt,
		&invite.ClaimedBy,
		&invite.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get invite")
	}
	return &invite, nil
}

// NewPostgreSQLInviteRepository creates a new PostgreSQL ShareInvite repository instance.
func NewPostgreSQLInviteRepository(db *sql.DB) *PostgreSQLInviteRepository {
	return &PostgreSQLInviteRepository{db: db}
}
