package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// MySQLInviteRepository implements ShareInvite persistence for MySQL databases.
type MySQLInviteRepository struct {
	db *sql.DB
}

// Create inserts a new pending invite.
func (m *MySQLInviteRepository) Create(ctx context.Context, invite *sharingDomain.ShareInvite) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO share_invites (id, subscription_id, token, expires_at, claimed_by, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

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
func (m *MySQLInviteRepository) GetByToken(
	ctx context.Context,
	token string,
) (*sharingDomain.ShareInvite, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subscription_id, token, expires_at, claimed_by, created_at
			  FROM share_invites
			  WHERE token = ?`

	return m.scanInvite(querier.QueryRowContext(ctx, query, token))
}

// GetByID retrieves an invite by its ID.
func (m *MySQLInviteRepository) GetByID(
	ctx context.Context,
	inviteID uuid.UUID,
) (*sharingDomain.ShareInvite, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subscription_id, token, expires_at, claimed_by, created_at
			  FROM share_invites
			  WHERE id = ?`

	return m.scanInvite(querier.QueryRowContext(ctx, query, inviteID))
}

// SetClaimedBy patches the invite's claimer.
func (m *MySQLInviteRepository) SetClaimedBy(
	ctx context.Context,
	inviteID uuid.UUID,
	claimerID string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE share_invites SET claimed_by = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, claimerID, inviteID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set invite claimer")
	}
	return nil
}

// Delete removes an invite by its ID.
func (m *MySQLInviteRepository) Delete(ctx context.Context, inviteID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM share_invites WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, inviteID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete invite")
	}
	return nil
}

// DeleteBySubscriptionID removes every invite of a subscription.
func (m *MySQLInviteRepository) DeleteBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM share_invites WHERE subscription_id = ?`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete invites by subscription")
	}
	return nil
}

// scanInvite maps one row to a ShareInvite.
func (m *MySQLInviteRepository) scanInvite(row *sql.Row) (*sharingDomain.ShareInvite, error) {
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

// NewMySQLInviteRepository creates a new MySQL ShareInvite repository instance.
func NewMySQLInviteRepository(db *sql.DB) *MySQLInviteRepository {
	return &MySQLInviteRepository{db: db}
}
