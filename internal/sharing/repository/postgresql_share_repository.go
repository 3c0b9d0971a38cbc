package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// PostgreSQLShareRepository implements SubscriptionShare persistence for PostgreSQL databases.
type PostgreSQLShareRepository struct {
	db *sql.DB
}

// Create inserts a new share.
func (p *PostgreSQLShareRepository) Create(ctx context.Context, share *sharingDomain.SubscriptionShare) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO subscription_shares (id, subscription_id, share_type, user_id, name, is_hidden, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		share.ID,
		share.SubscriptionID,
		share.Type,
		share.UserID,
		share.Name,
		share.IsHidden,
		share.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create share")
	}
	return nil
}

// GetByID retrieves a share by its ID.
func (p *PostgreSQLShareRepository) GetByID(
	ctx context.Context,
	shareID uuid.UUID,
) (*sharingDomain.SubscriptionShare, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subscription_id, share_type, user_id, name, is_hidden, created_at
			  FROM subscription_shares
			  WHERE id = $1`

	return p.scanShare(querier.QueryRowContext(ctx, query, shareID))
}

// GetBySubscriptionAndUser retrieves the user share for a (subscription, user) pair.
func (p *PostgreSQLShareRepository) GetBySubscriptionAndUser(
	ctx context.Context,
	subscriptionID uuid.UUID,
	userID string,
) (*sharingDomain.SubscriptionShare, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subscription_id, share_type, user_id, name, is_hidden, created_at
			  FROM subscription_shares
			  WHERE subscription_id = $1 AND user_id = $2 AND share_type = 'user'`

	return p.scanShare(querier.QueryRowContext(ctx, query, subscriptionID, userID))
}

// CountBySubscriptionID counts all shares of a subscription.
func (p *PostgreSQLShareRepository) CountBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM subscription_shares WHERE subscription_id = $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, subscriptionID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count shares")
	}
	return count, nil
}

// ListByUser joins a beneficiary's shares to their surviving parent
// subscriptions. The inner join drops shares whose subscription was deleted,
// and the hidden filter rides the (user_id, is_hidden) index.
func (p *PostgreSQLShareRepository) ListByUser(
	ctx context.Context,
	userID string,
	includeHidden bool,
) ([]*sharingDomain.SharedSubscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ss.id, ss.subscription_id, s.name, s.owner_id, s.cost, s.currency, s.billing_cycle, ss.is_hidden, ss.created_at
			  FROM subscription_shares ss
			  JOIN subscriptions s ON s.id = ss.subscription_id
			  WHERE ss.user_id = $1 AND ss.share_type = 'user'`
	if !includeHidden {
		query += ` AND ss.is_hidden = FALSE`
	}
	query += ` ORDER BY ss.created_at DESC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list shared subscriptions")
	}
	defer func() { _ = rows.Close() }()

	shared := []*sharingDomain.SharedSubscription{}
	for rows.Next() {
		var entry sharingDomain.SharedSubscription
		if err := rows.Scan(
			&entry.ShareID,
			&entry.SubscriptionID,
			&entry.SubscriptionName,
			&entry.OwnerID,
			&entry.Cost,
			&entry.Currency,
			&entry.BillingCycle,
			&entry.IsHidden,
			&entry.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan shared subscription")
		}
		shared = append(shared, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate shared subscriptions")
	}

	return shared, nil
}

// UpdateHidden sets the hidden flag of a share.
func (p *PostgreSQLShareRepository) UpdateHidden(
	ctx context.Context,
	shareID uuid.UUID,
	isHidden bool,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE subscription_shares SET is_hidden = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, isHidden, shareID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update share hidden flag")
	}
	return nil
}

// Delete removes a share by its ID.
func (p *PostgreSQLShareRepository) Delete(ctx context.Context, shareID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM subscription_shares WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, shareID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete share")
	}
	return nil
}

// DeleteBySubscriptionID removes every share of a subscription.
func (p *PostgreSQLShareRepository) DeleteBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM subscription_shares WHERE subscription_id = $1`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete shares by subscription")
	}
	return nil
}

// scanShare maps one row to a SubscriptionShare.
func (p *PostgreSQLShareRepository) scanShare(row *sql.Row) (*sharingDomain.SubscriptionShare, error) {
	var share sharingDomain.SubscriptionShare
	err := row.Scan(
		&share.ID,
		&share.SubscriptionID,
		&share.Type,
		&share.UserID,
		&share.Name,
		&share.IsHidden,
		&share.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get share")
	}
	return &share, nil
}

// NewPostgreSQLShareRepository creates a new PostgreSQL SubscriptionShare repository instance.
func NewPostgreSQLShareRepository(db *sql.DB) *PostgreSQLShareRepository {
	return &PostgreSQLShareRepository{db: db}
}
