package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// MySQLShareRepository implements SubscriptionShare persistence for MySQL databases.
type MySQLShareRepository struct {
	db *sql.DB
}

// Create inserts a new share.
func (m *MySQLShareRepository) Create(ctx context.Context, share *sharingDomain.SubscriptionShare) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO subscription_shares (id, subscription_id, share_type, user_id, name, is_hidden, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLShareRepository) GetByID(
	ctx context.Context,
	shareID uuid.UUID,
) (*sharingDomain.SubscriptionShare, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subscription_id, share_type, user_id, name, is_hidden, created_at
			  FROM subscription_shares
			  WHERE id = ?`

	return m.scanShare(querier.QueryRowContext(ctx, query, shareID))
}

// GetBySubscriptionAndUser retrieves the user share for a (subscription, user) pair.
func (m *MySQLShareRepository) GetBySubscriptionAndUser(
	ctx context.Context,
	subscriptionID uuid.UUID,
	userID string,
) (*sharingDomain.SubscriptionShare, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subscription_id, share_type, user_id, name, is_hidden, created_at
			  FROM subscription_shares
			  WHERE subscription_id = ? AND user_id = ? AND share_type = 'user'`

	return m.scanShare(querier.QueryRowContext(ctx, query, subscriptionID, userID))
}

// CountBySubscriptionID counts all shares of a subscription.
func (m *MySQLShareRepository) CountBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM subscription_shares WHERE subscription_id = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, subscriptionID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count shares")
	}
	return count, nil
}

// ListByUser joins a beneficiary's shares to their surviving parent
// subscriptions. The inner join drops shares whose subscription was deleted,
// and the hidden filter rides the (user_id, is_hidden) index.
func (m *MySQLShareRepository) ListByUser(
	ctx context.Context,
	userID string,
	includeHidden bool,
) ([]*sharingDomain.SharedSubscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ss.id, ss.subscription_id, s.name, s.owner_id, s.cost, s.currency, s.billing_cycle, ss.is_hidden, ss.created_at
			  FROM subscription_shares ss
			  JOIN subscriptions s ON s.id = ss.subscription_id
			  WHERE ss.user_id = ? AND ss.share_type = 'user'`
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
func (m *MySQLShareRepository) UpdateHidden(
	ctx context.Context,
	shareID uuid.UUID,
	isHidden bool,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE subscription_shares SET is_hidden = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, isHidden, shareID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update share hidden flag")
	}
	return nil
}

// Delete removes a share by its ID.
func (m *MySQLShareRepository) Delete(ctx context.Context, shareID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM subscription_shares WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, shareID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete share")
	}
	return nil
}

// DeleteBySubscriptionID removes every share of a subscription.
func (m *MySQLShareRepository) DeleteBySubscriptionID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM subscription_shares WHERE subscription_id = ?`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete shares by subscription")
	}
	return nil
}

// scanShare maps one row to a SubscriptionShare.
func (m *MySQLShareRepository) scanShare(row *sql.Row) (*sharingDomain.SubscriptionShare, error) {
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

// NewMySQLShareRepository creates a new MySQL SubscriptionShare repository instance.
func NewMySQLShareRepository(db *sql.DB) *MySQLShareRepository {
	return &MySQLShareRepository{db: db}
}
