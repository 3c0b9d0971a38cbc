package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// MySQLSubscriptionRepository implements Subscription persistence for MySQL databases.
type MySQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new subscription into the MySQL database.
func (m *MySQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionsDomain.Subscription,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO subscriptions (id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		subscription.ID,
		subscription.OwnerID,
		subscription.Name,
		subscription.Cost,
		subscription.Currency,
		subscription.BillingCycle,
		subscription.MaxSlots,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// GetByID retrieves a subscription by its ID regardless of owner.
// Owner scoping is a use case concern, the claim flow reads foreign subscriptions.
func (m *MySQLSubscriptionRepository) GetByID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionsDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at
			  FROM subscriptions
			  WHERE id = ?`

	var subscription subscriptionsDomain.Subscription
	err := querier.QueryRowContext(ctx, query, subscriptionID).Scan(
		&subscription.ID,
		&subscription.OwnerID,
		&subscription.Name,
		&subscription.Cost,
		&subscription.Currency,
		&subscription.BillingCycle,
		&subscription.MaxSlots,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get subscription")
	}

	return &subscription, nil
}

// ListByOwner retrieves subscriptions for an owner ordered by creation time with pagination.
func (m *MySQLSubscriptionRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*subscriptionsDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at
			  FROM subscriptions
			  WHERE owner_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer func() { _ = rows.Close() }()

	subscriptions := []*subscriptionsDomain.Subscription{}
	for rows.Next() {
		var subscription subscriptionsDomain.Subscription
		if err := rows.Scan(
			&subscription.ID,
			&subscription.OwnerID,
			&subscription.Name,
			&subscription.Cost,
			&subscription.Currency,
			&subscription.BillingCycle,
			&subscription.MaxSlots,
			&subscription.CreatedAt,
			&subscription.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}
		subscriptions = append(subscriptions, &subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}

	return subscriptions, nil
}

// Update replaces the mutable fields of a subscription.
func (m *MySQLSubscriptionRepository) Update(
	ctx context.Context,
	subscription *subscriptionsDomain.Subscription,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE subscriptions
			  SET name = ?, cost = ?, currency = ?, billing_cycle = ?, max_slots = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(
		ctx,
		query,
		subscription.Name,
		subscription.Cost,
		subscription.Currency,
		subscription.BillingCycle,
		subscription.MaxSlots,
		subscription.UpdatedAt,
		subscription.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update subscription")
	}
	return nil
}

// Delete removes a subscription by its ID.
func (m *MySQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM subscriptions WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete subscription")
	}
	return nil
}

// NewMySQLSubscriptionRepository creates a new MySQL Subscription repository instance.
func NewMySQLSubscriptionRepository(db *sql.DB) *MySQLSubscriptionRepository {
	return &MySQLSubscriptionRepository{db: db}
}
