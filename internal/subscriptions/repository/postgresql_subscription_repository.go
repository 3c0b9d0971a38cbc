// Package repository implements data persistence for subscriptions.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// PostgreSQLSubscriptionRepository implements Subscription persistence for PostgreSQL databases.
type PostgreSQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new subscription into the PostgreSQL database.
func (p *PostgreSQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionsDomain.Subscription,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO subscriptions (id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

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
func (p *PostgreSQLSubscriptionRepository) GetByID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionsDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at
			  FROM subscriptions
			  WHERE id = $1`

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
func (p *PostgreSQLSubscriptionRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*subscriptionsDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, cost, currency, billing_cycle, max_slots, created_at, updated_at
			  FROM subscriptions
			  WHERE owner_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, offset, limit)
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
func (p *PostgreSQLSubscriptionRepository) Update(
	ctx context.Context,
	subscription *subscriptionsDomain.Subscription,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE subscriptions
			  SET name = $1, cost = $2, currency = $3, billing_cycle = $4, max_slots = $5, updated_at = $6
			  WHERE id = $7`

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
func (p *PostgreSQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM subscriptions WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete subscription")
	}
	return nil
}

// NewPostgreSQLSubscriptionRepository creates a new PostgreSQL Subscription repository instance.
func NewPostgreSQLSubscriptionRepository(db *sql.DB) *PostgreSQLSubscriptionRepository {
	return &PostgreSQLSubscriptionRepository{db: db}
}
