// Package repository implements data persistence for rate limit counters.
// Repositories support both PostgreSQL and MySQL with lazy row creation.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	ratelimitDomain "github.com/allisson/subtrack/internal/ratelimit/domain"
)

// PostgreSQLCounterRepository implements counter persistence for PostgreSQL databases.
type PostgreSQLCounterRepository struct {
	db *sql.DB
}

// Get retrieves the counter for a key, or ErrNotFound when the key has never been seen.
func (p *PostgreSQLCounterRepository) Get(
	ctx context.Context,
	key string,
) (*ratelimitDomain.Counter, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT counter_key, window_start, count
			  FROM rate_limit_counters
			  WHERE counter_key = $1`

	var counter ratelimitDomain.Counter
	err := querier.QueryRowContext(ctx, query, key).Scan(
		&counter.Key,
		&counter.WindowStart,
		&counter.Count,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get rate limit counter")
	}

	return &counter, nil
}

// Upsert creates or replaces the counter row for its key.
func (p *PostgreSQLCounterRepository) Upsert(
	ctx context.Context,
	counter *ratelimitDomain.Counter,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rate_limit_counters (counter_key, window_start, count)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (counter_key)
			  DO UPDATE SET window_start = EXCLUDED.window_start, count = EXCLUDED.count`

	_, err := querier.ExecContext(ctx, query, counter.Key, counter.WindowStart, counter.Count)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert rate limit counter")
	}
	return nil
}

// NewPostgreSQLCounterRepository creates a new PostgreSQL counter repository instance.
func NewPostgreSQLCounterRepository(db *sql.DB) *PostgreSQLCounterRepository {
	return &PostgreSQLCounterRepository{db: db}
}
