package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	ratelimitDomain "github.com/allisson/subtrack/internal/ratelimit/domain"
)

// MySQLCounterRepository implements counter persistence for MySQL databases.
type MySQLCounterRepository struct {
	db *sql.DB
}

// Get retrieves the counter for a key, or ErrNotFound when the key has never been seen.
func (m *MySQLCounterRepository) Get(
	ctx context.Context,
	key string,
) (*ratelimitDomain.Counter, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT counter_key, window_start, count
			  FROM rate_limit_counters
			  WHERE counter_key = ?`

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
func (m *MySQLCounterRepository) Upsert(
	ctx context.Context,
	counter *ratelimitDomain.Counter,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO rate_limit_counters (counter_key, window_start, count)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE window_start = VALUES(window_start), count = VALUES(count)`

	_, err := querier.ExecContext(ctx, query, counter.Key, counter.WindowStart, counter.Count)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert rate limit counter")
	}
	return nil
}

// NewMySQLCounterRepository creates a new MySQL counter repository instance.
func NewMySQLCounterRepository(db *sql.DB) *MySQLCounterRepository {
	return &MySQLCounterRepository{db: db}
}
