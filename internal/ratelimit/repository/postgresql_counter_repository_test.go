package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/subtrack/internal/errors"
	ratelimitDomain "github.com/allisson/subtrack/internal/ratelimit/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func TestPostgreSQLCounterRepository_Get(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCounterRepository(db)

		rows := sqlmock.NewRows([]string{"counter_key", "window_start", "count"}).
			AddRow("aiChat:user123", windowStart, 5)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT counter_key, window_start, count")).
			WithArgs("aiChat:user123").
			WillReturnRows(rows)

		// Act
		counter, err := repo.Get(ctx, "aiChat:user123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "aiChat:user123", counter.Key)
		assert.Equal(t, windowStart, counter.WindowStart)
		assert.Equal(t, 5, counter.Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCounterRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT counter_key, window_start, count")).
			WithArgs("aiChat:unknown").
			WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.Get(ctx, "aiChat:unknown")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLCounterRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCounterRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rate_limit_counters")).
			WithArgs("mutations:user123", windowStart, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Upsert(ctx, &ratelimitDomain.Counter{
			Key:         "mutations:user123",
			WindowStart: windowStart,
			Count:       1,
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCounterRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rate_limit_counters")).
			WillReturnError(assert.AnError)

		// Act
		err := repo.Upsert(ctx, &ratelimitDomain.Counter{
			Key:         "mutations:user123",
			WindowStart: windowStart,
			Count:       1,
		})

		// Assert
		assert.Error(t, err)
	})
}

func TestMySQLCounterRepository(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Get", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewMySQLCounterRepository(db)

		rows := sqlmock.NewRows([]string{"counter_key", "window_start", "count"}).
			AddRow("auth:203.0.113.9", windowStart, 2)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT counter_key, window_start, count")).
			WithArgs("auth:203.0.113.9").
			WillReturnRows(rows)

		// Act
		counter, err := repo.Get(ctx, "auth:203.0.113.9")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, counter.Count)
	})

	t.Run("Upsert", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewMySQLCounterRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rate_limit_counters")).
			WithArgs("auth:203.0.113.9", windowStart, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Upsert(ctx, &ratelimitDomain.Counter{
			Key:         "auth:203.0.113.9",
			WindowStart: windowStart,
			Count:       3,
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
