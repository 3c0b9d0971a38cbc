package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/ratelimit/domain"
)

// fakeCounterRepository is an in-memory CounterRepository for tests.
type fakeCounterRepository struct {
	counters map[string]*domain.Counter
}

func newFakeCounterRepository() *fakeCounterRepository {
	return &fakeCounterRepository{counters: make(map[string]*domain.Counter)}
}

func (f *fakeCounterRepository) Get(ctx context.Context, key string) (*domain.Counter, error) {
	counter, ok := f.counters[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *counter
	return &copied, nil
}

func (f *fakeCounterRepository) Upsert(ctx context.Context, counter *domain.Counter) error {
	copied := *counter
	f.counters[counter.Key] = &copied
	return nil
}

// fakeClock is a settable Clock for tests.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestRateLimitUseCase_Check(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("FirstRequest_Allowed", func(t *testing.T) {
		// Arrange
		repo := newFakeCounterRepository()
		clock := &fakeClock{now: start}
		useCase := NewRateLimitUseCase(repo, clock)

		// Act
		result, err := useCase.Check(ctx, domain.OperationAIChat, "user123")

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 19, result.Remaining)
		assert.Equal(t, start.Add(60*time.Second), result.ResetAt)

		// Counter row is created lazily with the composed key
		counter, err := repo.Get(ctx, "aiChat:user123")
		require.NoError(t, err)
		assert.Equal(t, 1, counter.Count)
		assert.Equal(t, start, counter.WindowStart)
	})

	t.Run("LimitBoundary_DeniesRequestOverMax", func(t *testing.T) {
		// Arrange
		repo := newFakeCounterRepository()
		clock := &fakeClock{now: start}
		useCase := NewRateLimitUseCase(repo, clock)

		// Act - exhaust the aiChat window (max 20)
		for i := 0; i < 20; i++ {
			result, err := useCase.Check(ctx, domain.OperationAIChat, "user123")
			require.NoError(t, err)
			require.True(t, result.Allowed)
			assert.Equal(t, 19-i, result.Remaining)
		}

		// Assert - the 21st request is denied
		result, err := useCase.Check(ctx, domain.OperationAIChat, "user123")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Equal(t, start.Add(60*time.Second), result.ResetAt)

		// Denied requests do not grow the counter
		counter, err := repo.Get(ctx, "aiChat:user123")
		require.NoError(t, err)
		assert.Equal(t, 20, counter.Count)
	})

	t.Run("NewWindow_ResetsCounter", func(t *testing.T) {
		// Arrange - exhausted window
		repo := newFakeCounterRepository()
		clock := &fakeClock{now: start}
		useCase := NewRateLimitUseCase(repo, clock)

		for i := 0; i < 20; i++ {
			_, err := useCase.Check(ctx, domain.OperationAIChat, "user123")
			require.NoError(t, err)
		}

		// Act - window elapses
		clock.Advance(61 * time.Second)
		result, err := useCase.Check(ctx, domain.OperationAIChat, "user123")

		// Assert - fresh window starting now
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 19, result.Remaining)
		assert.Equal(t, clock.Now().Add(60*time.Second), result.ResetAt)
	})

	t.Run("IndependentKeys_DoNotInterfere", func(t *testing.T) {
		// Arrange
		repo := newFakeCounterRepository()
		clock := &fakeClock{now: start}
		useCase := NewRateLimitUseCase(repo, clock)

		// Act
		_, err := useCase.Check(ctx, domain.OperationAIChat, "user1")
		require.NoError(t, err)
		resultOtherUser, err := useCase.Check(ctx, domain.OperationAIChat, "user2")
		require.NoError(t, err)
		resultOtherOp, err := useCase.Check(ctx, domain.OperationMutations, "user1")
		require.NoError(t, err)

		// Assert
		assert.Equal(t, 19, resultOtherUser.Remaining)
		assert.Equal(t, 59, resultOtherOp.Remaining)
	})

	t.Run("AuthWindow_FifteenMinutes", func(t *testing.T) {
		// Arrange
		repo := newFakeCounterRepository()
		clock := &fakeClock{now: start}
		useCase := NewRateLimitUseCase(repo, clock)

		// Act
		result, err := useCase.Check(ctx, domain.OperationAuth, "203.0.113.9")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 9, result.Remaining)
		assert.Equal(t, start.Add(15*time.Minute), result.ResetAt)
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		// Arrange
		useCase := NewRateLimitUseCase(newFakeCounterRepository(), &fakeClock{now: start})

		// Act
		_, err := useCase.Check(ctx, domain.Operation("bogus"), "user123")

		// Assert
		assert.ErrorIs(t, err, domain.ErrUnknownOperation)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}
