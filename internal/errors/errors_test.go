package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "subscription lookup")

		require.Error(t, wrapped)
		assert.True(t, Is(wrapped, ErrNotFound))
		assert.Equal(t, "subscription lookup: not found", wrapped.Error())
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("chain survives multiple wraps", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrConflict, "inner"), "outer")

		assert.True(t, Is(wrapped, ErrConflict))
		assert.Equal(t, "outer: inner: conflict", wrapped.Error())
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("failed: %w", ErrRateLimited)
	assert.True(t, Is(err, ErrRateLimited))
	assert.False(t, Is(err, ErrNotFound))
}

func TestNew(t *testing.T) {
	err := New("something failed")
	require.Error(t, err)
	assert.Equal(t, "something failed", err.Error())
}
