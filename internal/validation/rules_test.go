package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/subtrack/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, WrapValidationError(nil))
	})
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("Netflix"))
	assert.Error(t, NotBlank.Validate(""))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("family-plan"))
	assert.Error(t, NoWhitespace.Validate(" leading"))
	assert.Error(t, NoWhitespace.Validate("trailing "))
}

func TestCurrency(t *testing.T) {
	assert.NoError(t, Currency.Validate("USD"))
	assert.NoError(t, Currency.Validate("EUR"))
	assert.Error(t, Currency.Validate("usd"))
	assert.Error(t, Currency.Validate("USDD"))
	assert.Error(t, Currency.Validate("U$D"))
}
