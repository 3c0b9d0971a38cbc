package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestComputeROI(t *testing.T) {
	t.Run("PartiallySeated", func(t *testing.T) {
		roi := ComputeROI(24, "USD", intPtr(6), 3)

		assert.True(t, roi.HasSlots)
		assert.Equal(t, 6, roi.MaxSlots)
		assert.Equal(t, 4, roi.UsedSlots)
		assert.Equal(t, 2, roi.UnusedSlots)
		assert.Equal(t, 4.0, roi.CostPerSlot)
		assert.Equal(t, 8.0, roi.WastedAmount)
		assert.Equal(t, "USD", roi.Currency)
	})

	t.Run("FullySeated", func(t *testing.T) {
		roi := ComputeROI(24, "USD", intPtr(6), 5)

		assert.Equal(t, 6, roi.UsedSlots)
		assert.Equal(t, 0, roi.UnusedSlots)
		assert.Equal(t, 0.0, roi.WastedAmount)
	})

	t.Run("NoShares_OwnerOccupiesOneSeat", func(t *testing.T) {
		roi := ComputeROI(24, "USD", intPtr(6), 0)

		assert.Equal(t, 1, roi.UsedSlots)
		assert.Equal(t, 5, roi.UnusedSlots)
		assert.Equal(t, 20.0, roi.WastedAmount)
	})

	t.Run("OverShared_UnusedClampedAtZero", func(t *testing.T) {
		roi := ComputeROI(24, "USD", intPtr(4), 6)

		assert.Equal(t, 7, roi.UsedSlots)
		assert.Equal(t, 0, roi.UnusedSlots)
		assert.Equal(t, 0.0, roi.WastedAmount)
	})

	t.Run("NoSlotCap", func(t *testing.T) {
		roi := ComputeROI(24, "EUR", nil, 3)

		assert.False(t, roi.HasSlots)
		assert.Equal(t, 4, roi.UsedSlots)
		assert.Equal(t, 0, roi.MaxSlots)
		assert.Equal(t, 0.0, roi.CostPerSlot)
		assert.Equal(t, 0.0, roi.WastedAmount)
		assert.Equal(t, "EUR", roi.Currency)
	})
}
