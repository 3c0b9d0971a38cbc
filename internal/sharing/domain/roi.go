package domain

// SubscriptionROI reports seat utilization and waste for a shared subscription.
type SubscriptionROI struct {
	// HasSlots reports whether the subscription has a seat cap at all.
	// When false the remaining fields are zero.
	HasSlots bool
	// MaxSlots is the configured seat cap.
	MaxSlots int
	// UsedSlots is the owner plus every share, not clamped to MaxSlots.
	UsedSlots int
	// UnusedSlots is MaxSlots minus UsedSlots, clamped at zero.
	UnusedSlots int
	// CostPerSlot is the cycle cost divided by MaxSlots.
	CostPerSlot float64
	// WastedAmount is the cost of the unused seats per cycle.
	WastedAmount float64
	// Currency is the ISO 4217 code the amounts are denominated in.
	Currency string
}

// ComputeROI derives seat utilization from the share count of a subscription.
// The owner always occupies one seat, so UsedSlots is shareCount+1.
func ComputeROI(cost float64, currency string, maxSlots *int, shareCount int) SubscriptionROI {
	usedSlots := shareCount + 1

	if maxSlots == nil || *maxSlots <= 0 {
		return SubscriptionROI{
			HasSlots:  false,
			UsedSlots: usedSlots,
			Currency:  currency,
		}
	}

	unusedSlots := *maxSlots - usedSlots
	if unusedSlots < 0 {
		unusedSlots = 0
	}

	costPerSlot := cost / float64(*maxSlots)

	return SubscriptionROI{
		HasSlots:     true,
		MaxSlots:     *maxSlots,
		UsedSlots:    usedSlots,
		UnusedSlots:  unusedSlots,
		CostPerSlot:  costPerSlot,
		WastedAmount: float64(unusedSlots) * costPerSlot,
		Currency:     currency,
	}
}
