package dto

import (
	"time"

	"github.com/google/uuid"

	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// SubscriptionResponse contains subscription data returned to the client.
type SubscriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Cost         float64   `json:"cost"`
	Currency     string    `json:"currency"`
	BillingCycle string    `json:"billingCycle"`
	MaxSlots     *int      `json:"maxSlots,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListSubscriptionsResponse contains a page of subscriptions.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Offset        int                    `json:"offset"`
	Limit         int                    `json:"limit"`
}

// MapSubscriptionToResponse converts a domain subscription to its response representation.
func MapSubscriptionToResponse(subscription *subscriptionsDomain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           subscription.ID,
		Name:         subscription.Name,
		Cost:         subscription.Cost,
		Currency:     subscription.Currency,
		BillingCycle: string(subscription.BillingCycle),
		MaxSlots:     subscription.MaxSlots,
		CreatedAt:    subscription.CreatedAt,
		UpdatedAt:    subscription.UpdatedAt,
	}
}

// MapSubscriptionsToListResponse converts a page of subscriptions to the list response.
func MapSubscriptionsToListResponse(
	subscriptions []*subscriptionsDomain.Subscription,
	offset, limit int,
) ListSubscriptionsResponse {
	items := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		items = append(items, MapSubscriptionToResponse(subscription))
	}
	return ListSubscriptionsResponse{
		Subscriptions: items,
		Offset:        offset,
		Limit:         limit,
	}
}
