// Package usecase implements business logic for subscription management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// SubscriptionRepository defines the interface for Subscription persistence operations.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *subscriptionsDomain.Subscription) error
	GetByID(ctx context.Context, subscriptionID uuid.UUID) (*subscriptionsDomain.Subscription, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*subscriptionsDomain.Subscription, error)
	Update(ctx context.Context, subscription *subscriptionsDomain.Subscription) error
	Delete(ctx context.Context, subscriptionID uuid.UUID) error
}

// ShareCascadeRepository deletes shares owned by a subscription.
// Implemented by the sharing repositories; used for cascade on subscription delete.
type ShareCascadeRepository interface {
	DeleteBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) error
}

// InviteCascadeRepository deletes invites owned by a subscription.
// Implemented by the sharing repositories; used for cascade on subscription delete.
type InviteCascadeRepository interface {
	DeleteBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) error
}

// SubscriptionInput carries the caller-supplied fields for create and update.
type SubscriptionInput struct {
	Name         string
	Cost         float64
	Currency     string
	BillingCycle subscriptionsDomain.BillingCycle
	MaxSlots     *int
}

// SubscriptionUseCase defines the interface for subscription business logic.
// All reads are owner scoped: a subscription belonging to another user is
// reported as not found, never as forbidden, so existence does not leak.
type SubscriptionUseCase interface {
	Create(ctx context.Context, ownerID string, input SubscriptionInput) (*subscriptionsDomain.Subscription, error)
	Get(ctx context.Context, ownerID string, subscriptionID uuid.UUID) (*subscriptionsDomain.Subscription, error)
	List(ctx context.Context, ownerID string, offset, limit int) ([]*subscriptionsDomain.Subscription, error)
	Update(ctx context.Context, ownerID string, subscriptionID uuid.UUID, input SubscriptionInput) (*subscriptionsDomain.Subscription, error)
	// Delete removes the subscription and cascades its shares and invites
	// in a single transaction.
	Delete(ctx context.Context, ownerID string, subscriptionID uuid.UUID) error
}
