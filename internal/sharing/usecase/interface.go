// Package usecase implements business logic for the invite and share ledger.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// InviteRepository defines the interface for ShareInvite persistence operations.
type InviteRepository interface {
	Create(ctx context.Context, invite *sharingDomain.ShareInvite) error
	// GetByToken returns ErrNotFound when no invite carries the token.
	GetByToken(ctx context.Context, token string) (*sharingDomain.ShareInvite, error)
	GetByID(ctx context.Context, inviteID uuid.UUID) (*sharingDomain.ShareInvite, error)
	// SetClaimedBy patches the invite's claimer, completing the claim transition.
	SetClaimedBy(ctx context.Context, inviteID uuid.UUID, claimerID string) error
	Delete(ctx context.Context, inviteID uuid.UUID) error
	DeleteBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) error
}

// ShareRepository defines the interface for SubscriptionShare persistence operations.
type ShareRepository interface {
	Create(ctx context.Context, share *sharingDomain.SubscriptionShare) error
	GetByID(ctx context.Context, shareID uuid.UUID) (*sharingDomain.SubscriptionShare, error)
	// GetBySubscriptionAndUser returns ErrNotFound when the user has no share
	// on the subscription.
	GetBySubscriptionAndUser(ctx context.Context, subscriptionID uuid.UUID, userID string) (*sharingDomain.SubscriptionShare, error)
	CountBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) (int, error)
	// ListByUser joins each share to its surviving parent subscription; shares
	// whose subscription has been deleted are silently dropped by the join.
	// The hidden filter is applied at the index level.
	ListByUser(ctx context.Context, userID string, includeHidden bool) ([]*sharingDomain.SharedSubscription, error)
	UpdateHidden(ctx context.Context, shareID uuid.UUID, isHidden bool) error
	Delete(ctx context.Context, shareID uuid.UUID) error
	DeleteBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) error
}

// SubscriptionGetter reads subscriptions without owner scoping.
// The claim path needs foreign subscriptions, so scoping happens here, not in
// the repository.
type SubscriptionGetter interface {
	GetByID(ctx context.Context, subscriptionID uuid.UUID) (*subscriptionsDomain.Subscription, error)
}

// OwnerDirectory resolves a user ID to a display name.
// Returns ErrNotFound for users who never stored a profile.
type OwnerDirectory interface {
	GetDisplayName(ctx context.Context, userID string) (string, error)
}

// Clock abstracts time for deterministic expiry tests.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return realClock{}
}

// ShareUseCase defines the interface for the invite and share workflow.
type ShareUseCase interface {
	// CreateInviteLink creates a pending invite for an owned subscription.
	// expiresInDays <= 0 selects the default lifetime.
	CreateInviteLink(ctx context.Context, ownerID string, subscriptionID uuid.UUID, expiresInDays int) (*sharingDomain.ShareInvite, error)
	// GetInviteInfo previews an invite without mutating state.
	GetInviteInfo(ctx context.Context, token string) (*sharingDomain.InvitePreview, error)
	// ClaimInvite validates and claims an invite for the authenticated user.
	ClaimInvite(ctx context.Context, claimerID string, token string) (*sharingDomain.ClaimResult, error)
	// AddAnonymousShare records a name-only beneficiary on an owned subscription.
	AddAnonymousShare(ctx context.Context, ownerID string, subscriptionID uuid.UUID, name string) (*sharingDomain.SubscriptionShare, error)
	// RemoveShare deletes a share, owner-scoped via the parent subscription.
	RemoveShare(ctx context.Context, ownerID string, shareID uuid.UUID) error
	// ToggleHideShare flips a user share's hidden flag and returns the new state.
	ToggleHideShare(ctx context.Context, beneficiaryID string, shareID uuid.UUID) (bool, error)
	// GetSharedWithMe lists the subscriptions shared with a beneficiary.
	GetSharedWithMe(ctx context.Context, userID string, includeHidden bool) ([]*sharingDomain.SharedSubscription, error)
	// RevokeInvite hard deletes an invite, owner-scoped via the parent subscription.
	RevokeInvite(ctx context.Context, ownerID string, inviteID uuid.UUID) error
}

// ROIUseCase defines the interface for seat utilization reporting.
type ROIUseCase interface {
	GetSubscriptionROI(ctx context.Context, ownerID string, subscriptionID uuid.UUID) (*sharingDomain.SubscriptionROI, error)
}
