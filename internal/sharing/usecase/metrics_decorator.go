package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/metrics"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// shareUseCaseWithMetrics decorates ShareUseCase with metrics instrumentation.
type shareUseCaseWithMetrics struct {
	next    ShareUseCase
	metrics metrics.BusinessMetrics
}

// NewShareUseCaseWithMetrics wraps a ShareUseCase with metrics recording.
func NewShareUseCaseWithMetrics(useCase ShareUseCase, m metrics.BusinessMetrics) ShareUseCase {
	return &shareUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the counter and duration for one operation.
func (s *shareUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "sharing", operation, status)
	s.metrics.RecordDuration(ctx, "sharing", operation, time.Since(start), status)
}

// CreateInviteLink records metrics for invite creation.
func (s *shareUseCaseWithMetrics) CreateInviteLink(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
	expiresInDays int,
) (*sharingDomain.ShareInvite, error) {
	start := time.Now()
	invite, err := s.next.CreateInviteLink(ctx, ownerID, subscriptionID, expiresInDays)
	s.record(ctx, "invite_create", start, err)
	return invite, err
}

// GetInviteInfo records metrics for invite previews.
func (s *shareUseCaseWithMetrics) GetInviteInfo(
	ctx context.Context,
	token string,
) (*sharingDomain.InvitePreview, error) {
	start := time.Now()
	preview, err := s.next.GetInviteInfo(ctx, token)
	s.record(ctx, "invite_preview", start, err)
	return preview, err
}

// ClaimInvite records metrics for claim attempts.
// Denied claims are business outcomes, not errors, so they count as success.
func (s *shareUseCaseWithMetrics) ClaimInvite(
	ctx context.Context,
	claimerID string,
	token string,
) (*sharingDomain.ClaimResult, error) {
	start := time.Now()
	result, err := s.next.ClaimInvite(ctx, claimerID, token)
	s.record(ctx, "invite_claim", start, err)
	return result, err
}

// AddAnonymousShare records metrics for anonymous share creation.
func (s *shareUseCaseWithMetrics) AddAnonymousShare(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
	name string,
) (*sharingDomain.SubscriptionShare, error) {
	start := time.Now()
	share, err := s.next.AddAnonymousShare(ctx, ownerID, subscriptionID, name)
	s.record(ctx, "share_add_anonymous", start, err)
	return share, err
}

// RemoveShare records metrics for share removal.
func (s *shareUseCaseWithMetrics) RemoveShare(
	ctx context.Context,
	ownerID string,
	shareID uuid.UUID,
) error {
	start := time.Now()
	err := s.next.RemoveShare(ctx, ownerID, shareID)
	s.record(ctx, "share_remove", start, err)
	return err
}

// ToggleHideShare records metrics for hide toggles.
func (s *shareUseCaseWithMetrics) ToggleHideShare(
	ctx context.Context,
	beneficiaryID string,
	shareID uuid.UUID,
) (bool, error) {
	start := time.Now()
	hidden, err := s.next.ToggleHideShare(ctx, beneficiaryID, shareID)
	s.record(ctx, "share_toggle_hide", start, err)
	return hidden, err
}

// GetSharedWithMe records metrics for shared-with-me listings.
func (s *shareUseCaseWithMetrics) GetSharedWithMe(
	ctx context.Context,
	userID string,
	includeHidden bool,
) ([]*sharingDomain.SharedSubscription, error) {
	start := time.Now()
	shared, err := s.next.GetSharedWithMe(ctx, userID, includeHidden)
	s.record(ctx, "shared_with_me", start, err)
	return shared, err
}

// RevokeInvite records metrics for invite revocation.
func (s *shareUseCaseWithMetrics) RevokeInvite(
	ctx context.Context,
	ownerID string,
	inviteID uuid.UUID,
) error {
	start := time.Now()
	err := s.next.RevokeInvite(ctx, ownerID, inviteID)
	s.record(ctx, "invite_revoke", start, err)
	return err
}
