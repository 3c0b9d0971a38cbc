package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// unknownOwnerName is shown when the owner never stored a display name.
const unknownOwnerName = "Unknown"

// shareUseCase implements the ShareUseCase interface.
type shareUseCase struct {
	txManager        database.TxManager
	inviteRepo       InviteRepository
	shareRepo        ShareRepository
	subscriptionRepo SubscriptionGetter
	ownerDirectory   OwnerDirectory
	clock            Clock
}

// CreateInviteLink creates a pending invite for an owned subscription.
func (s *shareUseCase) CreateInviteLink(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
	expiresInDays int,
) (*sharingDomain.ShareInvite, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	if expiresInDays <= 0 {
		expiresInDays = sharingDomain.DefaultInviteExpiryDays
	}

	token, err := sharingDomain.NewInviteToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	invite := &sharingDomain.ShareInvite{
		ID:             uuid.Must(uuid.NewV7()),
		SubscriptionID: subscription.ID,
		Token:          token,
		ExpiresAt:      now.Add(time.Duration(expiresInDays) * 24 * time.Hour),
		CreatedAt:      now,
	}

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	return invite, nil
}

// GetInviteInfo previews an invite without mutating state.
//
// The check order is part of the contract: not found, already claimed,
// expired, subscription missing. An invite that is both claimed and expired
// reports already claimed.
func (s *shareUseCase) GetInviteInfo(
	ctx context.Context,
	token string,
) (*sharingDomain.InvitePreview, error) {
	invite, subscription, reason, err := s.validateInvite(ctx, token)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &sharingDomain.InvitePreview{Valid: false, Reason: reason}, nil
	}

	return &sharingDomain.InvitePreview{
		Valid:            true,
		SubscriptionName: subscription.Name,
		OwnerName:        s.resolveOwnerName(ctx, subscription.OwnerID),
		Cost:             subscription.Cost,
		Currency:         subscription.Currency,
		BillingCycle:     string(subscription.BillingCycle),
		MaxSlots:         subscription.MaxSlots,
		ExpiresAt:        invite.ExpiresAt,
	}, nil
}

// ClaimInvite validates and claims an invite for the authenticated user.
//
// Re-runs the preview checks in the same order, then rejects self-shares and
// duplicates. The share insert and the invite patch happen in one transaction,
// so a crash cannot leave a share without its claimed invite. A pre-existing
// share with a pending invite (a claim that crashed between writes on an older
// deployment) is reported as already shared rather than duplicated.
func (s *shareUseCase) ClaimInvite(
	ctx context.Context,
	claimerID string,
	token string,
) (*sharingDomain.ClaimResult, error) {
	invite, subscription, reason, err := s.validateInvite(ctx, token)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &sharingDomain.ClaimResult{Success: false, Reason: reason}, nil
	}

	if claimerID == subscription.OwnerID {
		return &sharingDomain.ClaimResult{
			Success: false,
			Reason:  sharingDomain.ReasonSelfShare,
		}, nil
	}

	_, err = s.shareRepo.GetBySubscriptionAndUser(ctx, subscription.ID, claimerID)
	if err == nil {
		return &sharingDomain.ClaimResult{
			Success: false,
			Reason:  sharingDomain.ReasonAlreadyShared,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	share := &sharingDomain.SubscriptionShare{
		ID:             uuid.Must(uuid.NewV7()),
		SubscriptionID: subscription.ID,
		Type:           sharingDomain.ShareTypeUser,
		UserID:         &claimerID,
		IsHidden:       false,
		CreatedAt:      s.clock.Now(),
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.shareRepo.Create(txCtx, share); err != nil {
			return err
		}
		return s.inviteRepo.SetClaimedBy(txCtx, invite.ID, claimerID)
	})
	if err != nil {
		return nil, err
	}

	return &sharingDomain.ClaimResult{
		Success:        true,
		SubscriptionID: subscription.ID,
	}, nil
}

// AddAnonymousShare records a name-only beneficiary on an owned subscription.
func (s *shareUseCase) AddAnonymousShare(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
	name string,
) (*sharingDomain.SubscriptionShare, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	share := &sharingDomain.SubscriptionShare{
		ID:             uuid.Must(uuid.NewV7()),
		SubscriptionID: subscription.ID,
		Type:           sharingDomain.ShareTypeAnonymous,
		Name:           &name,
		IsHidden:       false,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// RemoveShare deletes a share after following it back to its owner.
func (s *shareUseCase) RemoveShare(
	ctx context.Context,
	ownerID string,
	shareID uuid.UUID,
) error {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}

	subscription, err := s.subscriptionRepo.GetByID(ctx, share.SubscriptionID)
	if err != nil {
		return err
	}
	if subscription.OwnerID != ownerID {
		return apperrors.ErrNotFound
	}

	return s.shareRepo.Delete(ctx, share.ID)
}

// ToggleHideShare flips a user share's hidden flag for its beneficiary.
func (s *shareUseCase) ToggleHideShare(
	ctx context.Context,
	beneficiaryID string,
	shareID uuid.UUID,
) (bool, error) {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return false, err
	}

	// An anonymous share has no acting user and cannot hide itself.
	if share.Type != sharingDomain.ShareTypeUser {
		return false, apperrors.Wrap(apperrors.ErrInvalidInput, "anonymous shares cannot be hidden")
	}
	if share.UserID == nil || *share.UserID != beneficiaryID {
		return false, apperrors.ErrNotFound
	}

	newState := !share.IsHidden
	if err := s.shareRepo.UpdateHidden(ctx, share.ID, newState); err != nil {
		return false, err
	}

	return newState, nil
}

// GetSharedWithMe lists the subscriptions shared with a beneficiary.
func (s *shareUseCase) GetSharedWithMe(
	ctx context.Context,
	userID string,
	includeHidden bool,
) ([]*sharingDomain.SharedSubscription, error) {
	shared, err := s.shareRepo.ListByUser(ctx, userID, includeHidden)
	if err != nil {
		return nil, err
	}

	// Resolve owner names once per distinct owner.
	names := make(map[string]string)
	for _, entry := range shared {
		name, ok := names[entry.OwnerID]
		if !ok {
			name = s.resolveOwnerName(ctx, entry.OwnerID)
			names[entry.OwnerID] = name
		}
		entry.OwnerName = name
	}

	return shared, nil
}

// RevokeInvite hard deletes an invite after following it back to its owner.
// Claimed invites can be revoked too, the audit row is simply dropped.
func (s *shareUseCase) RevokeInvite(
	ctx context.Context,
	ownerID string,
	inviteID uuid.UUID,
) error {
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}

	subscription, err := s.subscriptionRepo.GetByID(ctx, invite.SubscriptionID)
	if err != nil {
		return err
	}
	if subscription.OwnerID != ownerID {
		return apperrors.ErrNotFound
	}

	return s.inviteRepo.Delete(ctx, invite.ID)
}

// validateInvite runs the shared preview/claim checks in contract order.
// A non-empty reason means the invite is unusable; err reports store failures.
func (s *shareUseCase) validateInvite(
	ctx context.Context,
	token string,
) (*sharingDomain.ShareInvite, *subscriptionsDomain.Subscription, sharingDomain.ClaimDenialReason, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, sharingDomain.ReasonInviteNotFound, nil
		}
		return nil, nil, "", err
	}

	if invite.ClaimedBy != nil {
		return nil, nil, sharingDomain.ReasonInviteAlreadyClaimed, nil
	}

	if invite.ExpiresAt.Before(s.clock.Now()) {
		return nil, nil, sharingDomain.ReasonInviteExpired, nil
	}

	subscription, err := s.subscriptionRepo.GetByID(ctx, invite.SubscriptionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, sharingDomain.ReasonSubscriptionMissing, nil
		}
		return nil, nil, "", err
	}

	return invite, subscription, "", nil
}

// resolveOwnerName looks up the owner's display name with a fallback.
func (s *shareUseCase) resolveOwnerName(ctx context.Context, ownerID string) string {
	name, err := s.ownerDirectory.GetDisplayName(ctx, ownerID)
	if err != nil || name == "" {
		return unknownOwnerName
	}
	return name
}

// NewShareUseCase creates a share use case with the provided dependencies.
func NewShareUseCase(
	txManager database.TxManager,
	inviteRepo InviteRepository,
	shareRepo ShareRepository,
	subscriptionRepo SubscriptionGetter,
	ownerDirectory OwnerDirectory,
	clock Clock,
) ShareUseCase {
	return &shareUseCase{
		txManager:        txManager,
		inviteRepo:       inviteRepo,
		shareRepo:        shareRepo,
		subscriptionRepo: subscriptionRepo,
		ownerDirectory:   ownerDirectory,
		clock:            clock,
	}
}
