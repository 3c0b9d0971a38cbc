package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/subtrack/internal/database"
	apperrors "github.com/allisson/subtrack/internal/errors"
	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
)

// subscriptionUseCase implements the SubscriptionUseCase interface.
type subscriptionUseCase struct {
	txManager        database.TxManager
	subscriptionRepo SubscriptionRepository
	shareRepo        ShareCascadeRepository
	inviteRepo       InviteCascadeRepository
}

// Create persists a new subscription for the owner.
func (s *subscriptionUseCase) Create(
	ctx context.Context,
	ownerID string,
	input SubscriptionInput,
) (*subscriptionsDomain.Subscription, error) {
	if !subscriptionsDomain.KnownBillingCycle(input.BillingCycle) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown billing cycle")
	}

	now := time.Now().UTC()
	subscription := &subscriptionsDomain.Subscription{
		ID:           uuid.Must(uuid.NewV7()),
		OwnerID:      ownerID,
		Name:         input.Name,
		Cost:         input.Cost,
		Currency:     input.Currency,
		BillingCycle: input.BillingCycle,
		MaxSlots:     input.MaxSlots,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	return subscription, nil
}

// Get retrieves an owned subscription by its ID.
func (s *subscriptionUseCase) Get(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
) (*subscriptionsDomain.Subscription, error) {
	return s.getOwned(ctx, ownerID, subscriptionID)
}

// List retrieves the owner's subscriptions with pagination.
func (s *subscriptionUseCase) List(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*subscriptionsDomain.Subscription, error) {
	return s.subscriptionRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// Update replaces the mutable fields of an owned subscription.
func (s *subscriptionUseCase) Update(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
	input SubscriptionInput,
) (*subscriptionsDomain.Subscription, error) {
	if !subscriptionsDomain.KnownBillingCycle(input.BillingCycle) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown billing cycle")
	}

	subscription, err := s.getOwned(ctx, ownerID, subscriptionID)
	if err != nil {
		return nil, err
	}

	subscription.Name = input.Name
	subscription.Cost = input.Cost
	subscription.Currency = input.Currency
	subscription.BillingCycle = input.BillingCycle
	subscription.MaxSlots = input.MaxSlots
	subscription.UpdatedAt = time.Now().UTC()

	if err := s.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}

	return subscription, nil
}

// Delete removes an owned subscription together with its shares and invites.
func (s *subscriptionUseCase) Delete(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
) error {
	subscription, err := s.getOwned(ctx, ownerID, subscriptionID)
	if err != nil {
		return err
	}

	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.shareRepo.DeleteBySubscriptionID(txCtx, subscription.ID); err != nil {
			return err
		}
		if err := s.inviteRepo.DeleteBySubscriptionID(txCtx, subscription.ID); err != nil {
			return err
		}
		return s.subscriptionRepo.Delete(txCtx, subscription.ID)
	})
}

// getOwned fetches a subscription and hides foreign rows behind ErrNotFound.
func (s *subscriptionUseCase) getOwned(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
) (*subscriptionsDomain.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return subscription, nil
}

// NewSubscriptionUseCase creates a subscription use case with the provided dependencies.
func NewSubscriptionUseCase(
	txManager database.TxManager,
	subscriptionRepo SubscriptionRepository,
	shareRepo ShareCascadeRepository,
	inviteRepo InviteCascadeRepository,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		shareRepo:        shareRepo,
		inviteRepo:       inviteRepo,
	}
}
