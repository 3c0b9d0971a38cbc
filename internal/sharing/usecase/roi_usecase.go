package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/subtrack/internal/errors"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// roiUseCase implements the ROIUseCase interface.
type roiUseCase struct {
	shareRepo        ShareRepository
	subscriptionRepo SubscriptionGetter
}

// GetSubscriptionROI computes seat utilization for an owned subscription.
func (r *roiUseCase) GetSubscriptionROI(
	ctx context.Context,
	ownerID string,
	subscriptionID uuid.UUID,
) (*sharingDomain.SubscriptionROI, error) {
	subscription, err := r.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	shareCount, err := r.shareRepo.CountBySubscriptionID(ctx, subscription.ID)
	if err != nil {
		return nil, err
	}

	roi := sharingDomain.ComputeROI(subscription.Cost, subscription.Currency, subscription.MaxSlots, shareCount)
	return &roi, nil
}

// NewROIUseCase creates an ROI use case with the provided dependencies.
func NewROIUseCase(shareRepo ShareRepository, subscriptionRepo SubscriptionGetter) ROIUseCase {
	return &roiUseCase{
		shareRepo:        shareRepo,
		subscriptionRepo: subscriptionRepo,
	}
}
