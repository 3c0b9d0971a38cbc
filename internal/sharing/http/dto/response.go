package dto

import (
	"time"

	"github.com/google/uuid"

	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
)

// InviteResponse represents a created invite in API responses.
type InviteResponse struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	Token          string    `json:"token"`
	URL            string    `json:"url"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MapInviteToResponse converts a domain invite to its API representation.
// inviteURL is the full claimable link built from the public base URL.
func MapInviteToResponse(invite *sharingDomain.ShareInvite, inviteURL string) *InviteResponse {
	return &InviteResponse{
		ID:             invite.ID,
		SubscriptionID: invite.SubscriptionID,
		Token:          invite.Token,
		URL:            inviteURL,
		ExpiresAt:      invite.ExpiresAt,
		CreatedAt:      invite.CreatedAt,
	}
}

// InvitePreviewResponse represents the public preview of an invite.
// Invalid invites still return 200 with Valid false and a Reason so clients
// can render the denial without special casing status codes.
type InvitePreviewResponse struct {
	Valid            bool       `json:"valid"`
	Reason           string     `json:"reason,omitempty"`
	SubscriptionName string     `json:"subscriptionName,omitempty"`
	OwnerName        string     `json:"ownerName,omitempty"`
	Cost             float64    `json:"cost,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	BillingCycle     string     `json:"billingCycle,omitempty"`
	MaxSlots         *int       `json:"maxSlots,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// MapPreviewToResponse converts a domain invite preview to its API representation.
func MapPreviewToResponse(preview *sharingDomain.InvitePreview) *InvitePreviewResponse {
	response := &InvitePreviewResponse{
		Valid:  preview.Valid,
		Reason: string(preview.Reason),
	}
	if preview.Valid {
		response.SubscriptionName = preview.SubscriptionName
		response.OwnerName = preview.OwnerName
		response.Cost = preview.Cost
		response.Currency = preview.Currency
		response.BillingCycle = preview.BillingCycle
		response.MaxSlots = preview.MaxSlots
		expiresAt := preview.ExpiresAt
		response.ExpiresAt = &expiresAt
	}
	return response
}

// ClaimResponse represents the outcome of a claim attempt.
// Denied claims return 200 with Success false and a Reason.
type ClaimResponse struct {
	Success        bool      `json:"success"`
	Reason         string    `json:"reason,omitempty"`
	SubscriptionID uuid.UUID `json:"subscriptionId,omitempty"`
}

// MapClaimToResponse converts a domain claim result to its API representation.
func MapClaimToResponse(result *sharingDomain.ClaimResult) *ClaimResponse {
	return &ClaimResponse{
		Success:        result.Success,
		Reason:         string(result.Reason),
		SubscriptionID: result.SubscriptionID,
	}
}

// ShareResponse represents a share in API responses.
type ShareResponse struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	Type           string    `json:"type"`
	UserID         *string   `json:"userId,omitempty"`
	Name           *string   `json:"name,omitempty"`
	IsHidden       bool      `json:"isHidden"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MapShareToResponse converts a domain share to its API representation.
func MapShareToResponse(share *sharingDomain.SubscriptionShare) *ShareResponse {
	return &ShareResponse{
		ID:             share.ID,
		SubscriptionID: share.SubscriptionID,
		Type:           string(share.Type),
		UserID:         share.UserID,
		Name:           share.Name,
		IsHidden:       share.IsHidden,
		CreatedAt:      share.CreatedAt,
	}
}

// ToggleHideResponse reports the new hidden state after a toggle.
type ToggleHideResponse struct {
	IsHidden bool `json:"isHidden"`
}

// SharedSubscriptionResponse represents one shared-with-me entry.
type SharedSubscriptionResponse struct {
	ShareID          uuid.UUID `json:"shareId"`
	SubscriptionID   uuid.UUID `json:"subscriptionId"`
	SubscriptionName string    `json:"subscriptionName"`
	OwnerName        string    `json:"ownerName"`
	Cost             float64   `json:"cost"`
	Currency         string    `json:"currency"`
	BillingCycle     string    `json:"billingCycle"`
	IsHidden         bool      `json:"isHidden"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SharedWithMeResponse represents the shared-with-me listing.
type SharedWithMeResponse struct {
	Shared []*SharedSubscriptionResponse `json:"shared"`
}

// MapSharedToListResponse converts shared-with-me entries to their API representation.
func MapSharedToListResponse(shared []*sharingDomain.SharedSubscription) *SharedWithMeResponse {
	responses := make([]*SharedSubscriptionResponse, len(shared))
	for i, entry := range shared {
		responses[i] = &SharedSubscriptionResponse{
			ShareID:          entry.ShareID,
			SubscriptionID:   entry.SubscriptionID,
			SubscriptionName: entry.SubscriptionName,
			OwnerName:        entry.OwnerName,
			Cost:             entry.Cost,
			Currency:         entry.Currency,
			BillingCycle:     entry.BillingCycle,
			IsHidden:         entry.IsHidden,
			CreatedAt:        entry.CreatedAt,
		}
	}
	return &SharedWithMeResponse{Shared: responses}
}

// ROIResponse reports seat utilization for a subscription.
type ROIResponse struct {
	HasSlots     bool    `json:"hasSlots"`
	MaxSlots     int     `json:"maxSlots"`
	UsedSlots    int     `json:"usedSlots"`
	UnusedSlots  int     `json:"unusedSlots"`
	CostPerSlot  float64 `json:"costPerSlot"`
	WastedAmount float64 `json:"wastedAmount"`
	Currency     string  `json:"currency"`
}

// MapROIToResponse converts a domain ROI report to its API representation.
func MapROIToResponse(roi *sharingDomain.SubscriptionROI) *ROIResponse {
	return &ROIResponse{
		HasSlots:     roi.HasSlots,
		MaxSlots:     roi.MaxSlots,
		UsedSlots:    roi.UsedSlots,
		UnusedSlots:  roi.UnusedSlots,
		CostPerSlot:  roi.CostPerSlot,
		WastedAmount: roi.WastedAmount,
		Currency:     roi.Currency,
	}
}
