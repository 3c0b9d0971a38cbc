// Package dto provides request and response types for the sharing HTTP layer.
package dto

import (
	"github.com/jellydator/validation"
)

// CreateInviteRequest represents the payload for creating an invite link.
// ExpiresInDays of zero selects the default invite lifetime.
type CreateInviteRequest struct {
	ExpiresInDays int `json:"expiresInDays"`
}

// Validate validates the create invite request fields.
func (r CreateInviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ExpiresInDays, validation.Min(0), validation.Max(365)),
	)
}

// AddAnonymousShareRequest represents the payload for recording a name-only
// beneficiary.
type AddAnonymousShareRequest struct {
	Name string `json:"name"`
}

// Validate validates the anonymous share request fields.
func (r AddAnonymousShareRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}
