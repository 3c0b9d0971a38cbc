// Package dto provides request and response types for the settings HTTP layer.
package dto

import (
	"github.com/jellydator/validation"
)

// SetAPIKeyRequest represents the payload for storing an API key.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// Validate validates the set API key request fields.
func (r SetAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.APIKey, validation.Required, validation.Length(1, 4096)),
	)
}

// SetDisplayNameRequest represents the payload for storing a display name.
type SetDisplayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// Validate validates the set display name request fields.
func (r SetDisplayNameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required, validation.Length(1, 255)),
	)
}
