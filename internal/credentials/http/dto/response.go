package dto

import (
	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
)

// SettingsResponse represents the user's profile view.
// The API key itself is never included, only whether one is stored.
type SettingsResponse struct {
	DisplayName string `json:"displayName"`
	HasAPIKey   bool   `json:"hasApiKey"`
}

// MapSettingsToResponse converts domain settings to their API representation.
func MapSettingsToResponse(settings *credentialsDomain.UserSettings) *SettingsResponse {
	return &SettingsResponse{
		DisplayName: settings.DisplayName,
		HasAPIKey:   settings.EncryptedAPIKey != "",
	}
}

// APIKeyResponse carries the decrypted API key back to its owner.
type APIKeyResponse struct {
	APIKey string `json:"apiKey"`
}
