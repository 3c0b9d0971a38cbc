// Package http provides HTTP handlers for user credentials and profile settings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	"github.com/allisson/subtrack/internal/credentials/http/dto"
	credentialsUseCase "github.com/allisson/subtrack/internal/credentials/usecase"
	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/httputil"
	customValidation "github.com/allisson/subtrack/internal/validation"
)

// SettingsHandler handles HTTP requests for settings operations.
type SettingsHandler struct {
	credentialsUseCase credentialsUseCase.CredentialsUseCase
	logger             *slog.Logger
}

// NewSettingsHandler creates a new settings handler with required dependencies.
func NewSettingsHandler(
	credentialsUseCase credentialsUseCase.CredentialsUseCase,
	logger *slog.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		credentialsUseCase: credentialsUseCase,
		logger:             logger,
	}
}

// GetSettingsHandler returns the authenticated user's profile view.
// GET /v1/settings - Returns 200 OK.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	settings, err := h.credentialsUseCase.GetSettings(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}

// SetDisplayNameHandler stores the authenticated user's display name.
// PUT /v1/settings/display-name - Returns 204 No Content.
func (h *SettingsHandler) SetDisplayNameHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.SetDisplayNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.credentialsUseCase.SetDisplayName(c.Request.Context(), userID, req.DisplayName); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// SetAPIKeyHandler encrypts and stores the authenticated user's API key.
// PUT /v1/settings/api-key - Returns 204 No Content.
func (h *SettingsHandler) SetAPIKeyHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.SetAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.credentialsUseCase.SetAPIKey(c.Request.Context(), userID, req.APIKey); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// GetAPIKeyHandler decrypts and returns the authenticated user's API key.
// GET /v1/settings/api-key - Returns 200 OK.
func (h *SettingsHandler) GetAPIKeyHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	apiKey, err := h.credentialsUseCase.GetAPIKey(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.APIKeyResponse{APIKey: apiKey})
}
