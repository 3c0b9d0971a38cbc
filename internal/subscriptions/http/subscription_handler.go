// Package http provides HTTP handlers for subscription management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/httputil"
	"github.com/allisson/subtrack/internal/subscriptions/http/dto"
	subscriptionsUseCase "github.com/allisson/subtrack/internal/subscriptions/usecase"
	customValidation "github.com/allisson/subtrack/internal/validation"
)

// SubscriptionHandler handles HTTP requests for subscription management operations.
type SubscriptionHandler struct {
	subscriptionUseCase subscriptionsUseCase.SubscriptionUseCase
	logger              *slog.Logger
}

// NewSubscriptionHandler creates a new subscription handler with required dependencies.
func NewSubscriptionHandler(
	subscriptionUseCase subscriptionsUseCase.SubscriptionUseCase,
	logger *slog.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// CreateHandler creates a new subscription for the authenticated user.
// POST /v1/subscriptions - Returns 201 Created.
func (h *SubscriptionHandler) CreateHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	subscription, err := h.subscriptionUseCase.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSubscriptionToResponse(subscription))
}

// GetHandler retrieves an owned subscription by its ID.
// GET /v1/subscriptions/:id - Returns 200 OK.
func (h *SubscriptionHandler) GetHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	subscription, err := h.subscriptionUseCase.Get(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionToResponse(subscription))
}

// ListHandler retrieves the authenticated user's subscriptions with pagination.
// GET /v1/subscriptions?offset=0&limit=50 - Returns 200 OK.
func (h *SubscriptionHandler) ListHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	subscriptions, err := h.subscriptionUseCase.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionsToListResponse(subscriptions, offset, limit))
}

// UpdateHandler replaces the mutable fields of an owned subscription.
// PUT /v1/subscriptions/:id - Returns 200 OK.
func (h *SubscriptionHandler) UpdateHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	subscription, err := h.subscriptionUseCase.Update(c.Request.Context(), userID, subscriptionID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionToResponse(subscription))
}

// DeleteHandler removes an owned subscription and cascades its shares and invites.
// DELETE /v1/subscriptions/:id - Returns 204 No Content.
func (h *SubscriptionHandler) DeleteHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	if err := h.subscriptionUseCase.Delete(c.Request.Context(), userID, subscriptionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
