// Package http provides HTTP handlers for the invite and share workflow.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/httputil"
	sharingDomain "github.com/allisson/subtrack/internal/sharing/domain"
	"github.com/allisson/subtrack/internal/sharing/http/dto"
	sharingUseCase "github.com/allisson/subtrack/internal/sharing/usecase"
	customValidation "github.com/allisson/subtrack/internal/validation"
)

// qrCodeSize is the pixel width of generated invite QR codes.
const qrCodeSize = 256

// ShareHandler handles HTTP requests for invites, shares and seat reporting.
type ShareHandler struct {
	shareUseCase  sharingUseCase.ShareUseCase
	roiUseCase    sharingUseCase.ROIUseCase
	inviteBaseURL string
	logger        *slog.Logger
}

// NewShareHandler creates a new share handler with required dependencies.
// inviteBaseURL is the public base URL used to build claimable invite links.
func NewShareHandler(
	shareUseCase sharingUseCase.ShareUseCase,
	roiUseCase sharingUseCase.ROIUseCase,
	inviteBaseURL string,
	logger *slog.Logger,
) *ShareHandler {
	return &ShareHandler{
		shareUseCase:  shareUseCase,
		roiUseCase:    roiUseCase,
		inviteBaseURL: strings.TrimSuffix(inviteBaseURL, "/"),
		logger:        logger,
	}
}

// inviteURL builds the claimable link for an invite token.
func (h *ShareHandler) inviteURL(token string) string {
	return h.inviteBaseURL + "/invites/" + token
}

// CreateInviteHandler creates an invite link for an owned subscription.
// POST /v1/subscriptions/:id/invites - Returns 201 Created.
func (h *ShareHandler) CreateInviteHandler(c *gin.Context) {
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

	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	invite, err := h.shareUseCase.CreateInviteLink(c.Request.Context(), userID, subscriptionID, req.ExpiresInDays)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapInviteToResponse(invite, h.inviteURL(invite.Token)))
}

// GetInviteInfoHandler previews an invite for a prospective claimer.
// Public endpoint. Invalid invites still return 200 with a denial reason.
// GET /v1/invites/:token - Returns 200 OK.
func (h *ShareHandler) GetInviteInfoHandler(c *gin.Context) {
	preview, err := h.shareUseCase.GetInviteInfo(c.Request.Context(), c.Param("token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPreviewToResponse(preview))
}

// InviteQRCodeHandler renders the claimable invite link as a PNG QR code.
// Public endpoint. Unknown tokens return 404, other denials still render
// since the link itself stays shareable.
// GET /v1/invites/:token/qrcode - Returns 200 OK with image/png.
func (h *ShareHandler) InviteQRCodeHandler(c *gin.Context) {
	token := c.Param("token")

	preview, err := h.shareUseCase.GetInviteInfo(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if !preview.Valid && preview.Reason == sharingDomain.ReasonInviteNotFound {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	png, err := qrcode.Encode(h.inviteURL(token), qrcode.Medium, qrCodeSize)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to encode qr code"), h.logger)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ClaimInviteHandler claims an invite for the authenticated user.
// Denied claims return 200 with success false and a reason.
// POST /v1/invites/:token/claim - Returns 200 OK.
func (h *ShareHandler) ClaimInviteHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	result, err := h.shareUseCase.ClaimInvite(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClaimToResponse(result))
}

// RevokeInviteHandler hard deletes an invite on an owned subscription.
// DELETE /v1/invites/:id - Returns 204 No Content.
func (h *ShareHandler) RevokeInviteHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	if err := h.shareUseCase.RevokeInvite(c.Request.Context(), userID, inviteID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AddAnonymousShareHandler records a name-only beneficiary on an owned subscription.
// POST /v1/subscriptions/:id/shares - Returns 201 Created.
func (h *ShareHandler) AddAnonymousShareHandler(c *gin.Context) {
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

	var req dto.AddAnonymousShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	share, err := h.shareUseCase.AddAnonymousShare(c.Request.Context(), userID, subscriptionID, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapShareToResponse(share))
}

// RemoveShareHandler deletes a share on an owned subscription.
// DELETE /v1/shares/:id - Returns 204 No Content.
func (h *ShareHandler) RemoveShareHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	shareID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	if err := h.shareUseCase.RemoveShare(c.Request.Context(), userID, shareID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ToggleHideShareHandler flips the hidden flag on a share received by the
// authenticated user.
// POST /v1/shares/:id/hide - Returns 200 OK with the new state.
func (h *ShareHandler) ToggleHideShareHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	shareID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	isHidden, err := h.shareUseCase.ToggleHideShare(c.Request.Context(), userID, shareID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleHideResponse{IsHidden: isHidden})
}

// SharedWithMeHandler lists the subscriptions shared with the authenticated user.
// GET /v1/shared-with-me?includeHidden=true - Returns 200 OK.
func (h *ShareHandler) SharedWithMeHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	includeHidden := c.Query("includeHidden") == "true"

	shared, err := h.shareUseCase.GetSharedWithMe(c.Request.Context(), userID, includeHidden)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSharedToListResponse(shared))
}

// SubscriptionROIHandler reports seat utilization for an owned subscription.
// GET /v1/subscriptions/:id/roi - Returns 200 OK.
func (h *ShareHandler) SubscriptionROIHandler(c *gin.Context) {
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

	roi, err := h.roiUseCase.GetSubscriptionROI(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapROIToResponse(roi))
}
