// Package http provides rate limiting middleware for the API server.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	apperrors "github.com/allisson/subtrack/internal/errors"
	"github.com/allisson/subtrack/internal/httputil"
	ratelimitDomain "github.com/allisson/subtrack/internal/ratelimit/domain"
	ratelimitUseCase "github.com/allisson/subtrack/internal/ratelimit/usecase"
)

// RateLimitMiddleware enforces the durable fixed-window limit for one named operation.
//
// MUST be used after AuthenticationMiddleware. The authenticated user ID is the
// limit identifier, so the limit follows the user across instances and restarts.
//
// On every allowed request the middleware sets X-RateLimit-Remaining and
// X-RateLimit-Reset headers. A denied request gets 429 with a Retry-After
// header rounded up to whole seconds.
//
// Counter store failures fail open with a warning. The limiter protects
// against abuse, it must not turn a store outage into a full API outage.
func RateLimitMiddleware(
	op ratelimitDomain.Operation,
	useCase ratelimitUseCase.UseCase,
	enabled bool,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		userID, ok := authHTTP.GetUserID(c.Request.Context())
		if !ok || userID == "" {
			// Should never happen - authentication middleware should have caught this
			logger.Error("rate limit middleware: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		result, err := useCase.Check(c.Request.Context(), op, userID)
		if err != nil {
			logger.Warn("rate limit check failed, allowing request",
				slog.String("operation", string(op)),
				slog.String("user_id", userID),
				slog.Any("error", err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			rlErr := ratelimitDomain.NewRateLimitError(result.ResetAt, result.Remaining, time.Now())

			logger.Debug("rate limit exceeded",
				slog.String("operation", string(op)),
				slog.String("user_id", userID),
				slog.Int("retry_after", rlErr.RetryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", rlErr.RetryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      rlErr.Error(),
				"retryAfter": rlErr.RetryAfter,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
