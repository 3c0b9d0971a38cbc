package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	"github.com/allisson/subtrack/internal/ratelimit/domain"
)

// fakeUseCase returns canned results for middleware tests.
type fakeUseCase struct {
	result domain.Result
	err    error
	calls  int
}

func (f *fakeUseCase) Check(
	ctx context.Context,
	op domain.Operation,
	identifier string,
) (domain.Result, error) {
	f.calls++
	return f.result, f.err
}

func setupRateLimitRouter(useCase *fakeUseCase, enabled bool, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	if userID != "" {
		router.Use(func(c *gin.Context) {
			ctx := authHTTP.WithUserID(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
	router.Use(RateLimitMiddleware(domain.OperationMutations, useCase, enabled, logger))
	router.POST("/subscriptions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	resetAt := time.Now().Add(45 * time.Second)

	t.Run("AllowedRequest_SetsHeaders", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{result: domain.Result{Allowed: true, Remaining: 42, ResetAt: resetAt}}
		router := setupRateLimitRouter(useCase, true, "user123")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
		assert.Equal(t, 1, useCase.calls)
	})

	t.Run("DeniedRequest_Returns429", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{result: domain.Result{Allowed: false, Remaining: 0, ResetAt: resetAt}}
		router := setupRateLimitRouter(useCase, true, "user123")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "rate limit exceeded, retry in")
		assert.InDelta(t, 45, body["retryAfter"], 1)
	})

	t.Run("StoreError_FailsOpen", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{err: assert.AnError}
		router := setupRateLimitRouter(useCase, true, "user123")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Disabled_SkipsCheck", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{result: domain.Result{Allowed: false}}
		router := setupRateLimitRouter(useCase, false, "user123")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, useCase.calls)
	})

	t.Run("NoAuthenticatedUser_Returns401", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{result: domain.Result{Allowed: true}}
		router := setupRateLimitRouter(useCase, true, "")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 0, useCase.calls)
	})

	t.Run("RetryAfter_RoundedUpToWholeSeconds", func(t *testing.T) {
		// Arrange
		useCase := &fakeUseCase{result: domain.Result{
			Allowed: false,
			ResetAt: time.Now().Add(1500 * time.Millisecond),
		}}
		router := setupRateLimitRouter(useCase, true, "user123")
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})
}
