package http

import (
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
)

func setupIPRateLimitRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(IPRateLimitMiddleware(rps, burst, logger))
	router.GET("/invites/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestIPRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := setupIPRateLimitRouter(10.0, 20)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestIPRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := setupIPRateLimitRouter(1.0, 2)

	// Burst capacity is consumed first
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Too many requests")
	assert.Contains(t, body, "retryAfter")
}

func TestIPRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := setupIPRateLimitRouter(1.0, 1)

	// IP 1 consumes its limit
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
	req.RemoteAddr = "192.168.1.100:12345"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// IP 1 is now rate limited
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
	req.RemoteAddr = "192.168.1.100:12346" // Different port, same IP
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// IP 2 still has its own independent limit
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invites/abc", nil)
	req.RemoteAddr = "192.168.1.101:12345"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiterStore_CleanupStaleEntries(t *testing.T) {
	store := &ipRateLimiterStore{
		rps:   10.0,
		burst: 20,
	}

	ip := "192.168.1.100"
	limiter := store.getLimiter(ip)
	assert.NotNil(t, limiter)

	// Age the entry past the cleanup threshold
	if val, ok := store.limiters.Load(ip); ok {
		entry := val.(*ipRateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now().Add(-2 * time.Hour)
		entry.mu.Unlock()
	}

	threshold := time.Now().Add(-1 * time.Hour)
	store.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			store.limiters.Delete(key)
		}
		return true
	})

	_, ok := store.limiters.Load(ip)
	assert.False(t, ok)
}
