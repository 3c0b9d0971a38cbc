package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("NewProvider", func(t *testing.T) {
		provider, err := NewProvider("subtrack")
		require.NoError(t, err)
		defer func() { _ = provider.Shutdown(context.Background()) }()

		assert.NotNil(t, provider.MeterProvider())
		assert.NotNil(t, provider.Handler())
	})

	t.Run("HandlerServesPrometheusFormat", func(t *testing.T) {
		provider, err := NewProvider("subtrack")
		require.NoError(t, err)
		defer func() { _ = provider.Shutdown(context.Background()) }()

		metrics, err := NewBusinessMetrics(provider.MeterProvider(), "subtrack")
		require.NoError(t, err)
		metrics.RecordOperation(context.Background(), "sharing", "invite_create", "success")
		metrics.RecordDuration(context.Background(), "sharing", "invite_create", 25*time.Millisecond, "success")

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		provider.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "subtrack_operations_total")
	})
}

func TestNoOpBusinessMetrics(t *testing.T) {
	metrics := NewNoOpBusinessMetrics()

	// Must not panic
	metrics.RecordOperation(context.Background(), "sharing", "invite_create", "success")
	metrics.RecordDuration(context.Background(), "sharing", "invite_create", time.Second, "error")
}
