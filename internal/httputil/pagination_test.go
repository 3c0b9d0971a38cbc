package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)

	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(t, ""))

		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("explicit values", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(t, "offset=10&limit=25"))

		require.NoError(t, err)
		assert.Equal(t, 10, offset)
		assert.Equal(t, 25, limit)
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "offset=-1"))
		assert.Error(t, err)
	})

	t.Run("limit above maximum rejected", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "limit=101"))
		assert.Error(t, err)
	})

	t.Run("non-numeric values rejected", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "offset=abc"))
		assert.Error(t, err)
	})
}
