package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	credentialsDomain "github.com/allisson/subtrack/internal/credentials/domain"
	apperrors "github.com/allisson/subtrack/internal/errors"
)

// fakeCredentialsUseCase returns canned values for handler tests.
type fakeCredentialsUseCase struct {
	settings *credentialsDomain.UserSettings
	apiKey   string
	err      error

	setAPIKeyCalls      []string
	setDisplayNameCalls []string
}

func (f *fakeCredentialsUseCase) SetAPIKey(ctx context.Context, userID string, apiKey string) error {
	f.setAPIKeyCalls = append(f.setAPIKeyCalls, apiKey)
	return f.err
}

func (f *fakeCredentialsUseCase) GetAPIKey(ctx context.Context, userID string) (string, error) {
	return f.apiKey, f.err
}

func (f *fakeCredentialsUseCase) SetDisplayName(ctx context.Context, userID string, displayName string) error {
	f.setDisplayNameCalls = append(f.setDisplayNameCalls, displayName)
	return f.err
}

func (f *fakeCredentialsUseCase) GetDisplayName(ctx context.Context, userID string) (string, error) {
	if f.settings == nil || f.settings.DisplayName == "" {
		return "", apperrors.ErrNotFound
	}
	return f.settings.DisplayName, nil
}

func (f *fakeCredentialsUseCase) GetSettings(ctx context.Context, userID string) (*credentialsDomain.UserSettings, error) {
	return f.settings, f.err
}

func setupSettingsRouter(useCase *fakeCredentialsUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := NewSettingsHandler(useCase, logger)

	router := gin.New()
	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(authHTTP.WithUserID(c.Request.Context(), userID))
			c.Next()
		})
	}

	v1 := router.Group("/v1")
	v1.GET("/settings", handler.GetSettingsHandler)
	v1.PUT("/settings/display-name", handler.SetDisplayNameHandler)
	v1.PUT("/settings/api-key", handler.SetAPIKeyHandler)
	v1.GET("/settings/api-key", handler.GetAPIKeyHandler)

	return router
}

func TestGetSettingsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		useCase := &fakeCredentialsUseCase{
			settings: &credentialsDomain.UserSettings{
				UserID:          "user123",
				DisplayName:     "Alice",
				EncryptedAPIKey: "blob",
			},
		}
		router := setupSettingsRouter(useCase, "user123")

		req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert - the encrypted blob never leaves the server
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"displayName": "Alice", "hasApiKey": true}`, w.Body.String())
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		router := setupSettingsRouter(&fakeCredentialsUseCase{}, "")

		req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSetDisplayNameHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		useCase := &fakeCredentialsUseCase{}
		router := setupSettingsRouter(useCase, "user123")

		body := bytes.NewBufferString(`{"displayName": "Alice"}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/settings/display-name", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"Alice"}, useCase.setDisplayNameCalls)
	})

	t.Run("BlankName", func(t *testing.T) {
		// Arrange
		router := setupSettingsRouter(&fakeCredentialsUseCase{}, "user123")

		body := bytes.NewBufferString(`{"displayName": ""}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/settings/display-name", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAPIKeyHandlers(t *testing.T) {
	t.Run("SetAPIKey_Success", func(t *testing.T) {
		// Arrange
		useCase := &fakeCredentialsUseCase{}
		router := setupSettingsRouter(useCase, "user123")

		body := bytes.NewBufferString(`{"apiKey": "sk-live-abc"}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/settings/api-key", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"sk-live-abc"}, useCase.setAPIKeyCalls)
	})

	t.Run("SetAPIKey_BlankKey", func(t *testing.T) {
		// Arrange
		router := setupSettingsRouter(&fakeCredentialsUseCase{}, "user123")

		body := bytes.NewBufferString(`{"apiKey": ""}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/settings/api-key", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("GetAPIKey_Success", func(t *testing.T) {
		// Arrange
		router := setupSettingsRouter(&fakeCredentialsUseCase{apiKey: "sk-live-abc"}, "user123")

		req := httptest.NewRequest(http.MethodGet, "/v1/settings/api-key", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "sk-live-abc", response["apiKey"])
	})

	t.Run("GetAPIKey_NeverStored", func(t *testing.T) {
		// Arrange
		router := setupSettingsRouter(&fakeCredentialsUseCase{err: apperrors.ErrNotFound}, "user123")

		req := httptest.NewRequest(http.MethodGet, "/v1/settings/api-key", nil)
		w := httptest.NewRecorder()

		// Act
		router.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
