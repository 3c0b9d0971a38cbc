// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"
)

// userIDKey is a context key type for storing authenticated user IDs.
type userIDKey struct{}

// WithUserID stores an authenticated user ID in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID retrieves an authenticated user ID from the context.
// Returns (userID, true) if a user is present, or ("", false) if no user was set.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
