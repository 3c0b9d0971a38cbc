package domain

import (
	"github.com/allisson/subtrack/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrInvalidBlob indicates the encrypted blob cannot be parsed.
	//
	// This error is returned when the base64 encoding is malformed or the
	// decoded payload is too short to contain a nonce and authentication tag.
	ErrInvalidBlob = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob")

	// ErrKeyNotConfigured indicates the blob references a key slot with no
	// configured key (e.g., a previous-key blob after the rotation window closed).
	ErrKeyNotConfigured = errors.Wrap(errors.ErrInvalidInput, "encryption key not configured")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Corrupted encrypted data
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers. It must never be silently
	// swallowed, since a masked failure could hide tampering.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
