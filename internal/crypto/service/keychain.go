package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/allisson/subtrack/internal/crypto/domain"
)

// KeychainConfig holds the key material for the two-slot keychain.
//
// Keys are injected explicitly rather than read from the process environment,
// so tests can supply deterministic keys without mutating global state.
type KeychainConfig struct {
	// CurrentKey is the active encryption key string. Required.
	CurrentKey string
	// PreviousKey is the prior encryption key string, set only during rotation
	// windows so blobs written under it can still be decrypted.
	PreviousKey string
}

// Keychain implements the Cipher interface over a current and an optional
// previous AES-256-GCM key.
//
// Encryption always targets the current key. Decryption selects the key slot
// recorded in the blob header, falling back to the current key for legacy
// blobs. Rotation completes lazily: callers check NeedsReEncryption on read
// and persist the ReEncrypt result, one record at a time, instead of running
// a blocking migration.
type Keychain struct {
	current  *AESGCMCipher
	previous *AESGCMCipher
}

// NewKeychain creates a Keychain from the given configuration.
//
// Each key string is interpreted as exactly 64 hexadecimal characters
// decoding to a raw 32-byte key; any other string is digested with SHA-256 to
// derive a deterministic 32-byte key. CurrentKey is required.
func NewKeychain(cfg KeychainConfig) (*Keychain, error) {
	if cfg.CurrentKey == "" {
		return nil, fmt.Errorf("%w: current key is required", cryptoDomain.ErrKeyNotConfigured)
	}

	current, err := NewAESGCM(DeriveKey(cfg.CurrentKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build current key cipher: %w", err)
	}

	keychain := &Keychain{current: current}

	if cfg.PreviousKey != "" {
		previous, err := NewAESGCM(DeriveKey(cfg.PreviousKey))
		if err != nil {
			return nil, fmt.Errorf("failed to build previous key cipher: %w", err)
		}
		keychain.previous = previous
	}

	return keychain, nil
}

// DeriveKey converts a configured key string into a raw 32-byte key.
//
// A string of exactly 64 hexadecimal characters decodes to the raw key bytes;
// anything else is hashed with SHA-256.
func DeriveKey(key string) []byte {
	if len(key) == 64 {
		if raw, err := hex.DecodeString(key); err == nil {
			return raw
		}
	}
	digest := sha256.Sum256([]byte(key))
	return digest[:]
}

// Encrypt encrypts plaintext under the current key and serializes the
// versioned blob.
func (k *Keychain) Encrypt(plaintext []byte) (string, error) {
	ciphertext, nonce, err := k.current.Encrypt(plaintext, nil)
	if err != nil {
		return "", err
	}
	return cryptoDomain.EncodeEncryptedBlob(cryptoDomain.SlotCurrent, nonce, ciphertext), nil
}

// Decrypt decodes the blob, selects the key slot it references, and returns
// the plaintext. Fails with ErrDecryptionFailed when the base64 is malformed,
// the referenced key slot is not configured, or GCM authentication fails.
func (k *Keychain) Decrypt(blob string) ([]byte, error) {
	parsed, err := cryptoDomain.ParseEncryptedBlob(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}

	cipher, err := k.cipherFor(parsed.Slot)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(parsed.Ciphertext, parsed.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// NeedsReEncryption reports whether the blob should be migrated to the
// current key: true for blobs under the previous key and for legacy blobs
// that predate versioning. Malformed blobs report false; Decrypt surfaces the
// failure instead.
func (k *Keychain) NeedsReEncryption(blob string) bool {
	parsed, err := cryptoDomain.ParseEncryptedBlob(blob)
	if err != nil {
		return false
	}
	return parsed.Legacy || parsed.Slot == cryptoDomain.SlotPrevious
}

// ReEncrypt decrypts the blob and re-encrypts it with a fresh nonce under the
// current key.
func (k *Keychain) ReEncrypt(blob string) (string, error) {
	plaintext, err := k.Decrypt(blob)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(plaintext)

	return k.Encrypt(plaintext)
}

// cipherFor returns the cipher for a key slot, or ErrKeyNotConfigured wrapped
// as a decryption failure when the slot has no key.
func (k *Keychain) cipherFor(slot cryptoDomain.KeySlot) (*AESGCMCipher, error) {
	switch slot {
	case cryptoDomain.SlotCurrent:
		return k.current, nil
	case cryptoDomain.SlotPrevious:
		if k.previous == nil {
			return nil, fmt.Errorf(
				"%w: %v",
				cryptoDomain.ErrDecryptionFailed,
				cryptoDomain.ErrKeyNotConfigured,
			)
		}
		return k.previous, nil
	default:
		return nil, fmt.Errorf("%w: unknown key slot %d", cryptoDomain.ErrDecryptionFailed, slot)
	}
}
