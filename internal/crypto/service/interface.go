// Package service provides cryptographic services for envelope encryption.
// Implements AES-256-GCM encryption of short secrets under a two-slot keychain
// with lazy key rotation support.
package service

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// Cipher defines the interface for envelope encryption of stored secrets.
//
// Blobs are self-describing (see crypto/domain.EncryptedBlob), so Decrypt can
// select the right key slot and NeedsReEncryption can flag blobs that should
// be migrated to the current key opportunistically on read.
type Cipher interface {
	// Encrypt encrypts plaintext under the current key with a fresh nonce and
	// returns the serialized blob.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt decodes a blob, selects the matching key, and returns the plaintext.
	Decrypt(blob string) ([]byte, error)

	// NeedsReEncryption reports whether the blob was produced under the
	// previous key or predates versioning, and should be migrated to the
	// current key.
	NeedsReEncryption(blob string) bool

	// ReEncrypt decrypts a blob and re-encrypts it with a fresh nonce under
	// the current key.
	ReEncrypt(blob string) (string, error)
}
