// Package domain defines core domain models for envelope encryption.
package domain

// KeySlot identifies which configured key a blob was encrypted under.
//
// Two slots exist: the current key (always configured) and the previous key
// (configured only during rotation windows). The slot identifier is persisted
// as the second byte of every versioned blob so that decryption can select
// the right key without trial decryption.
type KeySlot byte

const (
	// BlobVersion is the envelope layout version written as the first byte of
	// every versioned blob. Blobs persisted before versioning carry no header
	// at all and are detected heuristically (see ParseEncryptedBlob).
	BlobVersion byte = 0x01

	// SlotCurrent identifies the current encryption key.
	SlotCurrent KeySlot = 0x01

	// SlotPrevious identifies the previous encryption key, valid only during
	// key rotation windows.
	SlotPrevious KeySlot = 0x02

	// NonceSize is the AES-GCM nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length in bytes, appended to
	// the ciphertext by the AEAD.
	TagSize = 16

	// headerSize is the length of the version and key slot prefix.
	headerSize = 2
)

// KnownSlot reports whether b is a recognized key slot identifier.
func KnownSlot(b byte) bool {
	return KeySlot(b) == SlotCurrent || KeySlot(b) == SlotPrevious
}
