package domain

import (
	"encoding/base64"
	"fmt"
)

// EncryptedBlob represents a parsed envelope encryption blob.
//
// The versioned wire layout is:
//
//	version(1) ‖ keySlot(1) ‖ nonce(12) ‖ ciphertext+tag
//
// serialized with standard base64. Blobs persisted before versioning carry no
// header: the nonce sits at offset 0 and the data is assumed encrypted under
// the current key. Such blobs are marked Legacy.
type EncryptedBlob struct {
	// Slot identifies the key the blob was encrypted under. Always SlotCurrent
	// for legacy blobs.
	Slot KeySlot
	// Nonce is the 12-byte random value used during AEAD encryption.
	Nonce []byte
	// Ciphertext is the encrypted payload with the authentication tag appended.
	Ciphertext []byte
	// Legacy marks blobs without the version/keySlot prefix.
	Legacy bool
}

// ParseEncryptedBlob decodes a base64 blob and determines its layout.
//
// Layout detection inspects the first two decoded bytes: when byte 0 equals
// BlobVersion and byte 1 is a known key slot, the blob is parsed as versioned;
// otherwise it falls back to the legacy layout. A legacy blob whose first two
// nonce bytes happen to collide with a valid header would be misparsed; the
// odds are roughly 2^-16 per known slot. This heuristic is kept as-is for
// compatibility with already-persisted legacy blobs.
func ParseEncryptedBlob(content string) (EncryptedBlob, error) {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}

	if len(raw) >= headerSize && raw[0] == BlobVersion && KnownSlot(raw[1]) {
		body := raw[headerSize:]
		if len(body) < NonceSize+TagSize {
			return EncryptedBlob{}, fmt.Errorf("%w: versioned payload too short", ErrInvalidBlob)
		}
		return EncryptedBlob{
			Slot:       KeySlot(raw[1]),
			Nonce:      body[:NonceSize],
			Ciphertext: body[NonceSize:],
		}, nil
	}

	// Legacy layout: nonce at offset 0, no header, current key.
	if len(raw) < NonceSize+TagSize {
		return EncryptedBlob{}, fmt.Errorf("%w: legacy payload too short", ErrInvalidBlob)
	}
	return EncryptedBlob{
		Slot:       SlotCurrent,
		Nonce:      raw[:NonceSize],
		Ciphertext: raw[NonceSize:],
		Legacy:     true,
	}, nil
}

// EncodeEncryptedBlob serializes a versioned blob to its base64 wire form.
func EncodeEncryptedBlob(slot KeySlot, nonce, ciphertext []byte) string {
	raw := make([]byte, 0, headerSize+len(nonce)+len(ciphertext))
	raw = append(raw, BlobVersion, byte(slot))
	raw = append(raw, nonce...)
	raw = append(raw, ciphertext...)
	return base64.StdEncoding.EncodeToString(raw)
}
