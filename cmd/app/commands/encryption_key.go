package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	cryptoService "github.com/allisson/subtrack/internal/crypto/service"
)

// RunCreateEncryptionKey generates a cryptographically secure 32-byte encryption key.
//
// Without a KMS key URI the key is printed hex-encoded, ready to use as
// ENCRYPTION_KEY. With a KMS key URI the key is encrypted with KMS first and
// printed base64-encoded alongside ENCRYPTION_KMS_KEY_URI, so the plaintext key
// never lands in configuration.
//
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
// For production, use a cloud KMS provider (gcpkms://, awskms://, azurekeyvault://).
func RunCreateEncryptionKey(ctx context.Context, w io.Writer, kmsKeyURI string) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		fmt.Fprintln(w, "# Encryption Key Configuration")
		fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "ENCRYPTION_KEY=\"%s\"\n", hex.EncodeToString(key))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# When rotating, move the old value to ENCRYPTION_KEY_PREVIOUS and set a new ENCRYPTION_KEY")
		return nil
	}

	keeperInterface, err := cryptoService.NewKMSService().OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			fmt.Fprintf(w, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// The keeper interface only exposes Decrypt for startup unwrapping,
	// so the Encrypt side is asserted here.
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, []byte(hex.EncodeToString(key)))
	if err != nil {
		return fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}

	fmt.Fprintln(w, "# Encryption Key Configuration (KMS Mode)")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ENCRYPTION_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(w, "ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# When rotating, wrap the new key with the same KMS key and move the old value to ENCRYPTION_KEY_PREVIOUS")
	return nil
}
