// Package secrets implements the project-level symmetric cipher applied
// wholesale to encrypted catalog entries. The key is derived from a
// passphrase held in an environment variable, typically supplied via the
// project's .env file.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/fathomdata/larder/pkg/types"
)

// Keeper holds the derived AES-256 key. A zero Keeper has no key; Encrypt
// and Decrypt fail with ErrMissingEncryptionKey.
type Keeper struct {
	key []byte
}

// FromEnv derives a Keeper from the passphrase in the named environment
// variable. An unset or empty variable yields a keyless Keeper.
func FromEnv(envName string) *Keeper {
	return FromPassphrase(os.Getenv(envName))
}

// FromPassphrase derives a Keeper from a passphrase. The AES key is the
// SHA-256 of the passphrase bytes.
func FromPassphrase(passphrase string) *Keeper {
	if passphrase == "" {
		return &Keeper{}
	}
	key := sha256.Sum256([]byte(passphrase))
	return &Keeper{key: key[:]}
}

// HasKey reports whether a key is configured.
func (k *Keeper) HasKey() bool {
	return k != nil && len(k.key) > 0
}

// Encrypt seals plain with AES-256-GCM, prefixing the random nonce.
func (k *Keeper) Encrypt(plain []byte) ([]byte, error) {
	gcm, err := k.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt opens a blob produced by Encrypt.
func (k *Keeper) Decrypt(blob []byte) ([]byte, error) {
	gcm, err := k.aead()
	if err != nil {
		return nil, err
	}
	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, sealed := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return plain, nil
}

func (k *Keeper) aead() (cipher.AEAD, error) {
	if !k.HasKey() {
		return nil, types.ErrMissingEncryptionKey
	}
	block, err := aes.NewCipher(k.key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
