// Package secret encrypts values stored at rest, such as user settings.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Box seals values with AES-GCM under a key derived from a configured secret.
// A zero Box (no secret) passes values through unchanged.
type Box struct {
	aead cipher.AEAD
}

// NewBox derives a 256-bit key from secretKey with argon2id.
// An empty secretKey returns a pass-through Box.
func NewBox(secretKey string) (*Box, error) {
	if secretKey == "" {
		return &Box{}, nil
	}
	if len(secretKey) < 16 {
		return nil, fmt.Errorf("encryption secret key must be at least 16 characters")
	}

	key := deriveKey([]byte(secretKey))
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Box{aead: aead}, nil
}

// The salt is derived from the secret so the same secret always yields the same key.
func deriveKey(secret []byte) []byte {
	salt := sha256.Sum256(append([]byte("accounts/settings:"), secret...))
	return argon2.IDKey(secret, salt[:16], 1, 64*1024, 4, 32)
}

// Enabled reports whether values are encrypted.
func (b *Box) Enabled() bool {
	return b != nil && b.aead != nil
}

// Seal encrypts one plaintext value and returns a base64-encoded payload.
func (b *Box) Seal(value string) (string, error) {
	if !b.Enabled() {
		return value, nil
	}

	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	ciphertext := b.aead.Seal(nil, nonce, []byte(value), nil)
	// nonce || ciphertext
	payload := append(nonce, ciphertext...)
	return base64.RawStdEncoding.EncodeToString(payload), nil
}

// Open decrypts a sealed value. Values written before a secret was configured
// are plain JSON and are returned unchanged.
func (b *Box) Open(sealed string) (string, error) {
	if !b.Enabled() || looksLikeJSON(sealed) {
		return sealed, nil
	}

	payload, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}

	nonceSize := b.aead.NonceSize()
	if len(payload) < nonceSize {
		return "", fmt.Errorf("sealed value is too short")
	}
	plaintext, err := b.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("decrypt sealed value: %w", err)
	}
	return string(plaintext), nil
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
