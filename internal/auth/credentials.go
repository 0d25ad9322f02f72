package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for credential and reset-token digests.
var BcryptCost = bcrypt.DefaultCost

// ErrSaltWithPassword is returned when a caller supplies a plaintext password
// together with a salt, i.e. tries to store a value that was not hashed here.
var ErrSaltWithPassword = errors.New("password supplied together with a pre-existing salt")

// HashCredential returns a fresh random salt and the bcrypt digest of salt+plaintext.
// Hashing the same plaintext twice never yields the same pair.
func HashCredential(plaintext string) (salt, hash string, err error) {
	salt = uuid.NewString()
	digest, err := bcrypt.GenerateFromPassword(prehash(salt+plaintext), BcryptCost)
	if err != nil {
		return "", "", fmt.Errorf("hash credential: %w", err)
	}
	return salt, string(digest), nil
}

// VerifyCredential reports whether plaintext matches a stored salt and hash.
func VerifyCredential(salt, hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(salt+plaintext)) == nil
}

// prehash keeps bcrypt input under its 72 byte limit for long passwords.
func prehash(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

// CheckCredentialInput enforces the hashing contract on create/update input.
func CheckCredentialInput(password, salt *string) error {
	if password != nil && salt != nil {
		return ErrSaltWithPassword
	}
	return nil
}

// NewResetToken generates a plaintext password-reset token for a user.
// The user id prefix lets the token be matched to an account without a lookup by hash.
func NewResetToken(userID int64) string {
	return fmt.Sprintf("%d_%s", userID, uuid.NewString())
}

// HashResetToken digests a reset token with the same prehash and bcrypt as
// credentials. The token is random, so it carries no separate salt.
func HashResetToken(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", errors.New("reset token is empty")
	}
	digest, err := bcrypt.GenerateFromPassword(prehash(token), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash reset token: %w", err)
	}
	return string(digest), nil
}

// VerifyResetToken reports whether token matches a stored reset-token digest.
func VerifyResetToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(token)) == nil
}

// ResetTokenUserID returns the user id a reset token was issued for.
func ResetTokenUserID(token string) (int64, bool) {
	prefix, _, ok := strings.Cut(token, "_")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
