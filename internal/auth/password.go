// Package auth covers credential hashing and the register/login flow.
//
// Credentials are stored as a per-user random salt plus the hex sha256
// digest of salt || password. Verification recomputes the digest and uses
// a constant-time comparison.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const saltBytes = 16

// GenerateSalt returns 16 cryptographically random bytes hex-encoded into
// 32 characters.
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword returns the hex sha256 digest of salt || password. The same
// inputs always produce the same output; it is used both to store and to
// verify credentials.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// verifyPassword recomputes the digest with the stored salt and compares it
// against the stored hash in constant time.
func verifyPassword(password, salt, storedHash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
