// Package auth implements the authentication core: password hashing, token
// issuance and verification, the session cookie, and the request gate that
// handlers consult before doing any work.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the stored digests were created with.
const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of plaintext. Each call uses a
// fresh salt, so two digests of the same password differ.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches digest. A mismatched or
// malformed digest yields false, never an error; bcrypt's own comparison is
// used, which is safe against timing attacks.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
