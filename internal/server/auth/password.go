// Package auth implements credential handling for the server: bcrypt
// password digests and signed session tokens.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password digests.
const bcryptCost = 10

// HashPassword derives a salted bcrypt digest from the plaintext password.
// The plaintext is never stored or logged.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the digest.
// A malformed digest simply fails to match.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
