// Package password wraps bcrypt hashing and verification for user
// credentials.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a valid bcrypt hash of a random string. Login flows
// compare against it when the user does not exist so that the bcrypt
// work runs on every attempt, keeping response times independent of
// whether the username was found.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hash returns the bcrypt hash of a plaintext password. Each call
// produces a different hash for the same input because bcrypt embeds a
// fresh salt; Verify accepts any of them.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt hash. A
// malformed hash counts as a mismatch; this never returns an error to
// the caller.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
