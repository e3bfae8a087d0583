// package auth handles password hashing and verification for user accounts
package auth

import (
	"fmt"

	"github.com/ferrovia/muselib/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the salted bcrypt hash of a plaintext password.
//
// A cost of 0 uses [bcrypt.DefaultCost]. bcrypt generates a fresh random salt
// per call, so hashing the same password twice yields different hashes.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
//
// bcrypt's comparison is constant-time. Returns [shared.ErrWrongPassword]
// when the password does not match.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return shared.ErrWrongPassword
	}
	return nil
}
