package auth

import (
	"errors"
	"testing"

	"github.com/ferrovia/muselib/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		hash, err := HashPassword("secret123", bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}

		if hash == "secret123" {
			t.Error("hash should not equal the plaintext")
		}

		if err := VerifyPassword(hash, "secret123"); err != nil {
			t.Errorf("expected password to verify: %v", err)
		}
	})

	t.Run("SaltedPerCall", func(t *testing.T) {
		first, err := HashPassword("secret123", bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}

		second, err := HashPassword("secret123", bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}

		if first == second {
			t.Error("expected distinct hashes for the same password")
		}
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		if _, err := HashPassword("", bcrypt.MinCost); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	t.Run("WrongPassword", func(t *testing.T) {
		err := VerifyPassword(hash, "wrong")
		if !errors.Is(err, shared.ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})

	t.Run("GarbageHash", func(t *testing.T) {
		err := VerifyPassword("not-a-hash", "secret123")
		if !errors.Is(err, shared.ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})
}
