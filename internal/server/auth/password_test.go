package auth

import (
	"errors"
	"testing"

	"github.com/courseboard/server/internal/common"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword(hash, "secret")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to match")
	}

	ok, err = VerifyPassword(hash, "wrong")
	if err != nil {
		t.Fatalf("VerifyPassword error on mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected password mismatch")
	}
}

func TestHashPassword_FreshSalt(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same plaintext")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("not-a-bcrypt-hash", "secret")
	if ok {
		t.Fatalf("expected not verified")
	}
	if !errors.Is(err, common.ErrInvalidHashFormat) {
		t.Fatalf("expected ErrInvalidHashFormat, got %v", err)
	}
}
