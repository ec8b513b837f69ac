package auth

import (
	"errors"
	"fmt"

	"github.com/courseboard/server/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash of the plaintext with the
// given work factor. The returned string embeds algorithm parameters and
// salt, so no extra state is needed to verify it later.
func HashPassword(plaintext string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword recomputes the hash from the parameters embedded in hashed
// and compares in constant time. A mismatch is (false, nil); only a
// malformed hashed input produces an error, wrapped as ErrInvalidHashFormat
// so callers can treat it as "not verified" without crashing the request.
func VerifyPassword(hashed, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", common.ErrInvalidHashFormat, err)
	}
}
