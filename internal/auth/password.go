package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// PasswordHasher hashes and verifies passwords with bcrypt. Each call to
// Hash draws a fresh random salt, so hashing the same password twice
// never yields the same output.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", apperrors.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether password matches hash. A hash that is not a
// well-formed bcrypt hash yields false, not an error.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("%w: password must not be empty", apperrors.ErrInvalidArgument)
	}
	if hash == "" {
		return false, fmt.Errorf("%w: hash must not be empty", apperrors.ErrInvalidArgument)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		// Malformed hash (wrong prefix, bad cost, truncated).
		return false, nil
	}

	return true, nil
}
