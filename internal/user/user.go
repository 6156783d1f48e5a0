// Package user holds the User entity and its persistence port.
package user

import (
	"fmt"
	"strings"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// IDULLength is the fixed length of the institutional user identifier.
const IDULLength = 7

// User is the account entity. Identity (UserID) is immutable; state
// changes go through Verify, Activate and Deactivate.
type User struct {
	UserID       string `json:"user_id"`
	IDUL         string `json:"idul"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified"`
	IsActive     bool   `json:"is_active"`
}

// New validates and builds a User. Email is normalized to lower case.
func New(userID, idul, email, passwordHash string, isVerified, isActive bool) (*User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidArgument)
	}
	if len(idul) != IDULLength {
		return nil, fmt.Errorf("%w: idul must be exactly %d characters", apperrors.ErrInvalidArgument, IDULLength)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email must be valid and contain '@'", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("%w: password hash is required", apperrors.ErrInvalidArgument)
	}

	return &User{
		UserID:       userID,
		IDUL:         idul,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		IsVerified:   isVerified,
		IsActive:     isActive,
	}, nil
}

// CanAuthenticate reports whether the account may log in: it must be
// both active and verified.
func (u *User) CanAuthenticate() bool {
	return u.IsActive && u.IsVerified
}

// Verify marks the account's email as verified.
func (u *User) Verify() {
	u.IsVerified = true
}

// Activate re-enables a previously deactivated account.
func (u *User) Activate() {
	u.IsActive = true
}

// Deactivate disables the account; a deactivated user cannot log in.
func (u *User) Deactivate() {
	u.IsActive = false
}
