// Package auth implements the authentication and session lifecycle:
// password hashing, JWT issuance and validation, session persistence and
// the HTTP surface under /auth.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// TokenType classifies what a session's token is for.
type TokenType string

const (
	TokenTypeAuth              TokenType = "auth"
	TokenTypeEmailVerification TokenType = "email_verification"
	TokenTypePasswordReset     TokenType = "password_reset"
)

// IsValid reports whether t is one of the known token types.
func (t TokenType) IsValid() bool {
	switch t {
	case TokenTypeAuth, TokenTypeEmailVerification, TokenTypePasswordReset:
		return true
	}
	return false
}

// Session is the persisted record of one issued token, distinct from the
// token itself. After creation only UsedAt may change: MarkAsUsed sets it
// exactly once and there is no transition back.
type Session struct {
	SessionID string
	UserID    string
	Token     string
	TokenType TokenType
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// NewSession validates and builds a Session.
func NewSession(sessionID, userID, token string, tokenType TokenType, expiresAt time.Time, usedAt *time.Time) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: token is required", apperrors.ErrInvalidArgument)
	}
	if !tokenType.IsValid() {
		return nil, fmt.Errorf("%w: token type must be one of %q, %q, %q",
			apperrors.ErrInvalidArgument, TokenTypeAuth, TokenTypeEmailVerification, TokenTypePasswordReset)
	}
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("%w: expiry time is required", apperrors.ErrInvalidArgument)
	}

	return &Session{
		SessionID: sessionID,
		UserID:    userID,
		Token:     token,
		TokenType: tokenType,
		ExpiresAt: expiresAt,
		UsedAt:    usedAt,
	}, nil
}

// IsExpired reports whether the session's expiry time has passed. Expiry
// is a derived, time-based predicate orthogonal to IsUsed.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsUsed reports whether the token has been consumed.
func (s *Session) IsUsed() bool {
	return s.UsedAt != nil
}

// MarkAsUsed records the current time as the consumption time.
func (s *Session) MarkAsUsed() {
	now := time.Now()
	s.UsedAt = &now
}
