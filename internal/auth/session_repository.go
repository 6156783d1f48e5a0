package auth

import (
	"context"
	"fmt"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

var ErrSessionNotFound = fmt.Errorf("session not found: %w", apperrors.ErrNotFound)

// SessionRepository is the storage port for sessions. Save is insert-only
// (sessions are never updated in place); MarkAsUsed is the one permitted
// mutation and issues a narrow, single-column update. Delete exists as a
// repository operation but the auth service never calls it: logout
// invalidates logically via MarkAsUsed.
type SessionRepository interface {
	FindByToken(ctx context.Context, token string) (*Session, error)
	FindByUserID(ctx context.Context, userID string) ([]*Session, error)
	Save(ctx context.Context, s *Session) error
	MarkAsUsed(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}
