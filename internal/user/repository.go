package user

import (
	"context"
	"fmt"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

var (
	ErrNotFound       = fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	ErrDuplicateEmail = fmt.Errorf("email already exists: %w", apperrors.ErrConflict)
)

// Repository is the storage port for users. Implementations exist for
// postgres (production) and an in-memory map (dev/test); email lookups
// are case-insensitive in both.
type Repository interface {
	FindByID(ctx context.Context, userID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDUL(ctx context.Context, idul string) (*User, error)
	Save(ctx context.Context, u *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
