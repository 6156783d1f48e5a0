package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the row model for the users table. The email column carries a
// unique index; its violation is the only real guard against concurrent
// registration with the same address.
type User struct {
	bun.BaseModel `bun:"table:users"`

	UserID       string    `bun:"user_id,pk"`
	IDUL         string    `bun:"idul,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	IsVerified   bool      `bun:"is_verified,notnull,default:false"`
	IsActive     bool      `bun:"is_active,notnull,default:true"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is the row model for the sessions table. Rows are insert-only;
// the single permitted mutation is setting used_at once.
type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	SessionID string     `bun:"session_id,pk"`
	UserID    string     `bun:"user_id,notnull"`
	Token     string     `bun:"token,notnull"`
	TokenType string     `bun:"token_type,notnull"`
	ExpiresAt time.Time  `bun:"expires_at,notnull"`
	UsedAt    *time.Time `bun:"used_at"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
