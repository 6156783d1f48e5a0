package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
	"github.com/ulavalmarket/marketplace-api/internal/database"
)

// PostgresSessionRepository persists sessions in the sessions table
// through Bun.
type PostgresSessionRepository struct {
	db *bun.DB
}

func NewPostgresSessionRepository(db *bun.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) FindByToken(ctx context.Context, token string) (*Session, error) {
	dbSession := new(database.Session)
	err := r.db.NewSelect().
		Model(dbSession).
		Where("token = ?", token).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, apperrors.NewDatabaseError("session find by token", err)
	}

	return mapDBSessionToEntity(dbSession), nil
}

func (r *PostgresSessionRepository) FindByUserID(ctx context.Context, userID string) ([]*Session, error) {
	var dbSessions []database.Session
	err := r.db.NewSelect().
		Model(&dbSessions).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("session find by user id", err)
	}

	sessions := make([]*Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, mapDBSessionToEntity(&dbSessions[i]))
	}
	return sessions, nil
}

// Save inserts the session. Sessions are never updated through Save;
// the only mutation after creation goes through MarkAsUsed.
func (r *PostgresSessionRepository) Save(ctx context.Context, s *Session) error {
	dbSession := &database.Session{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Token:     s.Token,
		TokenType: string(s.TokenType),
		ExpiresAt: s.ExpiresAt,
		UsedAt:    s.UsedAt,
	}

	_, err := r.db.NewInsert().
		Model(dbSession).
		Exec(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("session save", err)
	}

	return nil
}

// MarkAsUsed sets used_at and nothing else.
func (r *PostgresSessionRepository) MarkAsUsed(ctx context.Context, sessionID string) error {
	result, err := r.db.NewUpdate().
		Model((*database.Session)(nil)).
		Set("used_at = ?", time.Now()).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("session mark as used", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseError("session mark as used", err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, sessionID string) error {
	result, err := r.db.NewDelete().
		Model((*database.Session)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("session delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseError("session delete", err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func mapDBSessionToEntity(dbs *database.Session) *Session {
	return &Session{
		SessionID: dbs.SessionID,
		UserID:    dbs.UserID,
		Token:     dbs.Token,
		TokenType: TokenType(dbs.TokenType),
		ExpiresAt: dbs.ExpiresAt,
		UsedAt:    dbs.UsedAt,
	}
}
