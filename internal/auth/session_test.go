package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

func TestNewSession_Valid(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	s, err := NewSession("sess-1", "user-1", "tok", TokenTypeAuth, expiresAt, nil)
	require.NoError(t, err)
	require.False(t, s.IsUsed())
	require.False(t, s.IsExpired())
}

func TestNewSession_Invalid(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	_, err := NewSession("", "user-1", "tok", TokenTypeAuth, expiresAt, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewSession("sess-1", "", "tok", TokenTypeAuth, expiresAt, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewSession("sess-1", "user-1", "", TokenTypeAuth, expiresAt, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewSession("sess-1", "user-1", "tok", TokenType("refresh"), expiresAt, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewSession("sess-1", "user-1", "tok", TokenTypeAuth, time.Time{}, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestSession_UsedAndExpiredAreOrthogonal(t *testing.T) {
	s, err := NewSession("sess-1", "user-1", "tok", TokenTypeAuth, time.Now().Add(-time.Minute), nil)
	require.NoError(t, err)

	require.True(t, s.IsExpired())
	require.False(t, s.IsUsed())

	s.MarkAsUsed()
	require.True(t, s.IsUsed())
	require.True(t, s.IsExpired())
	require.WithinDuration(t, time.Now(), *s.UsedAt, time.Second)
}

func TestMemorySessionRepository_SaveAndFindByToken(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := NewSession("sess-1", "user-1", "tok-1", TokenTypeAuth, time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "sess-1", found.SessionID)
	require.Equal(t, "user-1", found.UserID)

	_, err = repo.FindByToken(ctx, "tok-unknown")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepository_MarkAsUsed(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := NewSession("sess-1", "user-1", "tok-1", TokenTypeAuth, time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, repo.MarkAsUsed(ctx, "sess-1"))

	found, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, found.IsUsed())

	// Marking a session caller-side must not mutate the store.
	found.UsedAt = nil
	again, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, again.IsUsed())

	require.ErrorIs(t, repo.MarkAsUsed(ctx, "sess-unknown"), ErrSessionNotFound)
}

func TestMemorySessionRepository_FindByUserIDAndDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	for _, id := range []string{"sess-1", "sess-2"} {
		s, err := NewSession(id, "user-1", "tok-"+id, TokenTypeAuth, time.Now().Add(time.Hour), nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, s))
	}

	sessions, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	require.Equal(t, 1, repo.Count())
	require.ErrorIs(t, repo.Delete(ctx, "sess-1"), ErrSessionNotFound)
}
