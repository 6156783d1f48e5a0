package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

type serviceFixture struct {
	service     *Service
	userRepo    *user.MemoryRepository
	sessionRepo *MemorySessionRepository
	jwtService  *JWTService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	jwtService, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	userRepo := user.NewMemoryRepository()
	sessionRepo := NewMemorySessionRepository()

	return &serviceFixture{
		service:     NewService(userRepo, sessionRepo, NewPasswordHasher(), jwtService),
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
	}
}

func TestService_RegisterIssuesSession(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	resp, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Positive(t, resp.UserID)
	require.Equal(t, "alice@ulaval.ca", resp.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	require.Equal(t, 1, f.userRepo.Count())
	require.Equal(t, 1, f.sessionRepo.Count())

	// Session expiry matches token expiry.
	session, err := f.sessionRepo.FindByToken(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.ExpiresAt.Unix(), session.ExpiresAt.Unix())
	require.Equal(t, TokenTypeAuth, session.TokenType)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	_, err = f.service.Register(ctx, "alice@ulaval.ca", "password456", "ALBOB13")
	require.ErrorIs(t, err, user.ErrDuplicateEmail)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestService_LoginUnverifiedAccountFails(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	// Registration succeeds with a token, but the account starts
	// unverified, so the same credentials cannot log in yet.
	_, err = f.service.Login(ctx, "alice@ulaval.ca", "password123")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.Contains(t, err.Error(), "account not verified or deactivated")
}

func TestService_LoginVerifiedAccount(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)
	verifyUser(t, f.userRepo, "alice@ulaval.ca")

	resp, err := f.service.Login(ctx, "alice@ulaval.ca", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, 2, f.sessionRepo.Count())
}

func TestService_LoginFailuresCollapseToInvalidCredentials(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)
	verifyUser(t, f.userRepo, "alice@ulaval.ca")

	// Unknown email and wrong password carry the same detail message so
	// account existence cannot be probed.
	_, unknownErr := f.service.Login(ctx, "nobody@ulaval.ca", "password123")
	require.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)

	_, wrongErr := f.service.Login(ctx, "alice@ulaval.ca", "password124")
	require.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestService_CurrentUser(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	resp, err := f.service.CurrentUser(ctx, registered.Token)
	require.NoError(t, err)
	require.Equal(t, "alice@ulaval.ca", resp.Email)
	require.Equal(t, "ALBOB12", resp.IDUL)
	require.Equal(t, registered.UserID, resp.UserID)
	require.False(t, resp.IsVerified)
	require.True(t, resp.IsActive)
}

func TestService_CurrentUserPropagatesTokenErrors(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.CurrentUser(ctx, "not.a.token")
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestService_CurrentUserForDeletedAccount(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	// Token stays valid but the account is gone: the error is
	// credentials, not not-found, so stale tokens cannot enumerate.
	f.userRepo.Clear()
	_, err = f.service.CurrentUser(ctx, registered.Token)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestService_LogoutMarksSessionUsed(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, registered.Token))

	session, err := f.sessionRepo.FindByToken(ctx, registered.Token)
	require.NoError(t, err)
	require.True(t, session.IsUsed())
}

func TestService_LogoutIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "alice@ulaval.ca", "password123", "ALBOB12")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, registered.Token))
	require.NoError(t, f.service.Logout(ctx, registered.Token))

	// Unknown tokens succeed silently and change nothing.
	require.NoError(t, f.service.Logout(ctx, "some-unknown-token"))
	require.Equal(t, 1, f.sessionRepo.Count())
}

func TestDisplayUserID_StableAndPositive(t *testing.T) {
	first := displayUserID("550e8400-e29b-41d4-a716-446655440000")
	second := displayUserID("550e8400-e29b-41d4-a716-446655440000")

	require.Equal(t, first, second)
	require.Positive(t, first)
	require.NotEqual(t, first, displayUserID("a-different-user-id"))
}

func verifyUser(t *testing.T, repo *user.MemoryRepository, email string) {
	t.Helper()
	ctx := context.Background()

	u, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	u.Verify()
	require.NoError(t, repo.Save(ctx, u))
}
