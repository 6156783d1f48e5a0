package auth

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

// AuthResponse is returned by both Register and Login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    int       `json:"user_id"`
	Email     string    `json:"email"`
}

// UserResponse is returned by CurrentUser.
type UserResponse struct {
	UserID     int    `json:"user_id"`
	IDUL       string `json:"idul"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
}

// Service orchestrates registration, login, current-user lookup and
// logout by composing the repositories, the password hasher and the JWT
// service. All dependencies are injected at construction.
type Service struct {
	userRepo    user.Repository
	sessionRepo SessionRepository
	hasher      *PasswordHasher
	jwtService  *JWTService
}

func NewService(
	userRepo user.Repository,
	sessionRepo SessionRepository,
	hasher *PasswordHasher,
	jwtService *JWTService,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		jwtService:  jwtService,
	}
}

// displayUserID reduces a string user id to a stable 31-bit positive
// integer for response payloads and token claims. It is lossy (collisions
// are possible) and must never be used as a storage key.
func displayUserID(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32() & 0x7fffffff)
}

// Register creates a new account and immediately issues a session.
// The new user starts unverified yet still receives a token; a login
// attempt with the same credentials will fail CanAuthenticate until the
// account is verified.
func (s *Service) Register(ctx context.Context, email, password, idul string) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, user.ErrDuplicateEmail
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.New(uuid.NewString(), idul, email, passwordHash, false, true)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, newUser); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, newUser)
}

// Login authenticates by email and password. Unknown email, wrong
// password and a non-authenticatable account all collapse to
// ErrInvalidCredentials so account existence cannot be probed; the
// wrapped detail message still distinguishes the unverified case.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, existing.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrInvalidCredentials)
	}

	if !existing.CanAuthenticate() {
		return nil, fmt.Errorf("%w: account not verified or deactivated", apperrors.ErrInvalidCredentials)
	}

	return s.issueSession(ctx, existing)
}

// CurrentUser resolves the account behind a token. Validation errors
// propagate unchanged; a valid token whose user no longer exists yields
// ErrInvalidCredentials rather than a not-found, so stale tokens cannot
// enumerate accounts.
func (s *Service) CurrentUser(ctx context.Context, token string) (*UserResponse, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, err
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: email claim missing", apperrors.ErrTokenInvalid)
	}

	existing, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &UserResponse{
		UserID:     displayUserID(existing.UserID),
		IDUL:       existing.IDUL,
		Email:      existing.Email,
		IsVerified: existing.IsVerified,
		IsActive:   existing.IsActive,
	}, nil
}

// Logout marks the session behind the token as used. An unknown token is
// treated as already logged out, so double-logout is not an error. The
// token is matched by exact string, without re-validating its signature
// or expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find session: %w", err)
	}

	if err := s.sessionRepo.MarkAsUsed(ctx, session.SessionID); err != nil {
		return fmt.Errorf("failed to mark session as used: %w", err)
	}

	return nil
}

// issueSession generates a token for u and persists the matching
// auth-type session record. Session expiry and token expiry are the same
// timestamp.
func (s *Service) issueSession(ctx context.Context, u *user.User) (*AuthResponse, error) {
	token, expiresAt, err := s.jwtService.Generate(displayUserID(u.UserID), u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session, err := NewSession(uuid.NewString(), u.UserID, token, TokenTypeAuth, expiresAt, nil)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    displayUserID(u.UserID),
		Email:     u.Email,
	}, nil
}
