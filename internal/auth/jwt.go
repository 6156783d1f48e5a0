package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// Claims is the decoded payload of a signed token.
type Claims struct {
	UserID    int       `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	Type      string    `json:"type"`
}

// JWTService issues and validates HS256-signed tokens carrying user
// identity claims. Session expiry and token expiry are the same
// timestamp by construction.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTService builds a JWTService. The secret must be non-empty.
func NewJWTService(secret string, lifetime time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT secret must not be empty", apperrors.ErrInvalidArgument)
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	return &JWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Generate signs a token for the given user. Claims: user_id, email,
// iat, exp = iat + lifetime, type = "auth".
func (s *JWTService) Generate(userID int, email string) (string, time.Time, error) {
	if userID <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: user id must be a positive integer", apperrors.ErrInvalidArgument)
	}
	if email == "" {
		return "", time.Time{}, fmt.Errorf("%w: email must not be empty", apperrors.ErrInvalidArgument)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt.Unix(),
		"type":    string(TokenTypeAuth),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate checks the token's signature and expiry and returns its
// claims. An expired but correctly signed token yields ErrSessionExpired;
// a tampered or malformed token yields ErrTokenInvalid regardless of its
// expiry state, because the signature check comes first.
func (s *JWTService) Validate(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: token must not be empty", apperrors.ErrInvalidArgument)
	}

	token, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", apperrors.ErrSessionExpired)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: malformed claims", apperrors.ErrTokenInvalid)
	}

	claims := &Claims{}
	if userID, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = int(userID)
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if tokenType, ok := mapClaims["type"].(string); ok {
		claims.Type = tokenType
	}

	return claims, nil
}
