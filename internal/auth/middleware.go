package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ulavalmarket/marketplace-api/internal/httputil"
	"github.com/ulavalmarket/marketplace-api/internal/logging"
)

type contextKey string

const (
	userIDContextKey    contextKey = "user_id"
	userEmailContextKey contextKey = "user_email"
)

// bearerToken extracts the token from the Authorization header. The
// header must be exactly two space-separated tokens with the first
// case-insensitively equal to "bearer"; any other shape is rejected as
// TOKEN_INVALID_FORMAT before the token value is even looked at. On
// failure the error response has already been written and ok is false.
func bearerToken(w http.ResponseWriter, r *http.Request, logger *logging.Logger) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.Warn("request without Authorization header")
		httputil.RespondError(w, httputil.CodeTokenMissing, "Authorization header is required", http.StatusUnauthorized)
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		logger.Warn("malformed Authorization header")
		httputil.RespondError(w, httputil.CodeTokenInvalidFormat, "Authorization header must be: Bearer <token>", http.StatusUnauthorized)
		return "", false
	}

	return parts[1], true
}

// Middleware guards routes that require an authenticated caller.
type Middleware struct {
	jwtService *JWTService
}

func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// RequireAuth validates the bearer token and places the caller's display
// user id and email into the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		token, ok := bearerToken(w, r, logger)
		if !ok {
			return
		}

		claims, err := m.jwtService.Validate(token)
		if err != nil {
			logger.Warn("token validation failed", "error", err.Error())
			httputil.RespondDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, userEmailContextKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext extracts the display user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}

// UserEmailFromContext extracts the caller email set by RequireAuth.
func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailContextKey).(string)
	return email, ok
}
