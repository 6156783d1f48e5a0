package httputil

import (
	"errors"
	"net/http"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// errorMapping binds one domain error kind to its wire representation.
type errorMapping struct {
	target error
	code   string
	status int
}

// registry is the single place where domain error kinds become HTTP
// statuses. Handlers never construct status codes from business logic.
var registry = []errorMapping{
	{apperrors.ErrConflict, CodeEmailAlreadyExists, http.StatusConflict},
	{apperrors.ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrTokenInvalid, CodeTokenInvalid, http.StatusUnauthorized},
	{apperrors.ErrSessionExpired, CodeSessionExpired, http.StatusUnauthorized},
	{apperrors.ErrNotFound, CodeNotFound, http.StatusNotFound},
	{apperrors.ErrPermissionDenied, CodePermissionDenied, http.StatusForbidden},
	{apperrors.ErrInvalidArgument, CodeInvalidRequest, http.StatusBadRequest},
}

// RespondDomainError maps a domain error to its registered status code.
// Validation aggregates become 400; unregistered errors (including
// database failures) become a generic 500 with no internal detail leaked.
func RespondDomainError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		RespondError(w, CodeValidationError, validationErr.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range registry {
		if errors.Is(err, m.target) {
			RespondError(w, m.code, err.Error(), m.status)
			return
		}
	}

	RespondError(w, CodeInternalError, "an unexpected error occurred", http.StatusInternalServerError)
}
