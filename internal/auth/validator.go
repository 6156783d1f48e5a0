package auth

import (
	"fmt"
	"strings"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

// ValidateRegister checks a registration request. Violations are
// accumulated across all fields and reported as one semicolon-joined
// error instead of failing on the first.
func ValidateRegister(req RegisterRequest) error {
	var violations []string

	if req.Email == "" {
		violations = append(violations, "email is required")
	} else if !strings.Contains(req.Email, "@") {
		violations = append(violations, "email must contain '@'")
	}

	if req.Password == "" {
		violations = append(violations, "password is required")
	} else if len(req.Password) < 8 {
		violations = append(violations, "password must be at least 8 characters")
	}

	if req.IDUL == "" {
		violations = append(violations, "idul is required")
	} else if len(req.IDUL) != user.IDULLength {
		violations = append(violations, fmt.Sprintf("idul must be exactly %d characters", user.IDULLength))
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(violations)
	}
	return nil
}

// ValidateLogin checks a login request. Only presence is enforced; the
// password length rule applies to registration alone.
func ValidateLogin(req LoginRequest) error {
	var violations []string

	if req.Email == "" {
		violations = append(violations, "email is required")
	}
	if req.Password == "" {
		violations = append(violations, "password is required")
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(violations)
	}
	return nil
}
