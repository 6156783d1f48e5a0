package listing

import (
	"fmt"
	"strings"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// ValidateCreation checks a listing creation request, accumulating all
// violations into one semicolon-joined error.
func ValidateCreation(req CreationRequest) error {
	var violations []string

	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		violations = append(violations, "title is required")
	case len(title) < 5:
		violations = append(violations, "title must be at least 5 characters")
	case len(title) > 200:
		violations = append(violations, "title cannot exceed 200 characters")
	}

	description := strings.TrimSpace(req.Description)
	switch {
	case description == "":
		violations = append(violations, "description is required")
	case len(description) < 10:
		violations = append(violations, "description must be at least 10 characters")
	}

	if req.Price <= 0 {
		violations = append(violations, "price must be greater than 0")
	}

	if strings.TrimSpace(req.Category) == "" {
		violations = append(violations, "category is required")
	}

	if req.Condition == "" {
		violations = append(violations, "condition is required")
	} else if _, err := ParseCondition(req.Condition); err != nil {
		violations = append(violations, fmt.Sprintf("invalid condition %q", req.Condition))
	}

	if strings.TrimSpace(req.Location) == "" {
		violations = append(violations, "location is required")
	}

	if len(req.Images) > MaxImages {
		violations = append(violations, fmt.Sprintf("at most %d images are allowed", MaxImages))
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(violations)
	}
	return nil
}
