package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

func validInput(sellerID string) CreationInput {
	return CreationInput{
		SellerID:    sellerID,
		Title:       "Calculus textbook",
		Description: "Barely used, all pages intact",
		Price:       45.50,
		Category:    "Livres",
		Condition:   "Comme neuf",
		Location:    "Pavillon Pouliot",
		CourseCode:  "MAT-1900",
		Images:      []string{"https://img.example/cover.png"},
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	resp, err := svc.Create(context.Background(), validInput("s-1"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.ListingID)
	require.Equal(t, "s-1", resp.SellerID)
	require.Equal(t, "Comme neuf", resp.Condition)
	require.InDelta(t, 45.50, resp.Price, 0.0001)
	require.False(t, resp.IsSold)
}

func TestService_CreateRejectsBadPriceAndCondition(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	input := validInput("s-1")
	input.Price = 0
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	input = validInput("s-1")
	input.Condition = "Mint"
	_, err = svc.Create(context.Background(), input)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	created, err := svc.Create(context.Background(), validInput("s-1"))
	require.NoError(t, err)

	found, err := svc.GetByID(context.Background(), created.ListingID)
	require.NoError(t, err)
	require.Equal(t, created.ListingID, found.ListingID)

	_, err = svc.GetByID(context.Background(), "nonexistent")
	require.ErrorIs(t, err, ErrListingNotFound)
}

func TestService_GetAllAndFilters(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("s-1"))
	require.NoError(t, err)

	other := validInput("s-2")
	other.Title = "Desk lamp in good shape"
	other.Category = "Meubles"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	bySeller, err := svc.GetBySeller(ctx, "s-2")
	require.NoError(t, err)
	require.Len(t, bySeller, 1)

	byCategory, err := svc.GetByCategory(ctx, "Livres")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	found, err := svc.Search(ctx, "lamp")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Desk lamp in good shape", found[0].Title)
}

func TestService_DeleteOwnership(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput("s-1"))
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ListingID, "s-2")
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The failed delete leaves the listing untouched.
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, svc.Delete(ctx, created.ListingID, "s-1"))
	require.ErrorIs(t, svc.Delete(ctx, created.ListingID, "s-1"), ErrListingNotFound)
}

func TestService_DeleteSoldListingIsForbidden(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput("s-1"))
	require.NoError(t, err)

	sold, err := repo.FindByID(ctx, created.ListingID)
	require.NoError(t, err)
	require.NoError(t, sold.MarkAsSold())
	require.NoError(t, repo.Save(ctx, sold))

	err = svc.Delete(ctx, created.ListingID, "s-1")
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestValidateCreation_AccumulatesViolations(t *testing.T) {
	err := ValidateCreation(CreationRequest{
		Title:       "Shor",
		Description: "too short",
		Price:       0,
		Category:    "",
		Condition:   "Mint",
		Location:    "",
	})
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 6)

	msg := err.Error()
	require.Contains(t, msg, "title must be at least 5 characters")
	require.Contains(t, msg, "description must be at least 10 characters")
	require.Contains(t, msg, "price must be greater than 0")
	require.Contains(t, msg, "category is required")
	require.Contains(t, msg, `invalid condition "Mint"`)
	require.Contains(t, msg, "location is required")
}

func TestValidateCreation_Valid(t *testing.T) {
	require.NoError(t, ValidateCreation(CreationRequest{
		Title:       "Calculus textbook",
		Description: "Barely used, all pages intact",
		Price:       45.50,
		Category:    "Livres",
		Condition:   "Comme neuf",
		Location:    "Pavillon Pouliot",
	}))
}
