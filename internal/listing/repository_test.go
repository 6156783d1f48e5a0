package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seedListing(t *testing.T, repo *MemoryRepository, listingID, sellerID, title, category string, createdAt time.Time) {
	t.Helper()
	l, err := New(listingID, sellerID, title, "a perfectly fine description",
		mustPrice(t, 25), category, ConditionGood, "Québec", "", nil)
	require.NoError(t, err)
	l.CreatedAt = createdAt
	require.NoError(t, repo.Save(context.Background(), l))
}

func TestMemoryRepository_FindAllNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Now()

	seedListing(t, repo, "l-1", "s-1", "Oldest listing", "Livres", now.Add(-2*time.Hour))
	seedListing(t, repo, "l-2", "s-1", "Middle listing", "Livres", now.Add(-time.Hour))
	seedListing(t, repo, "l-3", "s-2", "Newest listing", "Meubles", now)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "l-3", all[0].ListingID)
	require.Equal(t, "l-2", all[1].ListingID)
	require.Equal(t, "l-1", all[2].ListingID)
}

func TestMemoryRepository_Filters(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Now()

	seedListing(t, repo, "l-1", "s-1", "Calculus textbook", "Livres", now.Add(-time.Hour))
	seedListing(t, repo, "l-2", "s-2", "Desk lamp", "Meubles", now)

	bySeller, err := repo.FindBySellerID(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, bySeller, 1)
	require.Equal(t, "l-1", bySeller[0].ListingID)

	byCategory, err := repo.FindByCategory(context.Background(), "Meubles")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, "l-2", byCategory[0].ListingID)

	found, err := repo.Search(context.Background(), "CALCULUS")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "l-1", found[0].ListingID)

	none, err := repo.Search(context.Background(), "bicycle")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryRepository_DeleteAndCount(t *testing.T) {
	repo := NewMemoryRepository()
	seedListing(t, repo, "l-1", "s-1", "Calculus textbook", "Livres", time.Now())

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, repo.Delete(context.Background(), "l-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "l-1"), ErrListingNotFound)

	_, err = repo.FindByID(context.Background(), "l-1")
	require.ErrorIs(t, err, ErrListingNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	seedListing(t, repo, "l-1", "s-1", "Calculus textbook", "Livres", time.Now())

	found, err := repo.FindByID(context.Background(), "l-1")
	require.NoError(t, err)
	require.NoError(t, found.MarkAsSold())

	again, err := repo.FindByID(context.Background(), "l-1")
	require.NoError(t, err)
	require.False(t, again.IsSold)
}
