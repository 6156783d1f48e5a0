package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

var ErrListingNotFound = fmt.Errorf("listing not found: %w", apperrors.ErrNotFound)

// Repository is the storage port for listings.
type Repository interface {
	FindByID(ctx context.Context, listingID string) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	FindBySellerID(ctx context.Context, sellerID string) ([]*Listing, error)
	FindByCategory(ctx context.Context, category string) ([]*Listing, error)
	Search(ctx context.Context, query string) ([]*Listing, error)
	Save(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, listingID string) error
	Count(ctx context.Context) (int, error)
}

// MemoryRepository is the in-memory implementation of the listing port.
// Listings are served newest first.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings map[string]Listing // keyed by listing id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{listings: make(map[string]Listing)}
}

func (r *MemoryRepository) FindByID(ctx context.Context, listingID string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[listingID]
	if !ok {
		return nil, ErrListingNotFound
	}
	return &l, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(Listing) bool { return true }), nil
}

func (r *MemoryRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(l Listing) bool { return l.SellerID == sellerID }), nil
}

func (r *MemoryRepository) FindByCategory(ctx context.Context, category string) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(l Listing) bool { return l.Category == category }), nil
}

// Search matches the query case-insensitively against title and
// description.
func (r *MemoryRepository) Search(ctx context.Context, query string) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	return r.collect(func(l Listing) bool {
		return strings.Contains(strings.ToLower(l.Title), query) ||
			strings.Contains(strings.ToLower(l.Description), query)
	}), nil
}

func (r *MemoryRepository) Save(ctx context.Context, l *Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings[l.ListingID] = *l
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listingID]; !ok {
		return ErrListingNotFound
	}

	delete(r.listings, listingID)
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listings), nil
}

// collect returns copies of all listings matching keep, newest first.
// Callers must hold at least the read lock.
func (r *MemoryRepository) collect(keep func(Listing) bool) []*Listing {
	result := make([]*Listing, 0)
	for _, l := range r.listings {
		if keep(l) {
			l := l
			result = append(result, &l)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
