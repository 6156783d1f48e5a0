package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// CreationInput carries the fields needed to create a listing. SellerID
// comes from the authenticated caller, never from the request body.
type CreationInput struct {
	SellerID    string
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	Location    string
	CourseCode  string
	Images      []string
}

// Response is the wire representation of a listing.
type Response struct {
	ListingID   string    `json:"listing_id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Location    string    `json:"location"`
	CourseCode  string    `json:"course_code,omitempty"`
	Images      []string  `json:"images"`
	IsSold      bool      `json:"is_sold"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service orchestrates listing operations over the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new listing.
func (s *Service) Create(ctx context.Context, input CreationInput) (*Response, error) {
	price, err := NewPrice(input.Price)
	if err != nil {
		return nil, err
	}

	condition, err := ParseCondition(input.Condition)
	if err != nil {
		return nil, err
	}

	l, err := New(
		uuid.NewString(),
		input.SellerID,
		input.Title,
		input.Description,
		price,
		input.Category,
		condition,
		input.Location,
		input.CourseCode,
		input.Images,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	return toResponse(l), nil
}

// GetByID returns one listing.
func (s *Service) GetByID(ctx context.Context, listingID string) (*Response, error) {
	l, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return toResponse(l), nil
}

// GetAll returns every listing, newest first.
func (s *Service) GetAll(ctx context.Context) ([]*Response, error) {
	listings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return toResponses(listings), nil
}

// GetBySeller returns every listing posted by sellerID, newest first.
func (s *Service) GetBySeller(ctx context.Context, sellerID string) ([]*Response, error) {
	listings, err := s.repo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return toResponses(listings), nil
}

// GetByCategory returns every listing in a category, newest first.
func (s *Service) GetByCategory(ctx context.Context, category string) ([]*Response, error) {
	listings, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toResponses(listings), nil
}

// Search returns listings whose title or description matches the query,
// newest first.
func (s *Service) Search(ctx context.Context, query string) ([]*Response, error) {
	listings, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toResponses(listings), nil
}

// Delete removes a listing on behalf of userID. Only the seller of an
// unsold listing may delete it.
func (s *Service) Delete(ctx context.Context, listingID, userID string) error {
	l, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}

	if !l.CanBeEditedBy(userID) {
		return fmt.Errorf("%w: you are not allowed to delete this listing", apperrors.ErrPermissionDenied)
	}

	return s.repo.Delete(ctx, listingID)
}

func toResponses(listings []*Listing) []*Response {
	responses := make([]*Response, len(listings))
	for i, l := range listings {
		responses[i] = toResponse(l)
	}
	return responses
}

func toResponse(l *Listing) *Response {
	return &Response{
		ListingID:   l.ListingID,
		SellerID:    l.SellerID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price.Amount(),
		Category:    l.Category,
		Condition:   string(l.Condition),
		Location:    l.Location,
		CourseCode:  l.CourseCode,
		Images:      l.Images,
		IsSold:      l.IsSold,
		CreatedAt:   l.CreatedAt,
	}
}
