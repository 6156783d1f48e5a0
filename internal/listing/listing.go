// Package listing implements the marketplace listings: the Listing
// entity with its price and condition value objects, an in-memory
// repository and the HTTP surface under /listings.
package listing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

// Condition is the state of the item for sale. Values are the French
// labels the frontend displays.
type Condition string

const (
	ConditionNew     Condition = "Neuf"
	ConditionLikeNew Condition = "Comme neuf"
	ConditionGood    Condition = "Bon état"
	ConditionUsed    Condition = "Usagé"
)

var validConditions = []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionUsed}

// ParseCondition converts a string into a Condition.
func ParseCondition(s string) (Condition, error) {
	for _, c := range validConditions {
		if string(c) == s {
			return c, nil
		}
	}

	values := make([]string, len(validConditions))
	for i, c := range validConditions {
		values[i] = string(c)
	}
	return "", fmt.Errorf("%w: invalid condition %q, accepted values: %s",
		apperrors.ErrInvalidArgument, s, strings.Join(values, ", "))
}

// Price is the value object for a listing price in Canadian dollars:
// strictly positive, at most 999999, rounded to 2 decimals.
type Price struct {
	amount float64
}

func NewPrice(amount float64) (Price, error) {
	if amount <= 0 {
		return Price{}, fmt.Errorf("%w: price must be greater than 0", apperrors.ErrInvalidArgument)
	}
	if amount > 999999 {
		return Price{}, fmt.Errorf("%w: price cannot exceed 999,999", apperrors.ErrInvalidArgument)
	}

	return Price{amount: math.Round(amount*100) / 100}, nil
}

func (p Price) Amount() float64 {
	return p.amount
}

func (p Price) String() string {
	return fmt.Sprintf("%.2f$", p.amount)
}

// MaxImages caps how many images a listing may carry.
const MaxImages = 5

// Listing is the advertisement entity. A sold listing can no longer be
// edited or deleted by its seller.
type Listing struct {
	ListingID   string
	SellerID    string
	Title       string
	Description string
	Price       Price
	Category    string
	Condition   Condition
	Location    string
	CourseCode  string
	Images      []string
	IsSold      bool
	CreatedAt   time.Time
}

// New validates and builds a Listing.
func New(listingID, sellerID, title, description string, price Price, category string, condition Condition, location, courseCode string, images []string) (*Listing, error) {
	if strings.TrimSpace(listingID) == "" {
		return nil, fmt.Errorf("%w: listing id is required", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(sellerID) == "" {
		return nil, fmt.Errorf("%w: seller id is required", apperrors.ErrInvalidArgument)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrInvalidArgument)
	}
	if len(title) < 5 {
		return nil, fmt.Errorf("%w: title must be at least 5 characters", apperrors.ErrInvalidArgument)
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("%w: title cannot exceed 200 characters", apperrors.ErrInvalidArgument)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrInvalidArgument)
	}
	if len(description) < 10 {
		return nil, fmt.Errorf("%w: description must be at least 10 characters", apperrors.ErrInvalidArgument)
	}

	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrInvalidArgument)
	}
	if !condition.isValid() {
		return nil, fmt.Errorf("%w: invalid condition %q", apperrors.ErrInvalidArgument, condition)
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: location is required", apperrors.ErrInvalidArgument)
	}
	if len(images) > MaxImages {
		return nil, fmt.Errorf("%w: at most %d images are allowed", apperrors.ErrInvalidArgument, MaxImages)
	}

	return &Listing{
		ListingID:   listingID,
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       price,
		Category:    strings.TrimSpace(category),
		Condition:   condition,
		Location:    strings.TrimSpace(location),
		CourseCode:  strings.TrimSpace(courseCode),
		Images:      append([]string(nil), images...),
		CreatedAt:   time.Now(),
	}, nil
}

func (c Condition) isValid() bool {
	for _, valid := range validConditions {
		if c == valid {
			return true
		}
	}
	return false
}

// MarkAsSold flips the sold flag. A sold listing cannot be sold again.
func (l *Listing) MarkAsSold() error {
	if l.IsSold {
		return fmt.Errorf("%w: listing is already marked as sold", apperrors.ErrInvalidArgument)
	}
	l.IsSold = true
	return nil
}

// AddImage appends an image URL, respecting the cap.
func (l *Listing) AddImage(imageURL string) error {
	if len(l.Images) >= MaxImages {
		return fmt.Errorf("%w: at most %d images are allowed", apperrors.ErrInvalidArgument, MaxImages)
	}
	if strings.TrimSpace(imageURL) == "" {
		return fmt.Errorf("%w: image URL must not be empty", apperrors.ErrInvalidArgument)
	}
	l.Images = append(l.Images, strings.TrimSpace(imageURL))
	return nil
}

// CanBeEditedBy reports whether userID may edit this listing: only the
// seller, and only while the listing is not sold.
func (l *Listing) CanBeEditedBy(userID string) bool {
	return l.SellerID == userID && !l.IsSold
}
