package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidPriority   = errors.New("invalid priority")
)

// Price ranges offered when adding an item.
const (
	PriceUnder25      = "Under $25"
	Price25To50       = "$25-$50"
	Price50To100      = "$50-$100"
	Price100To200     = "$100-$200"
	PriceOver200      = "Over $200"
	DefaultPriceRange = Price25To50
)

// Priorities.
const (
	PriorityLow     = "low"
	PriorityMedium  = "medium"
	PriorityHigh    = "high"
	DefaultPriority = PriorityMedium
)

// ClaimAvailable is the only claim status this system ever assigns.
// Claiming an item is not implemented.
const ClaimAvailable = "available"

// PriceRanges lists the accepted price ranges in display order.
var PriceRanges = []string{PriceUnder25, Price25To50, Price50To100, Price100To200, PriceOver200}

// Priorities lists the accepted priorities from lowest to highest.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// WishlistItem represents a single gift wish owned by one user.
type WishlistItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id" csv:"id"`

	Name        string `json:"name" csv:"name"`
	Description string `json:"description" csv:"description"`

	// URL points to where the item can be bought.
	URL string `json:"url" csv:"url"`

	// PictureURL is an optional image of the item.
	PictureURL string `json:"picture_url" csv:"picture_url"`

	// PriceRange is one of PriceRanges.
	PriceRange string `json:"price_range" csv:"price_range"`

	// Priority is one of Priorities.
	Priority string `json:"priority" csv:"priority"`

	// ClaimedStatus is "available" for every item created here.
	// Imported rows may carry other values.
	ClaimedStatus string `json:"claimed_status" csv:"claimed_status"`

	// CreatedBy is the email of the owner.
	CreatedBy string `json:"created_by" csv:"created_by"`
}

// ValidatePriceRange returns ErrInvalidPriceRange if s is not one of PriceRanges.
func ValidatePriceRange(s string) error {
	for _, p := range PriceRanges {
		if s == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
}

// ValidatePriority returns ErrInvalidPriority if s is not one of Priorities.
func ValidatePriority(s string) error {
	for _, p := range Priorities {
		if s == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// ApplyDefaults fills an empty price range and priority with the form defaults.
func (i *WishlistItem) ApplyDefaults() {
	if i.PriceRange == "" {
		i.PriceRange = DefaultPriceRange
	}
	if i.Priority == "" {
		i.Priority = DefaultPriority
	}
}
