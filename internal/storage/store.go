// Package storage provides abstractions for the session record store.
package storage

import (
	"context"
	"errors"

	"github.com/gammageek/wishlist/internal/ident"
	"github.com/gammageek/wishlist/internal/models"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store is closed")

// Store holds the three record collections of one session.
// This abstraction allows swapping backends (in-memory slices, SQLite)
// without changing the session or service layers.
//
// Collections are append-only and keep insertion order. There are no update
// or delete operations.
type Store interface {
	// ListGroups returns all groups in insertion order.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// ListMemberships returns all memberships in insertion order.
	ListMemberships(ctx context.Context) ([]models.Membership, error)

	// ListItems returns all wishlist items in insertion order.
	ListItems(ctx context.Context) ([]models.WishlistItem, error)

	// Snapshot returns the three collections together.
	Snapshot(ctx context.Context) (*models.Dataset, error)

	// AddGroup appends a new group. The store always assigns group.ID and
	// group.InviteCode; the other fields are stored verbatim.
	AddGroup(ctx context.Context, group *models.Group) error

	// AddMembership appends a membership verbatim.
	AddMembership(ctx context.Context, membership *models.Membership) error

	// AddItem appends a new wishlist item. The store always assigns item.ID
	// and sets item.ClaimedStatus to "available".
	AddItem(ctx context.Context, item *models.WishlistItem) error

	// Import appends a loaded dataset verbatim, keeping its ids.
	Import(ctx context.Context, data *models.Dataset) error

	// Close releases any resources held by the store.
	Close() error
}

// Factory creates an empty store. Each session gets its own.
type Factory func(ctx context.Context) (Store, error)

// PrepareGroup assigns the generated fields of a new group.
// Backends call it from AddGroup.
func PrepareGroup(group *models.Group) {
	group.ID = ident.NewID()
	group.InviteCode = ident.NewInviteCode()
}

// PrepareItem assigns the generated fields of a new item.
// Backends call it from AddItem.
func PrepareItem(item *models.WishlistItem) {
	item.ID = ident.NewID()
	item.ClaimedStatus = models.ClaimAvailable
}
