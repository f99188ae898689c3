// Package memory provides a slice-backed implementation of the storage.Store interface.
package memory

import (
	"context"
	"sync"

	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps the three collections as ordered slices.
type Store struct {
	mu          sync.RWMutex
	closed      bool
	groups      []models.Group
	memberships []models.Membership
	items       []models.WishlistItem
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Factory returns a storage.Factory producing fresh memory stores.
func Factory() storage.Factory {
	return func(ctx context.Context) (storage.Store, error) {
		return New(), nil
	}
}

// ListGroups returns a copy of the groups.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.Group(nil), s.groups...), nil
}

// ListMemberships returns a copy of the memberships.
func (s *Store) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.Membership(nil), s.memberships...), nil
}

// ListItems returns a copy of the items.
func (s *Store) ListItems(ctx context.Context) ([]models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.WishlistItem(nil), s.items...), nil
}

// Snapshot returns a copy of all three collections taken under one lock.
func (s *Store) Snapshot(ctx context.Context) (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	data := &models.Dataset{
		Groups:      s.groups,
		Memberships: s.memberships,
		Items:       s.items,
	}
	return data.Clone(), nil
}

// AddGroup appends a group with a fresh id and invite code.
func (s *Store) AddGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	storage.PrepareGroup(group)
	s.groups = append(s.groups, *group)
	return nil
}

// AddMembership appends a membership.
func (s *Store) AddMembership(ctx context.Context, membership *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	s.memberships = append(s.memberships, *membership)
	return nil
}

// AddItem appends an item with a fresh id and status "available".
func (s *Store) AddItem(ctx context.Context, item *models.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	storage.PrepareItem(item)
	s.items = append(s.items, *item)
	return nil
}

// Import appends every record of data as-is.
func (s *Store) Import(ctx context.Context, data *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	s.groups = append(s.groups, data.Groups...)
	s.memberships = append(s.memberships, data.Memberships...)
	s.items = append(s.items, data.Items...)
	return nil
}

// Close drops the collections. Further calls return storage.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.groups, s.memberships, s.items = nil, nil, nil
	return nil
}

// check must be called with s.mu held.
func (s *Store) check(ctx context.Context) error {
	if s.closed {
		return storage.ErrClosed
	}
	return ctx.Err()
}
