// Package storagetest provides a conformance suite for storage.Store implementations.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gammageek/wishlist/internal/ident"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/storage"
)

// Run exercises the storage.Store contract against stores returned by newStore.
// newStore must return an empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	fresh := func(t *testing.T) storage.Store {
		t.Helper()
		s := newStore(t)
		t.Cleanup(func() { s.Close() })
		return s
	}

	t.Run("empty store lists nothing", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		data, err := s.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if !data.Empty() {
			t.Errorf("expected empty snapshot, got %+v", data)
		}
	})

	t.Run("AddGroup assigns id and invite code and appends", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		first := &models.Group{Name: "Family", Description: "Christmas", CreatedBy: "alice@x.com"}
		if err := s.AddGroup(ctx, first); err != nil {
			t.Fatalf("AddGroup failed: %v", err)
		}
		before, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}

		g := &models.Group{
			ID:          "caller-chosen",
			Name:        "Office Party",
			Description: "Yearly exchange",
			InviteCode:  "lower!",
			CreatedBy:   "bob@x.com",
		}
		if err := s.AddGroup(ctx, g); err != nil {
			t.Fatalf("AddGroup failed: %v", err)
		}

		if g.ID == "" || g.ID == "caller-chosen" || g.ID == first.ID {
			t.Errorf("expected a fresh id, got %q", g.ID)
		}
		if !ident.ValidInviteCode(g.InviteCode) {
			t.Errorf("invite code %q does not match [0-9A-Z]{6}", g.InviteCode)
		}

		groups, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if diff := cmp.Diff(before, groups[:1]); diff != "" {
			t.Errorf("prior groups changed (-want +got):\n%s", diff)
		}
		want := models.Group{
			ID:          g.ID,
			Name:        "Office Party",
			Description: "Yearly exchange",
			InviteCode:  g.InviteCode,
			CreatedBy:   "bob@x.com",
		}
		if diff := cmp.Diff(want, groups[1]); diff != "" {
			t.Errorf("appended group mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("AddGroup stores empty fields verbatim", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		if err := s.AddGroup(ctx, &models.Group{}); err != nil {
			t.Fatalf("AddGroup failed: %v", err)
		}
		groups, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 1 || groups[0].Name != "" || groups[0].CreatedBy != "" {
			t.Errorf("unexpected groups: %+v", groups)
		}
	})

	t.Run("AddItem always sets available", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		item := &models.WishlistItem{
			Name:          "Headphones",
			PriceRange:    models.Price100To200,
			Priority:      models.PriorityHigh,
			ClaimedStatus: "claimed",
			CreatedBy:     "alice@x.com",
		}
		if err := s.AddItem(ctx, item); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if item.ID == "" {
			t.Error("expected item ID to be generated")
		}
		if item.ClaimedStatus != models.ClaimAvailable {
			t.Errorf("ClaimedStatus = %q, want %q", item.ClaimedStatus, models.ClaimAvailable)
		}

		items, err := s.ListItems(ctx)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if diff := cmp.Diff([]models.WishlistItem{*item}, items); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ids are unique across rapid creation", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			item := &models.WishlistItem{Name: "x", CreatedBy: "a@x.com"}
			if err := s.AddItem(ctx, item); err != nil {
				t.Fatalf("AddItem failed: %v", err)
			}
			if seen[item.ID] {
				t.Fatalf("duplicate id %q", item.ID)
			}
			seen[item.ID] = true
		}
	})

	t.Run("Import keeps ids and order", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		data := &models.Dataset{
			Groups: []models.Group{
				{ID: "g2", Name: "Second", InviteCode: "BBBBBB", CreatedBy: "bob@x.com"},
				{ID: "g1", Name: "First", InviteCode: "AAAAAA", CreatedBy: "alice@x.com"},
			},
			Memberships: []models.Membership{
				{GroupID: "g1", UserEmail: "alice@x.com", Role: "owner"},
				{GroupID: "g1", UserEmail: "bob@x.com", Role: "member"},
				{GroupID: "g1", UserEmail: "bob@x.com", Role: "member"},
			},
			Items: []models.WishlistItem{
				{ID: "i9", Name: "Book", ClaimedStatus: "claimed", CreatedBy: "bob@x.com"},
				{ID: "i1", Name: "Scarf", ClaimedStatus: "available", CreatedBy: "alice@x.com"},
			},
		}
		if err := s.Import(ctx, data); err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		got, err := s.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if diff := cmp.Diff(data, got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}

		// New records go after imported ones.
		if err := s.AddMembership(ctx, &models.Membership{GroupID: "g2", UserEmail: "carol@x.com", Role: "member"}); err != nil {
			t.Fatalf("AddMembership failed: %v", err)
		}
		memberships, err := s.ListMemberships(ctx)
		if err != nil {
			t.Fatalf("ListMemberships failed: %v", err)
		}
		if len(memberships) != 4 || memberships[3].UserEmail != "carol@x.com" {
			t.Errorf("unexpected memberships: %+v", memberships)
		}
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		s := fresh(t)
		ctx := context.Background()

		if err := s.AddGroup(ctx, &models.Group{Name: "Original"}); err != nil {
			t.Fatalf("AddGroup failed: %v", err)
		}
		groups, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		groups[0].Name = "Mutated"

		again, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if again[0].Name != "Original" {
			t.Errorf("store was mutated through a returned slice: %q", again[0].Name)
		}
	})

	t.Run("closed store returns ErrClosed", func(t *testing.T) {
		s := newStore(t)
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		ctx := context.Background()

		if _, err := s.ListGroups(ctx); !errors.Is(err, storage.ErrClosed) {
			t.Errorf("ListGroups after Close: got %v, want ErrClosed", err)
		}
		if err := s.AddItem(ctx, &models.WishlistItem{}); !errors.Is(err, storage.ErrClosed) {
			t.Errorf("AddItem after Close: got %v, want ErrClosed", err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close failed: %v", err)
		}
	})
}
