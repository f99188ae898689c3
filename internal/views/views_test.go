package views

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gammageek/wishlist/internal/models"
)

var (
	alice = models.Identity{Email: "alice@x.com", FullName: "alice", AuthMethod: models.AuthMethodEmail}
	bob   = models.Identity{Email: "bob@x.com", FullName: "bob", AuthMethod: models.AuthMethodEmail}
	carol = models.Identity{Email: "carol@x.com", FullName: "carol", AuthMethod: models.AuthMethodEmail}
)

// exchangeData has group G with alice and bob, group H with bob and carol,
// and one item for each of them.
func exchangeData() *models.Dataset {
	return &models.Dataset{
		Groups: []models.Group{
			{ID: "G", Name: "Family", InviteCode: "AAAAAA", CreatedBy: "alice@x.com"},
			{ID: "H", Name: "Book club", InviteCode: "BBBBBB", CreatedBy: "carol@x.com"},
			{ID: "E", Name: "Empty", InviteCode: "CCCCCC", CreatedBy: "dave@x.com"},
		},
		Memberships: []models.Membership{
			{GroupID: "H", UserEmail: "bob@x.com", Role: "member"},
			{GroupID: "G", UserEmail: "alice@x.com", Role: "owner"},
			{GroupID: "G", UserEmail: "bob@x.com", Role: "member"},
			{GroupID: "H", UserEmail: "carol@x.com", Role: "owner"},
		},
		Items: []models.WishlistItem{
			{ID: "I1", Name: "Scarf", ClaimedStatus: "available", CreatedBy: "alice@x.com"},
			{ID: "I2", Name: "Book", ClaimedStatus: "available", CreatedBy: "bob@x.com"},
			{ID: "I3", Name: "Tea", ClaimedStatus: "available", CreatedBy: "carol@x.com"},
		},
	}
}

func TestOthersWishlistInGroup(t *testing.T) {
	data := exchangeData()
	g := data.Groups[0]

	tests := []struct {
		name string
		me   models.Identity
		want []string
	}{
		{name: "as bob sees alice", me: bob, want: []string{"I1"}},
		{name: "as alice sees bob", me: alice, want: []string{"I2"}},
		{name: "as outsider sees both", me: carol, want: []string{"I1", "I2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemIDs(OthersWishlistInGroup(data, tt.me, g))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("OthersWishlistInGroup (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOthersWishlistInGroup_NeverContainsMyItems(t *testing.T) {
	data := exchangeData()
	for _, me := range []models.Identity{alice, bob, carol} {
		for _, g := range data.Groups {
			for _, item := range OthersWishlistInGroup(data, me, g) {
				if item.CreatedBy == me.Email {
					t.Errorf("%s sees own item %s in group %s", me.Email, item.ID, g.ID)
				}
			}
		}
	}
}

func TestMyGroups(t *testing.T) {
	data := exchangeData()

	tests := []struct {
		name string
		me   models.Identity
		want []string
	}{
		// Groups order, not membership order.
		{name: "bob in both", me: bob, want: []string{"G", "H"}},
		{name: "alice in G", me: alice, want: []string{"G"}},
		{name: "nobody", me: models.Identity{Email: "nobody@x.com"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupIDs(MyGroups(data, tt.me))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MyGroups (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMyGroups_EachMembershipGroupAppearsOnce(t *testing.T) {
	data := exchangeData()
	data.Memberships = append(data.Memberships, models.Membership{GroupID: "G", UserEmail: "bob@x.com", Role: "member"})

	for _, me := range []models.Identity{alice, bob, carol} {
		counts := make(map[string]int)
		for _, g := range MyGroups(data, me) {
			counts[g.ID]++
		}
		for _, m := range MyMemberships(data, me) {
			if counts[m.GroupID] != 1 {
				t.Errorf("%s: group %s appears %d times, want 1", me.Email, m.GroupID, counts[m.GroupID])
			}
		}
	}
}

func TestMyGroupIDs(t *testing.T) {
	got := MyGroupIDs(exchangeData(), bob)
	if diff := cmp.Diff([]string{"H", "G"}, got); diff != "" {
		t.Errorf("MyGroupIDs (-want +got):\n%s", diff)
	}
}

func TestMyItems(t *testing.T) {
	data := exchangeData()
	data.Items = append(data.Items, models.WishlistItem{ID: "I4", CreatedBy: "alice@x.com"})

	got := MyItems(data, alice)
	if diff := cmp.Diff([]string{"I1", "I4"}, itemIDs(got)); diff != "" {
		t.Errorf("MyItems (-want +got):\n%s", diff)
	}
	for _, item := range got {
		if item.CreatedBy != alice.Email {
			t.Errorf("MyItems returned item %s owned by %s", item.ID, item.CreatedBy)
		}
	}
}

func TestNoMemberships(t *testing.T) {
	data := &models.Dataset{
		Groups: []models.Group{{ID: "G", Name: "Family"}},
		Items: []models.WishlistItem{
			{ID: "I1", CreatedBy: "alice@x.com"},
			{ID: "I2", CreatedBy: "bob@x.com"},
		},
	}

	if got := MyGroups(data, alice); len(got) != 0 {
		t.Errorf("expected no groups, got %+v", got)
	}
	if diff := cmp.Diff([]string{"I1"}, itemIDs(MyItems(data, alice))); diff != "" {
		t.Errorf("MyItems (-want +got):\n%s", diff)
	}
}

func TestGroupMembers(t *testing.T) {
	data := exchangeData()
	h := data.Groups[1]

	if diff := cmp.Diff([]string{"bob@x.com", "carol@x.com"}, GroupMemberEmails(data, h)); diff != "" {
		t.Errorf("GroupMemberEmails (-want +got):\n%s", diff)
	}
	if got := GroupMembers(data, data.Groups[2]); len(got) != 0 {
		t.Errorf("expected no members for empty group, got %+v", got)
	}
}

func TestViewsDoNotMutateInput(t *testing.T) {
	data := exchangeData()
	before := data.Clone()

	MyGroups(data, bob)
	MyItems(data, bob)
	OthersWishlistInGroup(data, bob, data.Groups[0])
	BuildDashboard(data, bob, true)
	if _, err := BuildGroupDetail(data, bob, "G"); err != nil {
		t.Fatalf("BuildGroupDetail failed: %v", err)
	}

	if diff := cmp.Diff(before, data); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestBuildDashboard(t *testing.T) {
	data := exchangeData()
	for i := 0; i < 4; i++ {
		data.Items = append(data.Items, models.WishlistItem{ID: "B" + string(rune('a'+i)), ClaimedStatus: "available", CreatedBy: "bob@x.com"})
	}
	data.Items = append(data.Items, models.WishlistItem{ID: "Bc", ClaimedStatus: "claimed", CreatedBy: "bob@x.com"})

	d := BuildDashboard(data, bob, true)

	if d.MyItemCount != 6 {
		t.Errorf("MyItemCount = %d, want 6", d.MyItemCount)
	}
	if d.MyGroupCount != 2 {
		t.Errorf("MyGroupCount = %d, want 2", d.MyGroupCount)
	}
	if d.ItemsClaimed != 1 {
		t.Errorf("ItemsClaimed = %d, want 1", d.ItemsClaimed)
	}
	if diff := cmp.Diff([]string{"I2", "Ba", "Bb"}, itemIDs(d.RecentItems)); diff != "" {
		t.Errorf("RecentItems (-want +got):\n%s", diff)
	}
	if !d.DataLoaded {
		t.Error("expected DataLoaded")
	}
}

func TestBuildDashboard_NoData(t *testing.T) {
	d := BuildDashboard(&models.Dataset{}, alice, false)

	if d.DataLoaded {
		t.Error("expected DataLoaded to be false")
	}
	if d.MyItemCount != 0 || d.MyGroupCount != 0 || d.ItemsClaimed != 0 {
		t.Errorf("expected zero counts, got %+v", d)
	}
	if d.RecentItems == nil || d.RecentGroups == nil {
		t.Error("expected empty, non-nil previews")
	}
}

func TestBuildGroupDetail(t *testing.T) {
	data := exchangeData()

	detail, err := BuildGroupDetail(data, bob, "G")
	if err != nil {
		t.Fatalf("BuildGroupDetail failed: %v", err)
	}
	if detail.Group.Name != "Family" {
		t.Errorf("Group.Name = %q, want Family", detail.Group.Name)
	}
	want := []Member{
		{Membership: models.Membership{GroupID: "G", UserEmail: "alice@x.com", Role: "owner"}, Initials: "AL"},
		{Membership: models.Membership{GroupID: "G", UserEmail: "bob@x.com", Role: "member"}, Initials: "BO"},
	}
	if diff := cmp.Diff(want, detail.Members); diff != "" {
		t.Errorf("Members (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"I1"}, itemIDs(detail.Wishlist)); diff != "" {
		t.Errorf("Wishlist (-want +got):\n%s", diff)
	}

	if _, err := BuildGroupDetail(data, bob, "missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@x.com", "AL"},
		{"b@x.com", "B"},
		{"no-at-sign", "NO"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.email); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func itemIDs(items []models.WishlistItem) []string {
	ids := []string{}
	for _, i := range items {
		ids = append(ids, i.ID)
	}
	return ids
}

func groupIDs(groups []models.Group) []string {
	ids := []string{}
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}
