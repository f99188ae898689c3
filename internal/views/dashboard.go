package views

import (
	"errors"
	"strings"

	"github.com/gammageek/wishlist/internal/models"
)

// ErrGroupNotFound is returned when a group id is not in the dataset.
var ErrGroupNotFound = errors.New("group not found")

// RecentLimit is how many items and groups the dashboard previews.
const RecentLimit = 3

// Dashboard is the landing view of a signed-in user.
type Dashboard struct {
	Identity models.Identity `json:"identity"`

	// DataLoaded is false when no export was found at login.
	DataLoaded bool `json:"data_loaded"`

	MyItemCount  int `json:"my_item_count"`
	MyGroupCount int `json:"my_group_count"`
	ItemsClaimed int `json:"items_claimed"`

	// RecentItems and RecentGroups are the first RecentLimit of my items and groups.
	RecentItems  []models.WishlistItem `json:"recent_items"`
	RecentGroups []models.Group        `json:"recent_groups"`
}

// BuildDashboard computes the dashboard for me.
func BuildDashboard(data *models.Dataset, me models.Identity, dataLoaded bool) Dashboard {
	items := MyItems(data, me)
	groups := MyGroups(data, me)

	return Dashboard{
		Identity:     me,
		DataLoaded:   dataLoaded,
		MyItemCount:  len(items),
		MyGroupCount: len(groups),
		ItemsClaimed: ItemsClaimed(data, me),
		RecentItems:  head(items, RecentLimit),
		RecentGroups: head(groups, RecentLimit),
	}
}

// ItemsClaimed counts my items whose claimed_status is set to something other
// than "available". This is a best guess at claim semantics: no claim workflow
// exists here and the exports never define the other status values, so any
// such value counts as claimed and only imported rows can contribute.
func ItemsClaimed(data *models.Dataset, me models.Identity) int {
	n := 0
	for _, i := range MyItems(data, me) {
		if i.ClaimedStatus != "" && i.ClaimedStatus != models.ClaimAvailable {
			n++
		}
	}
	return n
}

// Member is a membership with its avatar initials.
type Member struct {
	models.Membership
	Initials string `json:"initials"`
}

// GroupDetail is the view of one group.
type GroupDetail struct {
	Group   models.Group `json:"group"`
	Members []Member     `json:"members"`

	// Wishlist holds the items of the other members.
	Wishlist []models.WishlistItem `json:"wishlist"`
}

// BuildGroupDetail looks up groupID and builds its detail view for me.
func BuildGroupDetail(data *models.Dataset, me models.Identity, groupID string) (GroupDetail, error) {
	group, ok := data.FindGroup(groupID)
	if !ok {
		return GroupDetail{}, ErrGroupNotFound
	}

	memberships := GroupMembers(data, group)
	members := make([]Member, len(memberships))
	for i, m := range memberships {
		members[i] = Member{Membership: m, Initials: Initials(m.UserEmail)}
	}

	return GroupDetail{
		Group:    group,
		Members:  members,
		Wishlist: OthersWishlistInGroup(data, me, group),
	}, nil
}

// Initials returns the first two characters of the email's local part, upper-cased.
func Initials(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r := []rune(local)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	return append([]T{}, s...)
}
