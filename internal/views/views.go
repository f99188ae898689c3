// Package views derives what a signed-in user sees from the three record collections.
//
// Every function is a pure read: it takes the dataset and the identity
// explicitly, allocates a new result, never mutates its inputs and never
// sorts. Results keep the insertion order of the collection they filter.
package views

import (
	"github.com/gammageek/wishlist/internal/models"
)

// MyMemberships returns the memberships whose user email is me.Email.
func MyMemberships(data *models.Dataset, me models.Identity) []models.Membership {
	result := []models.Membership{}
	for _, m := range data.Memberships {
		if m.UserEmail == me.Email {
			result = append(result, m)
		}
	}
	return result
}

// MyGroupIDs returns the group ids of MyMemberships, in membership order.
func MyGroupIDs(data *models.Dataset, me models.Identity) []string {
	memberships := MyMemberships(data, me)
	ids := make([]string, len(memberships))
	for i, m := range memberships {
		ids[i] = m.GroupID
	}
	return ids
}

// MyGroups returns the groups I am a member of, in Groups order.
// A group appears once even if I have several membership rows for it.
func MyGroups(data *models.Dataset, me models.Identity) []models.Group {
	ids := toSet(MyGroupIDs(data, me))
	result := []models.Group{}
	for _, g := range data.Groups {
		if _, ok := ids[g.ID]; ok {
			result = append(result, g)
		}
	}
	return result
}

// MyItems returns the items created by me.
func MyItems(data *models.Dataset, me models.Identity) []models.WishlistItem {
	result := []models.WishlistItem{}
	for _, i := range data.Items {
		if i.CreatedBy == me.Email {
			result = append(result, i)
		}
	}
	return result
}

// GroupMembers returns the memberships of group.
func GroupMembers(data *models.Dataset, group models.Group) []models.Membership {
	result := []models.Membership{}
	for _, m := range data.Memberships {
		if m.GroupID == group.ID {
			result = append(result, m)
		}
	}
	return result
}

// GroupMemberEmails returns the user emails of GroupMembers, in membership order.
func GroupMemberEmails(data *models.Dataset, group models.Group) []string {
	members := GroupMembers(data, group)
	emails := make([]string, len(members))
	for i, m := range members {
		emails[i] = m.UserEmail
	}
	return emails
}

// OthersWishlistInGroup returns the items owned by members of group other than me.
// My own items are excluded even when I am a member.
func OthersWishlistInGroup(data *models.Dataset, me models.Identity, group models.Group) []models.WishlistItem {
	emails := toSet(GroupMemberEmails(data, group))
	result := []models.WishlistItem{}
	for _, i := range data.Items {
		if i.CreatedBy == me.Email {
			continue
		}
		if _, ok := emails[i.CreatedBy]; ok {
			result = append(result, i)
		}
	}
	return result
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
