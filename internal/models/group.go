package models

// Group represents a gift exchange circle.
type Group struct {
	// ID is the unique identifier for the group (UUID format for new groups,
	// whatever the export carried for imported ones).
	ID string `json:"id" csv:"id"`

	// Name is the display name of the group (e.g., "Office Party").
	Name string `json:"name" csv:"name"`

	// Description is free text shown under the name.
	Description string `json:"description" csv:"description"`

	// InviteCode is a 6-character code from 0-9A-Z shared with people who
	// should join. Codes are not guaranteed unique across groups.
	InviteCode string `json:"invite_code" csv:"invite_code"`

	// CreatedBy is the email of the user who created the group.
	CreatedBy string `json:"created_by" csv:"created_by"`
}

// Membership associates a user email with a group.
// The pair (GroupID, UserEmail) identifies a membership; duplicates are not rejected.
type Membership struct {
	GroupID   string `json:"group_id" csv:"group_id"`
	UserEmail string `json:"user_email" csv:"user_email"`

	// Role is free text (e.g., "owner", "member").
	Role string `json:"role" csv:"role"`
}

// RoleOwner is the role recorded for the creator of a group.
const RoleOwner = "owner"
