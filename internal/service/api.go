package service

import (
	"github.com/gammageek/wishlist/internal/loader"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/views"
)

// Fully-qualified procedure names.
const (
	AuthServiceName      = "wishlist.v1.AuthService"
	GroupServiceName     = "wishlist.v1.GroupService"
	WishlistServiceName  = "wishlist.v1.WishlistService"
	DashboardServiceName = "wishlist.v1.DashboardService"

	AuthLoginProcedure           = "/" + AuthServiceName + "/Login"
	AuthLoginWithGoogleProcedure = "/" + AuthServiceName + "/LoginWithGoogle"
	AuthLogoutProcedure          = "/" + AuthServiceName + "/Logout"
	AuthGetCurrentUserProcedure  = "/" + AuthServiceName + "/GetCurrentUser"

	GroupCreateGroupProcedure  = "/" + GroupServiceName + "/CreateGroup"
	GroupListMyGroupsProcedure = "/" + GroupServiceName + "/ListMyGroups"
	GroupGetGroupProcedure     = "/" + GroupServiceName + "/GetGroup"

	WishlistAddItemProcedure     = "/" + WishlistServiceName + "/AddItem"
	WishlistListMyItemsProcedure = "/" + WishlistServiceName + "/ListMyItems"

	DashboardGetDashboardProcedure = "/" + DashboardServiceName + "/GetDashboard"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginWithGoogleRequest struct {
	// Credential is the Google ID token returned to the browser.
	Credential string `json:"credential"`
}

type LoginResponse struct {
	Token      string          `json:"token"`
	User       models.Identity `json:"user"`
	DataLoaded bool            `json:"data_loaded"`
	Import     *loader.Report  `json:"import,omitempty"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User models.Identity `json:"user"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateGroupResponse struct {
	Group models.Group `json:"group"`
}

type ListMyGroupsRequest struct{}

// GroupSummary is a group with its member count, as listed on the groups page.
type GroupSummary struct {
	models.Group
	MemberCount int `json:"member_count"`
}

type ListMyGroupsResponse struct {
	Groups []GroupSummary `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	views.GroupDetail
}

type AddItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PictureURL  string `json:"picture_url"`
	PriceRange  string `json:"price_range"`
	Priority    string `json:"priority"`
}

type AddItemResponse struct {
	Item models.WishlistItem `json:"item"`
}

type ListMyItemsRequest struct{}

type ListMyItemsResponse struct {
	Items []models.WishlistItem `json:"items"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	views.Dashboard
}
