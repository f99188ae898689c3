package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/metrics"
	"github.com/gammageek/wishlist/internal/middleware"
	"github.com/gammageek/wishlist/internal/session"
)

// Services bundles everything the RPC handlers need.
type Services struct {
	Auth      *AuthService
	Groups    *GroupService
	Wishlists *WishlistService
	Dashboard *DashboardService

	Tokens   *auth.TokenManager
	Sessions *session.Manager
	Metrics  *metrics.Metrics
}

// Register mounts every procedure on mux. Login procedures are public, the
// rest require a session token.
func (s *Services) Register(mux *http.ServeMux) {
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(s.Metrics),
		middleware.LoggingInterceptor(),
	)
	authed := connect.WithInterceptors(
		middleware.MetricsInterceptor(s.Metrics),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(s.Tokens, s.Sessions),
	)
	codec := connect.WithCodec(JSONCodec{})

	// AuthService
	mux.Handle(AuthLoginProcedure, connect.NewUnaryHandler(AuthLoginProcedure, s.Auth.Login, codec, public))
	mux.Handle(AuthLoginWithGoogleProcedure, connect.NewUnaryHandler(AuthLoginWithGoogleProcedure, s.Auth.LoginWithGoogle, codec, public))
	mux.Handle(AuthLogoutProcedure, connect.NewUnaryHandler(AuthLogoutProcedure, s.Auth.Logout, codec, authed))
	mux.Handle(AuthGetCurrentUserProcedure, connect.NewUnaryHandler(AuthGetCurrentUserProcedure, s.Auth.GetCurrentUser, codec, authed))

	// GroupService
	mux.Handle(GroupCreateGroupProcedure, connect.NewUnaryHandler(GroupCreateGroupProcedure, s.Groups.CreateGroup, codec, authed))
	mux.Handle(GroupListMyGroupsProcedure, connect.NewUnaryHandler(GroupListMyGroupsProcedure, s.Groups.ListMyGroups, codec, authed))
	mux.Handle(GroupGetGroupProcedure, connect.NewUnaryHandler(GroupGetGroupProcedure, s.Groups.GetGroup, codec, authed))

	// WishlistService
	mux.Handle(WishlistAddItemProcedure, connect.NewUnaryHandler(WishlistAddItemProcedure, s.Wishlists.AddItem, codec, authed))
	mux.Handle(WishlistListMyItemsProcedure, connect.NewUnaryHandler(WishlistListMyItemsProcedure, s.Wishlists.ListMyItems, codec, authed))

	// DashboardService
	mux.Handle(DashboardGetDashboardProcedure, connect.NewUnaryHandler(DashboardGetDashboardProcedure, s.Dashboard.GetDashboard, codec, authed))
}
