package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/middleware"
	"github.com/gammageek/wishlist/internal/views"
)

// DashboardService implements the DashboardService RPC interface.
type DashboardService struct{}

// NewDashboardService creates a new DashboardService.
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// GetDashboard returns the caller's landing view.
func (s *DashboardService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	data, err := sess.Snapshot(ctx)
	if err != nil {
		slog.Error("GetDashboard failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	dashboard := views.BuildDashboard(data, sess.Identity, sess.DataLoaded)
	if !sess.DataLoaded {
		slog.Warn("Dashboard served without loaded data", "email", middleware.GetEmail(ctx))
	}

	return connect.NewResponse(&GetDashboardResponse{Dashboard: dashboard}), nil
}
