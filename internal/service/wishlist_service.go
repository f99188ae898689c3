package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/metrics"
	"github.com/gammageek/wishlist/internal/middleware"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/views"
)

// WishlistService implements the WishlistService RPC interface.
type WishlistService struct {
	metrics *metrics.Metrics
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(m *metrics.Metrics) *WishlistService {
	return &WishlistService{metrics: m}
}

// AddItem adds an item to the caller's wishlist.
// Empty price range and priority take the form defaults.
func (s *WishlistService) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	slog.Info("AddItem request received",
		"name", req.Msg.Name,
		"email", middleware.GetEmail(ctx),
	)

	item := &models.WishlistItem{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		URL:         req.Msg.URL,
		PictureURL:  req.Msg.PictureURL,
		PriceRange:  req.Msg.PriceRange,
		Priority:    req.Msg.Priority,
		CreatedBy:   sess.Identity.Email,
	}
	item.ApplyDefaults()

	if err := models.ValidatePriceRange(item.PriceRange); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := models.ValidatePriority(item.Priority); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Save to storage (generates ID, sets status available)
	if err := sess.Store.AddItem(ctx, item); err != nil {
		slog.Error("AddItem failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ItemsAdded.Inc()
	slog.Info("Item added", "item_id", item.ID)

	return connect.NewResponse(&AddItemResponse{Item: *item}), nil
}

// ListMyItems lists the caller's wishlist.
func (s *WishlistService) ListMyItems(ctx context.Context, req *connect.Request[ListMyItemsRequest]) (*connect.Response[ListMyItemsResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	slog.Info("ListMyItems request received", "email", middleware.GetEmail(ctx))

	data, err := sess.Snapshot(ctx)
	if err != nil {
		slog.Error("ListMyItems failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	items := views.MyItems(data, sess.Identity)
	slog.Info("ListMyItems successful", "count", len(items))

	return connect.NewResponse(&ListMyItemsResponse{Items: items}), nil
}
