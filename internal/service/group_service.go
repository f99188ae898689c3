package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/metrics"
	"github.com/gammageek/wishlist/internal/middleware"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/views"
)

// GroupService implements the GroupService RPC interface.
type GroupService struct {
	metrics *metrics.Metrics
}

// NewGroupService creates a new GroupService.
func NewGroupService(m *metrics.Metrics) *GroupService {
	return &GroupService{metrics: m}
}

// CreateGroup creates a group owned by the caller and makes the caller its first member.
//
// Besides the new group it appends one membership, {group, caller, "owner"},
// so the group shows up in ListMyGroups and GetGroup. Both records live only in
// the caller's session.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"email", middleware.GetEmail(ctx),
	)

	group := &models.Group{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		CreatedBy:   sess.Identity.Email,
	}

	// Save to storage (generates ID and InviteCode)
	if err := sess.Store.AddGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	owner := &models.Membership{
		GroupID:   group.ID,
		UserEmail: sess.Identity.Email,
		Role:      models.RoleOwner,
	}
	if err := sess.Store.AddMembership(ctx, owner); err != nil {
		slog.Error("CreateGroup failed to add owner", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.GroupsCreated.Inc()
	slog.Info("Group created", "group_id", group.ID, "invite_code", group.InviteCode)

	return connect.NewResponse(&CreateGroupResponse{Group: *group}), nil
}

// ListMyGroups lists the groups the caller is a member of.
func (s *GroupService) ListMyGroups(ctx context.Context, req *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	slog.Info("ListMyGroups request received", "email", middleware.GetEmail(ctx))

	data, err := sess.Snapshot(ctx)
	if err != nil {
		slog.Error("ListMyGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	groups := views.MyGroups(data, sess.Identity)
	summaries := make([]GroupSummary, len(groups))
	for i, g := range groups {
		summaries[i] = GroupSummary{
			Group:       g,
			MemberCount: len(views.GroupMembers(data, g)),
		}
	}

	slog.Info("ListMyGroups successful", "count", len(summaries))

	return connect.NewResponse(&ListMyGroupsResponse{Groups: summaries}), nil
}

// GetGroup returns a group's members and the other members' wishlists.
// Only members of the group may view it.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	groupID := req.Msg.GroupID
	slog.Info("GetGroup request received", "group_id", groupID, "email", middleware.GetEmail(ctx))

	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}

	data, err := sess.Snapshot(ctx)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	detail, err := views.BuildGroupDetail(data, sess.Identity, groupID)
	if err != nil {
		if errors.Is(err, views.ErrGroupNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if !isMember(detail.Members, sess.Identity.Email) {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("not a member of group %s", groupID))
	}

	slog.Info("GetGroup successful",
		"group_id", groupID,
		"members_count", len(detail.Members),
		"items_count", len(detail.Wishlist),
	)

	return connect.NewResponse(&GetGroupResponse{GroupDetail: detail}), nil
}

func isMember(members []views.Member, email string) bool {
	for _, m := range members {
		if m.UserEmail == email {
			return true
		}
	}
	return false
}
