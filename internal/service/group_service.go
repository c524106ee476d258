package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/auth"
	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// lookupUser resolves an invited email to a registered user.
func (s *GroupService) lookupUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, auth.NormalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("no user registered with email %s", email))
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return user, nil
}

// CreateGroup creates a new group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[rpc.CreateGroupRequest]) (*connect.Response[rpc.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"invites_count", len(req.Msg.MemberEmails),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group name required"))
	}

	creator, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	group := &models.Group{
		Name:        name,
		Description: req.Msg.Description,
		CreatedBy:   userID,
		Members:     []models.Member{creator.AsMember()},
	}
	for _, email := range req.Msg.MemberEmails {
		user, err := s.lookupUser(ctx, email)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(user.ID) {
			group.Members = append(group.Members, user.AsMember())
		}
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))

	created, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.CreateGroupResponse{Group: rpc.GroupFromModel(created)}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[rpc.GetGroupRequest]) (*connect.Response[rpc.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, err
	}

	return connect.NewResponse(&rpc.GetGroupResponse{Group: rpc.GroupFromModel(group)}), nil
}

// ListGroups retrieves the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[rpc.ListGroupsRequest]) (*connect.Response[rpc.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &rpc.ListGroupsResponse{Groups: make([]*rpc.Group, len(groups))}
	for i, group := range groups {
		resp.Groups[i] = rpc.GroupFromModel(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(resp), nil
}

// AddMember invites a registered user into the group by email.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[rpc.AddMemberRequest]) (*connect.Response[rpc.AddMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	user, err := s.lookupUser(ctx, req.Msg.Email)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddGroupMember(ctx, req.Msg.GroupID, user.ID); err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupID, "user_id", user.ID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.AddMemberResponse{Group: rpc.GroupFromModel(group)}), nil
}

// RemoveMember removes a member from the group. Expenses they paid stay in
// the ledger and show up as inconsistencies in the breakdown.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[rpc.RemoveMemberRequest]) (*connect.Response[rpc.RemoveMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(req.Msg.UserID) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("user %s is not a member of this group", req.Msg.UserID))
	}
	if len(group.Members) == 1 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("cannot remove the last member; delete the group instead"))
	}

	// Explicit splits must name current members; the store refuses otherwise.
	if err := s.store.RemoveGroupMember(ctx, group.ID, req.Msg.UserID); err != nil {
		slog.Warn("RemoveMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member removed", "group_id", group.ID, "user_id", req.Msg.UserID)

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.RemoveMemberResponse{Group: rpc.GroupFromModel(updated)}), nil
}

// DeleteGroup removes a group and its expenses. Only the creator may delete.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[rpc.DeleteGroupRequest]) (*connect.Response[rpc.DeleteGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("only the group creator can delete it"))
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&rpc.DeleteGroupResponse{}), nil
}
