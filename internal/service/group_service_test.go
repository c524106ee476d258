package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

func TestCreateGroup(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	srv.newClient(t, "bob@example.com", "Bob")

	group := alice.createGroup(t, "Roommates", "Bob@Example.com")

	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if len(group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(group.Members))
	}
	if group.CreatedBy != alice.user.ID {
		t.Errorf("created_by: expected %s, got %s", alice.user.ID, group.CreatedBy)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_Errors(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	ctx := context.Background()

	_, err := alice.groups.CreateGroup(ctx, connect.NewRequest(&rpc.CreateGroupRequest{Name: "  "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = alice.groups.CreateGroup(ctx, connect.NewRequest(&rpc.CreateGroupRequest{
		Name:         "Trip",
		MemberEmails: []string{"ghost@example.com"},
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetGroup_Membership(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	mallory := srv.newClient(t, "mallory@example.com", "Mallory")
	ctx := context.Background()

	group := alice.createGroup(t, "Work Lunch")

	resp, err := alice.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Work Lunch" {
		t.Errorf("name: expected 'Work Lunch', got '%s'", resp.Msg.Group.Name)
	}

	_, err = mallory.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = alice.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListGroups(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	bob := srv.newClient(t, "bob@example.com", "Bob")
	ctx := context.Background()

	alice.createGroup(t, "Group 1", "bob@example.com")
	alice.createGroup(t, "Group 2")

	resp, err := bob.groups.ListGroups(ctx, connect.NewRequest(&rpc.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].Name != "Group 1" {
		t.Errorf("expected bob to see only Group 1, got %+v", resp.Msg.Groups)
	}

	resp, err = alice.groups.ListGroups(ctx, connect.NewRequest(&rpc.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(resp.Msg.Groups))
	}
}

func TestAddAndRemoveMember(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	bob := srv.newClient(t, "bob@example.com", "Bob")
	ctx := context.Background()

	group := alice.createGroup(t, "Trip")

	addResp, err := alice.groups.AddMember(ctx, connect.NewRequest(&rpc.AddMemberRequest{GroupID: group.ID, Email: "bob@example.com"}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if len(addResp.Msg.Group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(addResp.Msg.Group.Members))
	}

	_, err = alice.groups.AddMember(ctx, connect.NewRequest(&rpc.AddMemberRequest{GroupID: group.ID, Email: "ghost@example.com"}))
	assertCode(t, err, connect.CodeNotFound)

	rmResp, err := alice.groups.RemoveMember(ctx, connect.NewRequest(&rpc.RemoveMemberRequest{GroupID: group.ID, UserID: bob.user.ID}))
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if len(rmResp.Msg.Group.Members) != 1 {
		t.Errorf("members: expected 1, got %d", len(rmResp.Msg.Group.Members))
	}

	_, err = alice.groups.RemoveMember(ctx, connect.NewRequest(&rpc.RemoveMemberRequest{GroupID: group.ID, UserID: alice.user.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = bob.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestDeleteGroup(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	bob := srv.newClient(t, "bob@example.com", "Bob")
	ctx := context.Background()

	group := alice.createGroup(t, "Temporary", "bob@example.com")
	alice.addExpense(t, group.ID, "12")

	_, err := bob.groups.DeleteGroup(ctx, connect.NewRequest(&rpc.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := alice.groups.DeleteGroup(ctx, connect.NewRequest(&rpc.DeleteGroupRequest{GroupID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = alice.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = alice.groups.DeleteGroup(ctx, connect.NewRequest(&rpc.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestRemoveMember_NamedInSplit(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	bob := srv.newClient(t, "bob@example.com", "Bob")
	srv.newClient(t, "carol@example.com", "Carol")
	ctx := context.Background()

	group := alice.createGroup(t, "Trip", "bob@example.com", "carol@example.com")
	alice.addExpense(t, group.ID, "10", alice.user.ID, bob.user.ID)

	_, err := alice.groups.RemoveMember(ctx, connect.NewRequest(&rpc.RemoveMemberRequest{GroupID: group.ID, UserID: bob.user.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	resp, err := alice.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(resp.Msg.Group.Members) != 3 {
		t.Errorf("expected bob to stay in the group, got %d members", len(resp.Msg.Group.Members))
	}
}

// A split validated against a stale member list is refused once the member has gone.
func TestRemoveMember_ThenStaleSplit(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.newClient(t, "alice@example.com", "Alice")
	bob := srv.newClient(t, "bob@example.com", "Bob")
	ctx := context.Background()

	group := alice.createGroup(t, "Trip", "bob@example.com")
	alice.addExpense(t, group.ID, "10")

	if _, err := alice.groups.RemoveMember(ctx, connect.NewRequest(&rpc.RemoveMemberRequest{
		GroupID: group.ID, UserID: bob.user.ID,
	})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	err := srv.store.AppendExpense(ctx, &models.Expense{
		GroupID:     group.ID,
		Description: "Validated before bob left",
		Amount:      dec("8"),
		PaidBy:      alice.user.ID,
		SplitAmong:  []string{alice.user.ID, bob.user.ID},
	})
	if !errors.Is(err, storage.ErrMembershipConflict) {
		t.Fatalf("expected ErrMembershipConflict, got %v", err)
	}
	assertCode(t, toConnectError(err), connect.CodeFailedPrecondition)

	b := alice.breakdown(t, group.ID)
	if !b.TotalExpenses.Equal(dec("10")) {
		t.Errorf("total_expenses: expected 10, got %s", b.TotalExpenses)
	}
}
