package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "spendly-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	group := &models.Group{
		Name:      "Roommates",
		CreatedBy: alice.ID,
		Members:   []models.Member{alice.AsMember(), bob.AsMember()},
	}

	t.Run("CreateGroup generates ID", func(t *testing.T) {
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup returns members ordered by id", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Roommates" {
			t.Errorf("Name mismatch: got %s", got.Name)
		}
		if len(got.Members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(got.Members))
		}
		if got.Members[0].ID > got.Members[1].ID {
			t.Errorf("Members not ordered by id: %v", got.Members)
		}
		if !got.HasMember(alice.ID) || !got.HasMember(bob.ID) {
			t.Errorf("Expected alice and bob as members, got %v", got.Members)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AppendExpense and list in order", func(t *testing.T) {
		first := &models.Expense{
			GroupID:     group.ID,
			Description: "Groceries",
			Amount:      decimal.RequireFromString("42.10"),
			PaidBy:      alice.ID,
			CreatedAt:   100,
		}
		second := &models.Expense{
			GroupID:     group.ID,
			Description: "Settlement",
			Amount:      decimal.RequireFromString("5"),
			PaidBy:      bob.ID,
			Category:    models.SettlementCategory,
			SplitAmong:  []string{alice.ID},
			CreatedAt:   200,
		}
		for _, e := range []*models.Expense{second, first} {
			if err := store.AppendExpense(ctx, e); err != nil {
				t.Fatalf("AppendExpense failed: %v", err)
			}
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(expenses))
		}
		if expenses[0].ID != first.ID {
			t.Errorf("Expected oldest expense first, got %s", expenses[0].Description)
		}
		if expenses[0].Category != models.DefaultCategory {
			t.Errorf("Expected default category, got %q", expenses[0].Category)
		}
		if !expenses[0].Amount.Equal(decimal.RequireFromString("42.1")) {
			t.Errorf("Amount mismatch: got %s", expenses[0].Amount)
		}
		if len(expenses[0].SplitAmong) != 0 {
			t.Errorf("Expected equal split, got %v", expenses[0].SplitAmong)
		}
		if !expenses[1].IsSettlement() || expenses[1].Payee() != alice.ID {
			t.Errorf("Expected settlement to alice, got %+v", expenses[1])
		}
	})

	t.Run("AppendExpense to missing group fails", func(t *testing.T) {
		err := store.AppendExpense(ctx, &models.Expense{
			GroupID: "missing",
			Amount:  decimal.NewFromInt(1),
			PaidBy:  alice.ID,
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Add and remove members", func(t *testing.T) {
		if err := store.AddGroupMember(ctx, group.ID, carol.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}
		// Adding twice is a no-op
		if err := store.AddGroupMember(ctx, group.ID, carol.ID); err != nil {
			t.Fatalf("AddGroupMember (repeat) failed: %v", err)
		}

		groups, err := store.ListGroupsByMember(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || len(groups[0].Members) != 3 {
			t.Fatalf("Expected carol in one group of 3, got %+v", groups)
		}

		if err := store.RemoveGroupMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}
		if err := store.RemoveGroupMember(ctx, group.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound removing twice, got %v", err)
		}

		// Bob's settlement stays in the ledger after he leaves.
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Errorf("Expected 2 expenses after member removal, got %d", len(expenses))
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		groups, err := store.ListGroupsByMember(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("Expected no groups after delete, got %d", len(groups))
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "dana@example.com", "Dana")
	if user.ID == "" {
		t.Fatal("Expected user ID to be generated")
	}

	byEmail, err := store.GetUserByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID || byEmail.DisplayName != "Dana" {
		t.Errorf("Unexpected user: %+v", byEmail)
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	dup := models.NewUser("dana@example.com", "Other Dana", "hash")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("Expected duplicate email to fail")
	}
}

func TestSplitMembership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	group := &models.Group{
		Name:      "Trip",
		CreatedBy: alice.ID,
		Members:   []models.Member{alice.AsMember(), bob.AsMember(), carol.AsMember()},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	named := &models.Expense{
		GroupID:     group.ID,
		Description: "Taxi",
		Amount:      decimal.NewFromInt(10),
		PaidBy:      alice.ID,
		SplitAmong:  []string{alice.ID, bob.ID},
	}
	if err := store.AppendExpense(ctx, named); err != nil {
		t.Fatalf("AppendExpense failed: %v", err)
	}

	t.Run("RemoveGroupMember refuses a member named in a split", func(t *testing.T) {
		err := store.RemoveGroupMember(ctx, group.ID, bob.ID)
		if !errors.Is(err, storage.ErrMembershipConflict) {
			t.Fatalf("Expected ErrMembershipConflict, got %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.HasMember(bob.ID) {
			t.Error("Expected bob to remain a member after the refused removal")
		}
	})

	t.Run("AppendExpense refuses a split naming a former member", func(t *testing.T) {
		if err := store.RemoveGroupMember(ctx, group.ID, carol.ID); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}

		err := store.AppendExpense(ctx, &models.Expense{
			GroupID:     group.ID,
			Description: "Late dinner",
			Amount:      decimal.NewFromInt(20),
			PaidBy:      alice.ID,
			SplitAmong:  []string{alice.ID, carol.ID},
		})
		if !errors.Is(err, storage.ErrMembershipConflict) {
			t.Fatalf("Expected ErrMembershipConflict, got %v", err)
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("Expected the refused expense to be rolled back, got %d expenses", len(expenses))
		}
	})
}

func TestMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	group := &models.Group{Name: "Chat", CreatedBy: alice.ID, Members: []models.Member{alice.AsMember()}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	for i, text := range []string{"first", "second", "third"} {
		msg := &models.Message{GroupID: group.ID, UserID: alice.ID, Text: text, CreatedAt: int64(100 + i)}
		if err := store.AppendMessage(ctx, msg); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
		if msg.ID == "" {
			t.Fatal("Expected message ID to be generated")
		}
	}
	linked := &models.Message{
		GroupID:   group.ID,
		UserID:    alice.ID,
		Text:      "Expense added",
		Type:      models.MessageTypeExpense,
		ExpenseID: "exp-1",
		CreatedAt: 200,
	}
	if err := store.AppendMessage(ctx, linked); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	t.Run("newest first with limit", func(t *testing.T) {
		messages, err := store.ListMessagesByGroup(ctx, group.ID, 3)
		if err != nil {
			t.Fatalf("ListMessagesByGroup failed: %v", err)
		}
		if len(messages) != 3 {
			t.Fatalf("Expected 3 messages, got %d", len(messages))
		}
		if messages[0].ExpenseID != "exp-1" || messages[0].Type != models.MessageTypeExpense {
			t.Errorf("Expected the expense message first, got %+v", messages[0])
		}
		if messages[1].Text != "third" || messages[2].Text != "second" {
			t.Errorf("Unexpected order: %q, %q", messages[1].Text, messages[2].Text)
		}
		if messages[1].Type != models.MessageTypeText || messages[1].ExpenseID != "" {
			t.Errorf("Expected a plain text message, got %+v", messages[1])
		}
	})

	t.Run("missing group", func(t *testing.T) {
		if err := store.AppendMessage(ctx, &models.Message{GroupID: "missing", UserID: alice.ID, Text: "hi"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.ListMessagesByGroup(ctx, "missing", 10); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		var n int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if n != 0 {
			t.Errorf("Expected messages to be deleted with the group, got %d", n)
		}
	})
}
