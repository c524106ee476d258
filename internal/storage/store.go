// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/spendly/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMembershipConflict is returned when a write would leave an expense
	// split naming someone who is not a group member.
	ErrMembershipConflict = errors.New("membership conflict")
)

// GroupSource is the read side the balance engine consumes: a group snapshot
// with its member list, and the expenses recorded in it.
type GroupSource interface {
	// GetGroup retrieves a group and its current members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListExpensesByGroup returns every expense of the group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
}

// Ledger appends expense-like entries, including recorded settlements.
type Ledger interface {
	// AppendExpense persists a new expense.
	// The expense.ID and CreatedAt fields are populated by the store when empty.
	// It fails with ErrMembershipConflict if SplitAmong names a non-member.
	AppendExpense(ctx context.Context, expense *models.Expense) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	GroupSource
	Ledger

	// CreateGroup persists a new group with its initial members.
	// The group.ID and CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// ListGroupsByMember returns the groups userID currently belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Adding an existing member is a no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes a user from a group. Expenses they paid stay in
	// the ledger; if any expense split names them the removal fails with
	// ErrMembershipConflict and nothing changes.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// DeleteGroup removes a group and all of its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// AppendMessage persists a chat message.
	// The message.ID and CreatedAt fields are populated by the store when empty.
	AppendMessage(ctx context.Context, message *models.Message) error

	// ListMessagesByGroup returns up to limit messages of the group, newest first.
	ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]*models.Message, error)

	// CreateUser persists a new user. The user.ID field is populated when empty.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
