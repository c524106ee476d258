package models

import "github.com/shopspring/decimal"

// DefaultCategory is used when an expense is recorded without a category.
const DefaultCategory = "Other"

// Expense is a single payment event inside a group.
// Expenses are immutable once listed; there is no edit path.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group that owns this expense.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the total paid, in currency units with at most two decimal places.
	Amount decimal.Decimal

	// PaidBy is the member ID of the payer.
	PaidBy string

	// Category groups expenses for reporting (e.g., "Food", "Transport", "Settlement").
	Category string

	// SplitAmong lists the member IDs sharing this expense.
	// Empty means the expense is split equally across all current group members.
	SplitAmong []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
