package balance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendly/internal/calculator"
	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/storage"
)

// memorySource is an in-memory storage.GroupSource and storage.Ledger.
type memorySource struct {
	group    *models.Group
	expenses []*models.Expense
	failNext error
}

func (m *memorySource) GetGroup(_ context.Context, id string) (*models.Group, error) {
	if m.group == nil || m.group.ID != id {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	return m.group, nil
}

func (m *memorySource) ListExpensesByGroup(_ context.Context, id string) ([]*models.Expense, error) {
	if _, err := m.GetGroup(context.Background(), id); err != nil {
		return nil, err
	}
	return append([]*models.Expense(nil), m.expenses...), nil
}

func (m *memorySource) AppendExpense(_ context.Context, e *models.Expense) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	e.ID = fmt.Sprintf("exp-%d", len(m.expenses)+1)
	m.expenses = append(m.expenses, e)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSource() *memorySource {
	return &memorySource{
		group: &models.Group{
			ID:   "g1",
			Name: "Trip",
			Members: []models.Member{
				{ID: "a", Name: "Alice"},
				{ID: "b", Name: "Bob"},
				{ID: "c", Name: "Carol"},
			},
		},
		expenses: []*models.Expense{
			{ID: "e1", Amount: dec("30"), PaidBy: "a", Category: "Food"},
			{ID: "e2", Amount: dec("10"), PaidBy: "b", Category: "Transport", SplitAmong: []string{"b", "c"}},
			{ID: "e3", Amount: dec("6"), PaidBy: "c"},
		},
	}
}

func TestLoad(t *testing.T) {
	src := newSource()

	snap, err := Load(context.Background(), src, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Trip", snap.Group.Name)
	assert.Len(t, snap.Expenses, 3)
	assert.Equal(t, []string{"a", "b", "c"}, snap.MemberIDs())

	_, err = Load(context.Background(), src, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestBreakdown(t *testing.T) {
	src := newSource()
	src.expenses = append(src.expenses, &models.Expense{
		ID: "e4", Amount: dec("5"), PaidBy: "b", Category: models.SettlementCategory, SplitAmong: []string{"a"},
	})

	snap, err := Load(context.Background(), src, "g1")
	require.NoError(t, err)

	breakdown, err := snap.Breakdown()
	require.NoError(t, err)

	assert.Equal(t, "g1", breakdown.GroupID)
	assert.True(t, breakdown.TotalExpenses.Equal(dec("46")), "settlements are not expenses, got %s", breakdown.TotalExpenses)
	require.Len(t, breakdown.UserBreakdowns, 3)

	// a paid 30, owes 12 in shares and received 5 from b.
	alice := breakdown.UserBreakdowns[0]
	assert.Equal(t, "Alice", alice.UserName)
	assert.True(t, alice.Balance.Equal(dec("13")), "alice balance %s", alice.Balance)

	sum := decimal.Zero
	for _, ub := range breakdown.UserBreakdowns {
		sum = sum.Add(ub.Balance)
	}
	assert.True(t, sum.IsZero(), "balances sum to %s", sum)

	require.Len(t, breakdown.Categories, 3)
	assert.Equal(t, "Food", breakdown.Categories[0].Category)
	assert.Equal(t, models.DefaultCategory, breakdown.Categories[1].Category)
	assert.Equal(t, "Transport", breakdown.Categories[2].Category)
	assert.Empty(t, breakdown.Inconsistencies)
}

func TestBreakdown_DepartedPayer(t *testing.T) {
	src := newSource()
	src.expenses = append(src.expenses, &models.Expense{ID: "e9", Amount: dec("9"), PaidBy: "dave"})

	snap, err := Load(context.Background(), src, "g1")
	require.NoError(t, err)

	breakdown, err := snap.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, []string{"e9"}, breakdown.Inconsistencies)

	require.Len(t, breakdown.UserBreakdowns, 4)
	dave := breakdown.UserBreakdowns[3]
	assert.Equal(t, "dave", dave.UserID)
	assert.Equal(t, "dave", dave.UserName)
	assert.True(t, dave.Departed)
}

func TestBreakdown_EmptyGroup(t *testing.T) {
	src := newSource()
	src.group.Members = nil

	snap, err := Load(context.Background(), src, "g1")
	require.NoError(t, err)

	_, err = snap.Breakdown()
	assert.ErrorIs(t, err, calculator.ErrInvalidGroupState)
}

func TestSettlementOptions(t *testing.T) {
	snap, err := Load(context.Background(), newSource(), "g1")
	require.NoError(t, err)

	// a = 30 - 12 = 18, b = 10 - 17 = -7, c = 6 - 17 = -11
	balance, options, err := snap.SettlementOptions("b")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("-7")), "b balance %s", balance)

	require.Len(t, options, 2)
	assert.Equal(t, "a", options[0].UserID)
	assert.Equal(t, "Alice", options[0].UserName)
	assert.True(t, options[0].CanSettle)
	assert.True(t, options[0].Amount.Equal(dec("7")), "amount %s", options[0].Amount)

	assert.Equal(t, "c", options[1].UserID)
	assert.False(t, options[1].CanSettle, "two debtors cannot settle with each other")

	_, _, err = snap.SettlementOptions("zed")
	assert.ErrorIs(t, err, calculator.ErrValidation)
}

func TestRecordSettlement(t *testing.T) {
	src := newSource()
	ctx := context.Background()

	snap, err := Load(ctx, src, "g1")
	require.NoError(t, err)

	expense, err := snap.RecordSettlement(ctx, src, "b", "a", dec("7"))
	require.NoError(t, err)
	assert.Equal(t, "exp-4", expense.ID)
	assert.Equal(t, models.SettlementCategory, expense.Category)
	assert.Equal(t, "Settlement: Bob → Alice", expense.Description)
	assert.Equal(t, "a", expense.Payee())

	reloaded, err := Load(ctx, src, "g1")
	require.NoError(t, err)
	balance, options, err := reloaded.SettlementOptions("b")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "b should be settled, got %s", balance)
	assert.Empty(t, options)

	t.Run("rejects invalid settlements", func(t *testing.T) {
		_, err := snap.RecordSettlement(ctx, src, "b", "b", dec("1"))
		assert.ErrorIs(t, err, calculator.ErrValidation)
		_, err = snap.RecordSettlement(ctx, src, "b", "a", dec("0"))
		assert.ErrorIs(t, err, calculator.ErrValidation)
		_, err = snap.RecordSettlement(ctx, src, "b", "dave", dec("1"))
		assert.ErrorIs(t, err, calculator.ErrValidation)
	})

	t.Run("ledger failure", func(t *testing.T) {
		src.failNext = errors.New("disk full")
		_, err := snap.RecordSettlement(ctx, src, "c", "a", dec("1"))
		assert.ErrorContains(t, err, "disk full")
	})
}
