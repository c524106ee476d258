// Package balance runs the balance calculator over stored group snapshots.
//
// It sits between a storage.GroupSource (local SQLite or a remote server) and
// the pure functions in package calculator, and shapes the results for the
// API and the CLI.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendly/internal/calculator"
	"github.com/mmynk/spendly/internal/metrics"
	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

// displayPlaces is the rounding applied when balances leave the engine.
const displayPlaces = 2

// Snapshot is a group and its expenses read at one point in time.
type Snapshot struct {
	Group    *models.Group
	Expenses []*models.Expense
}

// Load reads a snapshot of groupID from source.
func Load(ctx context.Context, source storage.GroupSource, groupID string) (*Snapshot, error) {
	group, err := source.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := source.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Group: group, Expenses: expenses}, nil
}

// MemberIDs returns the IDs of the group's current members.
func (s *Snapshot) MemberIDs() []string {
	ids := make([]string, len(s.Group.Members))
	for i, m := range s.Group.Members {
		ids[i] = m.ID
	}
	return ids
}

// Compute runs calculator.ComputeBalances on the snapshot.
func (s *Snapshot) Compute() (*calculator.Result, error) {
	expenses := make([]calculator.Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		expenses[i] = calculator.Expense{
			Amount:     e.Amount,
			PaidBy:     e.PaidBy,
			SplitAmong: e.SplitAmong,
		}
	}

	start := time.Now()
	result, err := calculator.ComputeBalances(s.MemberIDs(), expenses)
	metrics.ObserveBalanceComputation(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances for group %s: %w", s.Group.ID, err)
	}

	for _, inc := range result.Inconsistencies {
		slog.Warn("Expense paid by non-member",
			"group_id", s.Group.ID,
			"expense_id", s.Expenses[inc.ExpenseIndex].ID,
			"paid_by", inc.PaidBy,
		)
	}

	return result, nil
}

// Breakdown computes the per-member and per-category view of the group.
func (s *Snapshot) Breakdown() (*rpc.GroupBreakdown, error) {
	result, err := s.Compute()
	if err != nil {
		return nil, err
	}

	breakdown := &rpc.GroupBreakdown{
		GroupID:        s.Group.ID,
		GroupName:      s.Group.Name,
		TotalExpenses:  decimal.Zero,
		UserBreakdowns: make([]*rpc.MemberBreakdown, len(result.Balances)),
	}

	for i, b := range result.Balances {
		breakdown.UserBreakdowns[i] = &rpc.MemberBreakdown{
			UserID:    b.MemberID,
			UserName:  s.Group.MemberName(b.MemberID),
			TotalPaid: b.TotalPaid.Round(displayPlaces),
			TotalOwed: b.TotalOwed.Round(displayPlaces),
			Balance:   b.Balance.Round(displayPlaces),
			Departed:  b.Departed,
		}
	}

	totals := make(map[string]decimal.Decimal)
	for _, e := range s.Expenses {
		if e.IsSettlement() {
			continue
		}
		breakdown.TotalExpenses = breakdown.TotalExpenses.Add(e.Amount)
		category := e.Category
		if category == "" {
			category = models.DefaultCategory
		}
		totals[category] = totals[category].Add(e.Amount)
	}
	for category, total := range totals {
		breakdown.Categories = append(breakdown.Categories, &rpc.CategoryTotal{Category: category, Total: total})
	}
	slices.SortFunc(breakdown.Categories, func(a, b *rpc.CategoryTotal) int {
		return strings.Compare(a.Category, b.Category)
	})

	for _, inc := range result.Inconsistencies {
		breakdown.Inconsistencies = append(breakdown.Inconsistencies, s.Expenses[inc.ExpenseIndex].ID)
	}

	return breakdown, nil
}

// SettlementOptions returns viewerID's balance and the members they can settle with.
func (s *Snapshot) SettlementOptions(viewerID string) (decimal.Decimal, []*rpc.SettlementOption, error) {
	result, err := s.Compute()
	if err != nil {
		return decimal.Zero, nil, err
	}

	viewer, ok := result.Balance(viewerID)
	if !ok {
		return decimal.Zero, nil, fmt.Errorf("%w: %s is not a member of group %s", calculator.ErrValidation, viewerID, s.Group.ID)
	}

	suggestions := calculator.SuggestSettlements(result.Balances, viewerID)
	options := make([]*rpc.SettlementOption, len(suggestions))
	for i, opt := range suggestions {
		options[i] = &rpc.SettlementOption{
			UserID:    opt.CounterpartID,
			UserName:  s.Group.MemberName(opt.CounterpartID),
			Balance:   opt.Balance.Round(displayPlaces),
			CanSettle: opt.CanSettle,
			Amount:    opt.Amount.Round(displayPlaces),
		}
	}

	return viewer.Balance.Round(displayPlaces), options, nil
}

// RecordSettlement validates a payment from payerID to payeeID and appends it
// to the ledger as a "Settlement" expense split entirely to the payee.
func (s *Snapshot) RecordSettlement(ctx context.Context, ledger storage.Ledger, payerID, payeeID string, amount decimal.Decimal) (*models.Expense, error) {
	entry, err := calculator.NewSettlement(s.MemberIDs(), payerID, payeeID, amount)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     s.Group.ID,
		Description: fmt.Sprintf("Settlement: %s → %s", s.Group.MemberName(payerID), s.Group.MemberName(payeeID)),
		Amount:      entry.Amount,
		PaidBy:      entry.PaidBy,
		Category:    models.SettlementCategory,
		SplitAmong:  entry.SplitAmong,
	}
	if err := ledger.AppendExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}
	metrics.SettlementRecorded()

	s.Expenses = append(s.Expenses, expense)
	return expense, nil
}
