package calculator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance below which a balance counts as settled.
var Epsilon = decimal.New(1, -centPlaces)

// Partition splits balances into creditors (owed money), debtors (owe money),
// and members that are settled within Epsilon. Input order is preserved.
func Partition(balances []MemberBalance) (creditors, debtors, settled []MemberBalance) {
	negEpsilon := Epsilon.Neg()
	for _, b := range balances {
		switch {
		case b.Balance.GreaterThan(Epsilon):
			creditors = append(creditors, b)
		case b.Balance.LessThan(negEpsilon):
			debtors = append(debtors, b)
		default:
			settled = append(settled, b)
		}
	}
	return creditors, debtors, settled
}

// SettlementOption is one counterpart the viewer could settle with.
type SettlementOption struct {
	CounterpartID string
	Balance       decimal.Decimal // Counterpart's balance

	// CanSettle is true when the viewer and the counterpart have opposite
	// signs: one owes money and the other is owed.
	CanSettle bool

	// Amount is min(|viewer|, |counterpart|) when CanSettle, zero otherwise.
	Amount decimal.Decimal
}

// SuggestSettlements lists the members viewerID could settle with directly.
//
// Every other member outside Epsilon of zero is listed, ordered by member ID.
// Same-sign pairs are listed with CanSettle=false. No multi-hop netting is
// attempted. The list is empty when the viewer is settled or unknown.
// Departed payers are skipped since they can no longer receive settlements.
func SuggestSettlements(balances []MemberBalance, viewerID string) []SettlementOption {
	idx := slices.IndexFunc(balances, func(b MemberBalance) bool {
		return b.MemberID == viewerID
	})
	if idx < 0 {
		return nil
	}
	viewer := balances[idx]
	if viewer.Balance.Abs().LessThanOrEqual(Epsilon) {
		return nil
	}

	var suggestions []SettlementOption
	for _, b := range balances {
		if b.MemberID == viewerID || b.Departed {
			continue
		}
		if b.Balance.Abs().LessThanOrEqual(Epsilon) {
			continue
		}

		opt := SettlementOption{
			CounterpartID: b.MemberID,
			Balance:       b.Balance,
			CanSettle:     viewer.Balance.Sign() != b.Balance.Sign(),
			Amount:        decimal.Zero,
		}
		if opt.CanSettle {
			opt.Amount = decimal.Min(viewer.Balance.Abs(), b.Balance.Abs())
		}
		suggestions = append(suggestions, opt)
	}

	slices.SortFunc(suggestions, func(a, b SettlementOption) int {
		return strings.Compare(a.CounterpartID, b.CounterpartID)
	})
	return suggestions
}

// NewSettlement validates a payment from payerID to payeeID and returns the
// ledger entry that records it. The entry is split entirely to the payee, so
// recomputing balances moves exactly amount between the two members and
// leaves everyone else untouched.
func NewSettlement(members []string, payerID, payeeID string, amount decimal.Decimal) (Expense, error) {
	if !amount.IsPositive() {
		return Expense{}, fmt.Errorf("%w: settlement amount must be positive, got %s", ErrValidation, amount)
	}
	if err := ValidateAmount(amount); err != nil {
		return Expense{}, err
	}
	if payerID == payeeID {
		return Expense{}, fmt.Errorf("%w: payer and payee must differ", ErrValidation)
	}
	if !slices.Contains(members, payerID) {
		return Expense{}, fmt.Errorf("%w: payer %q is not a group member", ErrValidation, payerID)
	}
	if !slices.Contains(members, payeeID) {
		return Expense{}, fmt.Errorf("%w: payee %q is not a group member", ErrValidation, payeeID)
	}

	return Expense{
		Amount:     amount,
		PaidBy:     payerID,
		SplitAmong: []string{payeeID},
	}, nil
}
