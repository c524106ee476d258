package calculator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Expense is an expense with the minimal information needed for balance calculations.
type Expense struct {
	Amount decimal.Decimal
	PaidBy string

	// SplitAmong lists the members sharing the expense.
	// Empty means all current group members.
	SplitAmong []string
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID  string
	TotalPaid decimal.Decimal // Sum of amounts this member paid
	TotalOwed decimal.Decimal // Sum of this member's shares
	Balance   decimal.Decimal // Positive = owed money, Negative = owes money

	// Departed is set for payers that are no longer group members.
	// They keep their TotalPaid so the group still sums to zero.
	Departed bool
}

// Inconsistency records an expense paid by someone outside the current member set.
type Inconsistency struct {
	ExpenseIndex int
	PaidBy       string
}

// Result is the output of ComputeBalances.
type Result struct {
	// Balances is ordered by member ID.
	Balances []MemberBalance

	// Inconsistencies lists expenses whose payer is not a current member.
	Inconsistencies []Inconsistency
}

// Balance returns the balance of memberID.
func (r *Result) Balance(memberID string) (MemberBalance, bool) {
	i, found := slices.BinarySearchFunc(r.Balances, memberID, func(b MemberBalance, id string) int {
		return strings.Compare(b.MemberID, id)
	})
	if !found {
		return MemberBalance{}, false
	}
	return r.Balances[i], true
}

// Total returns the sum of all balances. It is zero for every valid result.
func (r *Result) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Balances {
		total = total.Add(b.Balance)
	}
	return total
}

type options struct {
	strictMembership bool
}

// Option configures ComputeBalances.
type Option func(*options)

// WithStrictMembership makes an expense paid by a non-member an error instead
// of an advisory inconsistency.
func WithStrictMembership() Option {
	return func(o *options) {
		o.strictMembership = true
	}
}

// ComputeBalances computes each member's paid, owed, and net position.
//
// Algorithm:
//   - Payer of each expense: total_paid += amount
//   - Expenses without SplitAmong are split equally across all current members,
//     whoever belonged to the group when the expense was recorded
//   - Expenses with SplitAmong are split equally across exactly those members
//   - balance = total_paid - total_owed
//
// Shares are allocated in whole cents (see SplitExpense), so the balances of
// a group always sum to exactly zero.
func ComputeBalances(members []string, expenses []Expense, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("%w: group has no members", ErrInvalidGroupState)
	}

	balances := make(map[string]*MemberBalance, len(members))
	for _, id := range members {
		if id == "" {
			return nil, fmt.Errorf("%w: empty member id", ErrValidation)
		}
		if _, exists := balances[id]; exists {
			return nil, fmt.Errorf("%w: duplicate member id %q", ErrValidation, id)
		}
		balances[id] = &MemberBalance{
			MemberID:  id,
			TotalPaid: decimal.Zero,
			TotalOwed: decimal.Zero,
		}
	}

	result := &Result{}
	for i, expense := range expenses {
		if expense.PaidBy == "" {
			return nil, fmt.Errorf("%w: expense %d has no payer", ErrValidation, i)
		}

		participants := expense.SplitAmong
		if len(participants) == 0 {
			participants = members
		}
		for _, p := range participants {
			if _, ok := balances[p]; !ok || balances[p].Departed {
				return nil, fmt.Errorf("%w: expense %d is split with unknown member %q", ErrValidation, i, p)
			}
		}

		shares, err := SplitExpense(expense.Amount, participants, i)
		if err != nil {
			return nil, fmt.Errorf("failed to split expense %d: %w", i, err)
		}

		payer, ok := balances[expense.PaidBy]
		if !ok || payer.Departed {
			if o.strictMembership {
				return nil, fmt.Errorf("%w: expense %d paid by %q: %w", ErrValidation, i, expense.PaidBy, ErrReferentialInconsistency)
			}
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{ExpenseIndex: i, PaidBy: expense.PaidBy})
		}
		if !ok {
			payer = &MemberBalance{
				MemberID:  expense.PaidBy,
				TotalPaid: decimal.Zero,
				TotalOwed: decimal.Zero,
				Departed:  true,
			}
			balances[expense.PaidBy] = payer
		}
		payer.TotalPaid = payer.TotalPaid.Add(expense.Amount)

		for participant, share := range shares {
			balances[participant].TotalOwed = balances[participant].TotalOwed.Add(share)
		}
	}

	result.Balances = make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.Balance = bal.TotalPaid.Sub(bal.TotalOwed)
		result.Balances = append(result.Balances, *bal)
	}
	slices.SortFunc(result.Balances, func(a, b MemberBalance) int {
		return strings.Compare(a.MemberID, b.MemberID)
	})

	return result, nil
}
