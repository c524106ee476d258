package models

// SettlementCategory marks an expense that records a payment between two
// members rather than a shared cost.
const SettlementCategory = "Settlement"

// IsSettlement reports whether the expense is a recorded settlement.
func (e *Expense) IsSettlement() bool {
	return e.Category == SettlementCategory
}

// Payee returns the member who received a settlement payment.
// It returns an empty string for ordinary expenses.
func (e *Expense) Payee() string {
	if !e.IsSettlement() || len(e.SplitAmong) != 1 {
		return ""
	}
	return e.SplitAmong[0]
}
