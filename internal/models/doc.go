// Package models defines the core domain models for Spendly.
//
// # Models
//
//   - User: registered account; every group member is a user
//   - Group: named set of members sharing expenses
//   - Member: a user as seen from inside one group
//   - Expense: a single payment event (payer, amount, category, timestamp)
//
// A settlement between two members is not a separate entity. It is an Expense
// with Category "Settlement" whose SplitAmong holds only the payee, so the
// balance engine treats it like any other ledger entry.
//
// # Design Principles
//
// 1. **Amounts are decimals**: money uses shopspring/decimal, never float64
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Derived data is not stored**: balances are recomputed from the expense list on demand
package models
