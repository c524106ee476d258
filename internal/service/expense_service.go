package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/calculator"
	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// validateExpense checks an expense against the group it is recorded in.
func validateExpense(group *models.Group, expense *models.Expense) error {
	if strings.TrimSpace(expense.Description) == "" {
		return fmt.Errorf("%w: description required", calculator.ErrValidation)
	}
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", calculator.ErrValidation)
	}
	if err := calculator.ValidateAmount(expense.Amount); err != nil {
		return err
	}
	if expense.Category == models.SettlementCategory {
		return fmt.Errorf("%w: use RecordSettlement to record a settlement", calculator.ErrValidation)
	}
	if !group.HasMember(expense.PaidBy) {
		return fmt.Errorf("%w: payer %s is not a group member", calculator.ErrValidation, expense.PaidBy)
	}
	for _, id := range expense.SplitAmong {
		if !group.HasMember(id) {
			return fmt.Errorf("%w: %s is not a group member", calculator.ErrValidation, id)
		}
	}
	return nil
}

// CreateExpense records a shared expense in a group.
// The payer defaults to the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[rpc.CreateExpenseRequest]) (*connect.Response[rpc.CreateExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"split_count", len(req.Msg.SplitAmong),
	)

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: strings.TrimSpace(req.Msg.Description),
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		Category:    strings.TrimSpace(req.Msg.Category),
		SplitAmong:  req.Msg.SplitAmong,
	}
	if expense.PaidBy == "" {
		expense.PaidBy = userID
	}
	if expense.Category == "" {
		expense.Category = models.DefaultCategory
	}

	if err := validateExpense(group, expense); err != nil {
		slog.Warn("CreateExpense rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.AppendExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID)
	announceExpense(ctx, s.store, group, userID, expense)

	return connect.NewResponse(&rpc.CreateExpenseResponse{Expense: rpc.ExpenseFromModel(expense)}), nil
}

// ListExpenses returns a group's expenses and settlements, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[rpc.ListExpensesRequest]) (*connect.Response[rpc.ListExpensesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &rpc.ListExpensesResponse{Expenses: make([]*rpc.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = rpc.ExpenseFromModel(e)
	}
	return connect.NewResponse(resp), nil
}
