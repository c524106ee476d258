package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/balance"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

// BalanceService implements the Connect BalanceService on top of the balance engine.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// snapshot loads groupID after checking the caller belongs to it.
func (s *BalanceService) snapshot(ctx context.Context, groupID, userID string) (*balance.Snapshot, error) {
	if _, err := memberGroup(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}
	snap, err := balance.Load(ctx, s.store, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return snap, nil
}

// GetBreakdown returns per-member and per-category totals for one group.
func (s *BalanceService) GetBreakdown(ctx context.Context, req *connect.Request[rpc.GetBreakdownRequest]) (*connect.Response[rpc.GetBreakdownResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	breakdown, err := snap.Breakdown()
	if err != nil {
		slog.Error("GetBreakdown failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetBreakdown successful",
		"group_id", breakdown.GroupID,
		"expenses_count", len(snap.Expenses),
		"inconsistencies", len(breakdown.Inconsistencies),
	)
	return connect.NewResponse(&rpc.GetBreakdownResponse{Breakdown: breakdown}), nil
}

// GetOverallBreakdown returns a breakdown for every group the caller belongs to.
func (s *BalanceService) GetOverallBreakdown(ctx context.Context, req *connect.Request[rpc.GetOverallBreakdownRequest]) (*connect.Response[rpc.GetOverallBreakdownResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("GetOverallBreakdown failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &rpc.GetOverallBreakdownResponse{Breakdowns: make([]*rpc.GroupBreakdown, 0, len(groups))}
	for _, group := range groups {
		snap, err := balance.Load(ctx, s.store, group.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		breakdown, err := snap.Breakdown()
		if err != nil {
			slog.Error("GetOverallBreakdown failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		resp.Breakdowns = append(resp.Breakdowns, breakdown)
	}

	return connect.NewResponse(resp), nil
}

// GetSettlementOptions lists the members the caller can settle with directly.
func (s *BalanceService) GetSettlementOptions(ctx context.Context, req *connect.Request[rpc.GetSettlementOptionsRequest]) (*connect.Response[rpc.GetSettlementOptionsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	bal, options, err := snap.SettlementOptions(userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&rpc.GetSettlementOptionsResponse{
		Balance: bal,
		Options: options,
	}), nil
}

// RecordSettlement records a payment from the caller to another member.
func (s *BalanceService) RecordSettlement(ctx context.Context, req *connect.Request[rpc.RecordSettlementRequest]) (*connect.Response[rpc.RecordSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("RecordSettlement request received",
		"group_id", req.Msg.GroupID,
		"payee_id", req.Msg.PayeeID,
		"amount", req.Msg.Amount,
	)

	snap, err := s.snapshot(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expense, err := snap.RecordSettlement(ctx, s.store, userID, req.Msg.PayeeID, req.Msg.Amount)
	if err != nil {
		slog.Warn("RecordSettlement failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement recorded", "expense_id", expense.ID, "group_id", expense.GroupID)
	announceExpense(ctx, s.store, snap.Group, userID, expense)

	return connect.NewResponse(&rpc.RecordSettlementResponse{
		Expense: rpc.ExpenseFromModel(expense),
		Message: fmt.Sprintf("Recorded payment of %s to %s", expense.Amount.StringFixed(2), snap.Group.MemberName(req.Msg.PayeeID)),
	}), nil
}
