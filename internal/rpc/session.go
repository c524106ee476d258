package rpc

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/storage"
)

// Session carries the caller's identity between RPCs. It is passed explicitly
// to clients instead of living in process-wide state.
type Session struct {
	Token  string
	UserID string
}

// BearerToken returns a client interceptor that attaches the session token.
func (s Session) BearerToken() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && s.Token != "" {
				req.Header().Set("Authorization", "Bearer "+s.Token)
			}
			return next(ctx, req)
		}
	}
}

// Ensure RemoteSource implements storage.GroupSource
var _ storage.GroupSource = (*RemoteSource)(nil)

// RemoteSource reads group snapshots from a Spendly server, so the balance
// engine can run client-side on the same data the server sees.
type RemoteSource struct {
	groups   *GroupServiceClient
	expenses *ExpenseServiceClient
}

// NewRemoteSource builds a RemoteSource for the server at baseURL acting as session.
func NewRemoteSource(httpClient connect.HTTPClient, baseURL string, session Session) *RemoteSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	auth := connect.WithInterceptors(session.BearerToken())
	return &RemoteSource{
		groups:   NewGroupServiceClient(httpClient, baseURL, auth),
		expenses: NewExpenseServiceClient(httpClient, baseURL, auth),
	}
}

// GetGroup fetches a group and its members.
func (r *RemoteSource) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	resp, err := r.groups.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: groupID}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group %s: %w", groupID, err)
	}
	return resp.Msg.Group.ToModel(), nil
}

// ListExpensesByGroup fetches every expense of a group.
func (r *RemoteSource) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	resp, err := r.expenses.ListExpenses(ctx, connect.NewRequest(&ListExpensesRequest{GroupID: groupID}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses for group %s: %w", groupID, err)
	}
	expenses := make([]*models.Expense, len(resp.Msg.Expenses))
	for i, e := range resp.Msg.Expenses {
		expenses[i] = e.ToModel()
	}
	return expenses, nil
}
