package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/spendly/internal/auth"
	"github.com/mmynk/spendly/internal/middleware"
	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage/sqlite"
)

// testServer is a running API backed by a temporary SQLite database.
type testServer struct {
	URL   string
	store *sqlite.SQLiteStore
	jwt   *auth.JWTManager
}

// client bundles typed clients acting as one user.
type client struct {
	user     *models.User
	session  rpc.Session
	groups   *rpc.GroupServiceClient
	expenses *rpc.ExpenseServiceClient
	balances *rpc.BalanceServiceClient
	messages *rpc.MessageServiceClient
	auth     *rpc.AuthServiceClient
}

// setupTestServer creates a test server with all services behind the real auth interceptor.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "spendly-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager, rpc.AuthServiceRegisterProcedure, rpc.AuthServiceLoginProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(rpc.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors))
	mux.Handle(rpc.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(rpc.NewExpenseServiceHandler(NewExpenseService(store), interceptors))
	mux.Handle(rpc.NewBalanceServiceHandler(NewBalanceService(store), interceptors))
	mux.Handle(rpc.NewMessageServiceHandler(NewMessageService(store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{URL: server.URL, store: store, jwt: jwtManager}
}

// newClient registers a user directly in the store and returns clients acting as them.
func (s *testServer) newClient(t *testing.T, email, name string) *client {
	t.Helper()

	user := models.NewUser(email, name, "unused")
	if err := s.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	token, err := s.jwt.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return s.clientFor(user, rpc.Session{Token: token, UserID: user.ID})
}

func (s *testServer) clientFor(user *models.User, session rpc.Session) *client {
	opts := connect.WithInterceptors(session.BearerToken())
	return &client{
		user:     user,
		session:  session,
		groups:   rpc.NewGroupServiceClient(http.DefaultClient, s.URL, opts),
		expenses: rpc.NewExpenseServiceClient(http.DefaultClient, s.URL, opts),
		balances: rpc.NewBalanceServiceClient(http.DefaultClient, s.URL, opts),
		messages: rpc.NewMessageServiceClient(http.DefaultClient, s.URL, opts),
		auth:     rpc.NewAuthServiceClient(http.DefaultClient, s.URL, opts),
	}
}

func (c *client) createGroup(t *testing.T, name string, emails ...string) *rpc.Group {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&rpc.CreateGroupRequest{
		Name:         name,
		MemberEmails: emails,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func (c *client) addExpense(t *testing.T, groupID, amount string, splitAmong ...string) *rpc.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&rpc.CreateExpenseRequest{
		GroupID:     groupID,
		Description: "Dinner",
		Amount:      decimal.RequireFromString(amount),
		SplitAmong:  splitAmong,
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func (c *client) breakdown(t *testing.T, groupID string) *rpc.GroupBreakdown {
	t.Helper()
	resp, err := c.balances.GetBreakdown(context.Background(), connect.NewRequest(&rpc.GetBreakdownRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("GetBreakdown failed: %v", err)
	}
	return resp.Msg.Breakdown
}

func memberBalance(t *testing.T, b *rpc.GroupBreakdown, userID string) *rpc.MemberBreakdown {
	t.Helper()
	for _, ub := range b.UserBreakdowns {
		if ub.UserID == userID {
			return ub
		}
	}
	t.Fatalf("no breakdown for %s", userID)
	return nil
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Code() != want {
		t.Errorf("code: expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
