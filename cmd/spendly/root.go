package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/spendly/internal/rpc"
)

const tokenEnv = "SPENDLY_TOKEN"

var (
	flagServer  string
	flagToken   string
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "spendly",
	Short:         "Shared expenses from the terminal",
	Long:          "Check group balances and record settlements against a Spendly server.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "Spendly server URL")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Session token (default $"+tokenEnv+")")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Request timeout")
}

// commandContext bounds a command's RPCs by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), flagTimeout)
}

// loadSession resolves the token and asks the server who it belongs to.
func loadSession(ctx context.Context) (rpc.Session, error) {
	token := flagToken
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	if token == "" {
		return rpc.Session{}, errors.New("not logged in: run `spendly login` and export " + tokenEnv)
	}

	session := rpc.Session{Token: token}
	client := rpc.NewAuthServiceClient(http.DefaultClient, flagServer, connect.WithInterceptors(session.BearerToken()))
	resp, err := client.GetCurrentUser(ctx, connect.NewRequest(&rpc.GetCurrentUserRequest{}))
	if err != nil {
		return rpc.Session{}, fmt.Errorf("session rejected by %s: %w", flagServer, err)
	}
	session.UserID = resp.Msg.User.ID
	return session, nil
}
