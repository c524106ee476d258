package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/spendly/internal/rpc"
)

var (
	flagEmail    string
	flagPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (default $SPENDLY_PASSWORD, else read from stdin)")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func readPassword(cmd *cobra.Command) (string, error) {
	if flagPassword != "" {
		return flagPassword, nil
	}
	if p := os.Getenv("SPENDLY_PASSWORD"); p != "" {
		return p, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password required")
	}
	return password, nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	client := rpc.NewAuthServiceClient(http.DefaultClient, flagServer)
	resp, err := client.Login(ctx, connect.NewRequest(&rpc.LoginRequest{
		Email:    flagEmail,
		Password: password,
	}))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged in as %s\n", resp.Msg.User.DisplayName)
	fmt.Fprintf(out, "export %s=%s\n", tokenEnv, resp.Msg.Token)
	return nil
}
