package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/spendly/internal/rpc"
)

var (
	flagTo     string
	flagAmount string
)

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Record a payment you made to another member",
	RunE:  runSettle,
}

func init() {
	settleCmd.Flags().StringVar(&flagGroup, "group", "", "Group ID")
	settleCmd.Flags().StringVar(&flagTo, "to", "", "Member who received the payment (user ID or email)")
	settleCmd.Flags().StringVar(&flagAmount, "amount", "", "Amount paid, e.g. 12.50")
	for _, name := range []string{"group", "to", "amount"} {
		_ = settleCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(settleCmd)
}

// resolvePayee maps --to onto a member ID, accepting an ID or an email.
func resolvePayee(ctx context.Context, groups *rpc.GroupServiceClient, groupID, to string) (string, error) {
	resp, err := groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: groupID}))
	if err != nil {
		return "", err
	}
	for _, m := range resp.Msg.Group.Members {
		if m.ID == to || strings.EqualFold(m.Email, to) {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("%s is not a member of %s", to, resp.Msg.Group.Name)
}

func runSettle(cmd *cobra.Command, _ []string) error {
	amount, err := decimal.NewFromString(flagAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", flagAmount, err)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	session, err := loadSession(ctx)
	if err != nil {
		return err
	}
	opts := connect.WithInterceptors(session.BearerToken())

	payeeID, err := resolvePayee(ctx, rpc.NewGroupServiceClient(http.DefaultClient, flagServer, opts), flagGroup, flagTo)
	if err != nil {
		return err
	}

	client := rpc.NewBalanceServiceClient(http.DefaultClient, flagServer, opts)
	resp, err := client.RecordSettlement(ctx, connect.NewRequest(&rpc.RecordSettlementRequest{
		GroupID: flagGroup,
		PayeeID: payeeID,
		Amount:  amount,
	}))
	if err != nil {
		return fmt.Errorf("settlement rejected: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Message)
	return nil
}
