package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendly/internal/balance"
	"github.com/mmynk/spendly/internal/rpc"
)

var flagGroup string

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show who owes whom in a group",
	Long:  "Fetches the group's members and expenses and computes balances locally.",
	RunE:  runBalances,
}

func init() {
	balancesCmd.Flags().StringVar(&flagGroup, "group", "", "Group ID")
	_ = balancesCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	session, err := loadSession(ctx)
	if err != nil {
		return err
	}

	source := rpc.NewRemoteSource(http.DefaultClient, flagServer, session)
	snap, err := balance.Load(ctx, source, flagGroup)
	if err != nil {
		return err
	}

	breakdown, err := snap.Breakdown()
	if err != nil {
		return err
	}
	bal, options, err := snap.SettlementOptions(session.UserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBreakdown(breakdown))
	fmt.Fprint(out, renderOptions(bal, options))
	return nil
}
