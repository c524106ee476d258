package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mmynk/spendly/internal/rpc"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3AA99F"))
	owedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39"))
	owesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6F6E69"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DA702C"))
)

// money formats an amount with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// balanceCell colors a balance: green when owed, red when owing.
func balanceCell(d decimal.Decimal, width int) string {
	cell := fmt.Sprintf("%*s", width, money(d))
	switch d.Sign() {
	case 1:
		return owedStyle.Render(cell)
	case -1:
		return owesStyle.Render(cell)
	default:
		return mutedStyle.Render(cell)
	}
}

// renderBreakdown renders the member table of one group.
func renderBreakdown(b *rpc.GroupBreakdown) string {
	names := make([]string, len(b.UserBreakdowns))
	nameWidth := len("Member")
	for i, ub := range b.UserBreakdowns {
		names[i] = ub.UserName
		if ub.Departed {
			names[i] += " (left)"
		}
		nameWidth = max(nameWidth, len(names[i]))
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(b.GroupName))
	fmt.Fprintf(&sb, "  total spent %s\n\n", money(b.TotalExpenses))
	fmt.Fprintf(&sb, "%-*s  %10s  %10s  %10s\n", nameWidth, "Member", "Paid", "Share", "Balance")
	for i, ub := range b.UserBreakdowns {
		fmt.Fprintf(&sb, "%-*s  %10s  %10s  %s\n",
			nameWidth, names[i], money(ub.TotalPaid), money(ub.TotalOwed), balanceCell(ub.Balance, 10))
	}

	if len(b.Inconsistencies) > 0 {
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%d expense(s) paid by members who left the group", len(b.Inconsistencies))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderOptions renders the viewer's direct settlement options.
func renderOptions(balance decimal.Decimal, options []*rpc.SettlementOption) string {
	var sb strings.Builder
	switch balance.Sign() {
	case 1:
		fmt.Fprintf(&sb, "You are owed %s\n", owedStyle.Render(money(balance)))
	case -1:
		fmt.Fprintf(&sb, "You owe %s\n", owesStyle.Render(money(balance.Abs())))
	default:
		sb.WriteString("You are settled up.\n")
		return sb.String()
	}

	for _, opt := range options {
		if !opt.CanSettle {
			continue
		}
		if balance.IsNegative() {
			fmt.Fprintf(&sb, "  pay %s %s   (spendly settle --to %s --amount %s)\n",
				opt.UserName, money(opt.Amount), opt.UserID, money(opt.Amount))
		} else {
			fmt.Fprintf(&sb, "  %s can pay you %s\n", opt.UserName, money(opt.Amount))
		}
	}
	return sb.String()
}
