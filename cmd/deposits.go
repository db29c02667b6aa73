package cmd

import (
	"fmt"

	"billplan/internal/cli"
	"billplan/internal/forecast"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var depositsCmd = &cobra.Command{
	Use:   "deposits",
	Short: "Upcoming income, one-time and recurring",
	RunE:  runDeposits,
}

func init() {
	rootCmd.AddCommand(depositsCmd)
}

func runDeposits(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	today, err := asOf()
	if err != nil {
		return err
	}

	weeks := forecast.BuildWeeks(weekCount(cfg), 0, today)
	sched := forecast.Assign(weeks, nil, snap.Deposits, snap.Rules, today)
	sym := currency(cfg)

	count := 0
	for _, w := range sched.Weeks {
		count += len(w.Deposits)
	}
	if count == 0 {
		fmt.Printf("\n  No income scheduled in the next %d weeks.\n", len(sched.Weeks))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INCOME  next %d weeks", len(sched.Weeks))))
	fmt.Println()

	total := decimal.Zero
	rows := make([][]string, 0, count+2)
	for _, w := range sched.Weeks {
		for _, d := range w.Deposits {
			kind := "one-time"
			if d.RuleID != nil {
				kind = "recurring"
			}
			rows = append(rows, []string{
				cli.FormatDate(d.Date),
				d.Name,
				kind,
				cli.FormatMoney(d.Amount, sym),
			})
			total = total.Add(d.Amount)
		}
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", cli.FormatMoney(total, sym)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Deposit", "Type", "Amount"},
		Rows:    rows,
	}))

	return nil
}
