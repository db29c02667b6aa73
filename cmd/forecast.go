package cmd

import (
	"fmt"

	"billplan/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Weekly cash-flow projection",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	today, err := asOf()
	if err != nil {
		return err
	}

	if len(snap.Bills) == 0 && len(snap.Deposits) == 0 && len(snap.Rules) == 0 {
		fmt.Println("\n  No bills or income in the ledger.")
		fmt.Println("  Add some entries, then come back!")
		return nil
	}

	sched := buildSchedule(snap, cfg, today)
	sym := currency(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  %d weeks", len(sched.Weeks))))
	fmt.Println()

	totalIncome := decimal.Zero
	totalBills := decimal.Zero
	totalBudget := decimal.Zero

	rows := make([][]string, 0, len(sched.Weeks)+2)
	for _, w := range sched.Weeks {
		rows = append(rows, []string{
			cli.FormatWeekRange(w.Start, w.End),
			cli.FormatMoney(w.Income, sym),
			cli.FormatMoney(w.TotalBills, sym),
			cli.FormatMoney(w.Deduction, sym),
			cli.FormatMoney(w.Carryover, sym),
			cli.FormatMoney(w.Available, sym),
			cli.FormatMoney(w.Remainder, sym),
		})
		totalIncome = totalIncome.Add(w.Income)
		totalBills = totalBills.Add(w.TotalBills)
		totalBudget = totalBudget.Add(w.Deduction)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatMoney(totalIncome, sym),
		cli.FormatMoney(totalBills, sym),
		cli.FormatMoney(totalBudget, sym),
		"", "", "",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Income", "Bills", "Budget", "Carryover", "Available", "Remainder"},
		Rows:    rows,
	}))

	avail := make([]float64, len(sched.Weeks))
	for i, w := range sched.Weeks {
		avail[i], _ = w.Available.Float64()
	}
	last := sched.Weeks[len(sched.Weeks)-1]
	fmt.Printf("  Weekly available  %s\n", cli.RenderSparkline(avail))
	fmt.Printf("  Ending remainder  %s\n\n", cli.FormatMoney(last.Remainder, sym))

	if len(sched.Overdue) > 0 {
		overdueTotal := decimal.Zero
		oRows := make([][]string, 0, len(sched.Overdue)+2)
		for _, sb := range sched.Overdue {
			oRows = append(oRows, []string{sb.Bill.Name, cli.FormatDate(sb.Due), cli.FormatMoney(sb.Amount, sym)})
			overdueTotal = overdueTotal.Add(sb.Amount)
		}
		oRows = append(oRows, []string{"---"})
		oRows = append(oRows, []string{"TOTAL", "", cli.FormatMoney(overdueTotal, sym)})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Overdue",
			Headers: []string{"Bill", "Due", "Amount"},
			Rows:    oRows,
		}))
	}

	if len(sched.Deferred) > 0 {
		dRows := make([][]string, 0, len(sched.Deferred))
		for _, b := range sched.Deferred {
			dRows = append(dRows, []string{b.Name, cli.FormatMoney(b.CurrentAmountDue(), sym)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Deferred",
			Headers: []string{"Bill", "Amount"},
			Rows:    dRows,
		}))
	}

	return nil
}
