package cmd

import (
	"fmt"
	"sort"

	"billplan/internal/cli"
	"billplan/internal/forecast"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Category budgets vs actual spending this week",
	RunE:  runBudgets,
}

func init() {
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	today, err := asOf()
	if err != nil {
		return err
	}

	if len(snap.Budgets) == 0 && len(snap.Purchases) == 0 {
		fmt.Println("\n  No budgets or purchases in the ledger.")
		return nil
	}

	week := forecast.BuildWeeks(1, 0, today)[0]
	sym := currency(cfg)

	// Union of categories seen in budgets and purchases
	names := map[uuid.UUID]string{}
	for _, cb := range snap.Budgets {
		names[cb.CategoryID] = cb.Category
	}
	for _, p := range snap.Purchases {
		if _, ok := names[p.CategoryID]; !ok {
			names[p.CategoryID] = p.Category
		}
	}

	type line struct {
		name    string
		planned decimal.Decimal
		spent   decimal.Decimal
	}
	lines := make([]line, 0, len(names))
	for id, name := range names {
		lines = append(lines, line{
			name:    name,
			planned: forecast.ResolveBudget(snap.Budgets, id, week),
			spent:   forecast.ActualSpend(snap.Purchases, id, week),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  week of %s", cli.FormatDate(week.Start))))
	fmt.Println()

	totalPlanned := decimal.Zero
	totalSpent := decimal.Zero
	totalDeducted := decimal.Zero

	rows := make([][]string, 0, len(lines)+2)
	for _, l := range lines {
		deducted := decimal.Max(l.planned, l.spent)
		rows = append(rows, []string{
			l.name,
			cli.FormatMoney(l.planned, sym),
			cli.FormatMoney(l.spent, sym),
			cli.FormatMoney(deducted, sym),
			cli.FormatMoney(l.planned.Sub(l.spent), sym),
		})
		totalPlanned = totalPlanned.Add(l.planned)
		totalSpent = totalSpent.Add(l.spent)
		totalDeducted = totalDeducted.Add(deducted)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatMoney(totalPlanned, sym),
		cli.FormatMoney(totalSpent, sym),
		cli.FormatMoney(totalDeducted, sym),
		cli.FormatMoney(totalPlanned.Sub(totalSpent), sym),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Spent", "Deducted", "Left"},
		Rows:    rows,
	}))

	// Bar scale: the largest planned or spent figure
	maxVal := 0.0
	for _, l := range lines {
		if v, _ := l.planned.Float64(); v > maxVal {
			maxVal = v
		}
		if v, _ := l.spent.Float64(); v > maxVal {
			maxVal = v
		}
	}

	if maxVal > 0 {
		nameW := 0
		for _, l := range lines {
			if len(l.name) > nameW {
				nameW = len(l.name)
			}
		}

		fmt.Println("  Spend vs budget")
		for _, l := range lines {
			spent, _ := l.spent.Float64()
			planned, _ := l.planned.Float64()
			pct := ""
			if planned > 0 {
				pct = cli.FormatPercent(spent / planned)
			}
			fmt.Printf("  %-*s  %s  %s / %s  %s\n",
				nameW, l.name,
				cli.RenderHorizontalBar(spent, maxVal, 24),
				cli.FormatMoney(l.spent, sym),
				cli.FormatMoney(l.planned, sym),
				pct)
		}
		fmt.Println()
	}

	return nil
}
