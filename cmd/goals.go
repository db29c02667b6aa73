package cmd

import (
	"fmt"

	"billplan/internal/cli"
	"billplan/internal/goal"

	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goal affordability projections",
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	today, err := asOf()
	if err != nil {
		return err
	}

	if len(snap.Goals) == 0 {
		fmt.Println("\n  No goals in the ledger.")
		return nil
	}

	projs := goal.ProjectAll(snap.Goals, snap.Sources, today)
	sym := currency(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALS  %d tracked", len(projs))))
	fmt.Println()

	rows := make([][]string, 0, len(projs))
	for _, p := range projs {
		projected := "-"
		if p.ProjectedDate != nil {
			projected = cli.FormatDate(*p.ProjectedDate)
		}
		due := "-"
		if p.Goal.Due != nil {
			due = cli.FormatDate(*p.Goal.Due)
		}
		rows = append(rows, []string{
			p.Goal.Name,
			cli.FormatMoney(p.Goal.Target, sym),
			cli.FormatMoney(p.Monthly, sym),
			cli.FormatMoney(p.Total, sym),
			cli.FormatMoney(p.Total.Sub(p.Goal.Target), sym),
			projected,
			due,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Target", "Monthly", "Total", "Margin", "Projected", "Due"},
		Rows:    rows,
	}))

	nameW := 0
	for _, p := range projs {
		if len(p.Goal.Name) > nameW {
			nameW = len(p.Goal.Name)
		}
	}

	fmt.Println("  Progress toward target")
	for _, p := range projs {
		fmt.Printf("  %-*s  %s\n",
			nameW, p.Goal.Name,
			cli.RenderProgressBar(p.Total.IntPart(), p.Goal.Target.IntPart(), 24))
	}
	fmt.Println()

	return nil
}
