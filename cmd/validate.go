package cmd

import (
	"fmt"

	"billplan/internal/cli"
	"billplan/internal/config"
	"billplan/internal/ledger"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the ledger for problems",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := flagLedger
	if path == "" {
		path = config.LedgerPath(cfg)
	}

	snap, warnings, err := ledger.Load(path)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEDGER CHECK"))
	fmt.Println()
	fmt.Printf("  Ledger: %s\n\n", path)

	if len(warnings) > 0 {
		fmt.Printf("  %d records demoted:\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    %s\n", w)
		}
		fmt.Println()
	}

	sym := currency(cfg)
	rows := [][]string{
		{"Bills", cli.FormatNumber(int64(len(snap.Bills)))},
		{"Deposits", cli.FormatNumber(int64(len(snap.Deposits)))},
		{"Income rules", cli.FormatNumber(int64(len(snap.Rules)))},
		{"Budgets", cli.FormatNumber(int64(len(snap.Budgets)))},
		{"Purchases", cli.FormatNumber(int64(len(snap.Purchases)))},
		{"Income sources", cli.FormatNumber(int64(len(snap.Sources)))},
		{"Goals", cli.FormatNumber(int64(len(snap.Goals)))},
		{"---"},
		{"Bank balance", cli.FormatMoney(snap.BankBalance, sym)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Entry", "Count"},
		Rows:    rows,
	}))

	fmt.Println("  Ledger OK.")
	return nil
}
