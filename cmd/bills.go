package cmd

import (
	"fmt"
	"sort"
	"time"

	"billplan/internal/cli"
	"billplan/internal/model"
	"billplan/internal/recur"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bills with their next due dates",
	RunE:  runBills,
}

func init() {
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	today, err := asOf()
	if err != nil {
		return err
	}

	if len(snap.Bills) == 0 {
		fmt.Println("\n  No bills in the ledger.")
		return nil
	}

	sym := currency(cfg)

	type upcoming struct {
		bill model.Bill
		due  time.Time
	}
	var ups []upcoming
	var deferred []model.Bill
	for _, b := range snap.Bills {
		if b.Deferred || b.Unscheduled() {
			deferred = append(deferred, b)
			continue
		}
		due, ok := recur.NextBillDue(b, today)
		if !ok {
			deferred = append(deferred, b)
			continue
		}
		ups = append(ups, upcoming{b, due})
	}

	sort.Slice(ups, func(i, j int) bool {
		if !ups[i].due.Equal(ups[j].due) {
			return ups[i].due.Before(ups[j].due)
		}
		if ups[i].bill.Priority != ups[j].bill.Priority {
			return ups[i].bill.Priority > ups[j].bill.Priority
		}
		return ups[i].bill.Name < ups[j].bill.Name
	})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  %d scheduled", len(ups))))
	fmt.Println()

	total := decimal.Zero
	rows := make([][]string, 0, len(ups)+2)
	for _, u := range ups {
		amount := u.bill.CurrentAmountDue()
		rows = append(rows, []string{
			u.bill.Name,
			u.bill.Category,
			billSchedule(u.bill),
			cli.FormatDate(u.due),
			cli.FormatMoney(amount, sym),
			fmt.Sprintf("%d", u.bill.Priority),
		})
		total = total.Add(amount)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", "", cli.FormatMoney(total, sym), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Category", "Schedule", "Next Due", "Amount", "Pri"},
		Rows:    rows,
	}))

	if len(deferred) > 0 {
		dRows := make([][]string, 0, len(deferred))
		for _, b := range deferred {
			dRows = append(dRows, []string{b.Name, b.Category, cli.FormatMoney(b.CurrentAmountDue(), sym)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Deferred",
			Headers: []string{"Bill", "Category", "Amount"},
			Rows:    dRows,
		}))
	}

	return nil
}

func billSchedule(b model.Bill) string {
	if b.DueDay > 0 {
		return fmt.Sprintf("monthly, day %d", b.DueDay)
	}
	return "one-time"
}
