package cmd

import (
	"fmt"
	"os"
	"time"

	"billplan/internal/config"
	"billplan/internal/forecast"
	"billplan/internal/ledger"
	"billplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagLedger string
	flagWeeks  int
	flagAsOf   string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "billplan",
	Short: "Bill and cash-flow planning CLI",
	Long:  "Project your bills, income, budgets, and savings goals over weekly windows.",
	RunE:  runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "l", "", "Ledger file (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagWeeks, "weeks", "w", 0, "Number of weekly windows (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Treat this date as today (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

// loadLedger is the shared loading path used by all commands. Records
// demoted during loading are reported on stderr unless --quiet.
func loadLedger() (ledger.Snapshot, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return ledger.Snapshot{}, cfg, err
	}

	path := flagLedger
	if path == "" {
		path = config.LedgerPath(cfg)
	}

	snap, warnings, err := ledger.Load(path)
	if err != nil {
		return ledger.Snapshot{}, cfg, err
	}

	if !flagQuiet {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
	}

	return snap, cfg, nil
}

// asOf returns the effective current date at midnight UTC, from --as-of
// when given.
func asOf() (time.Time, error) {
	if flagAsOf != "" {
		t, err := time.Parse("2006-01-02", flagAsOf)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", flagAsOf)
		}
		return t, nil
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

// weekCount resolves the window count from the flag, then config, then a
// built-in fallback.
func weekCount(cfg config.Config) int {
	if flagWeeks > 0 {
		return flagWeeks
	}
	if cfg.General.DefaultWeeks > 0 {
		return cfg.General.DefaultWeeks
	}
	return 8
}

// buildSchedule runs the full projection pipeline: bucket the span into
// weeks, assign bills and income, then project the cash flow.
func buildSchedule(snap ledger.Snapshot, cfg config.Config, today time.Time) model.Schedule {
	weeks := forecast.BuildWeeks(weekCount(cfg), 0, today)
	sched := forecast.Assign(weeks, snap.Bills, snap.Deposits, snap.Rules, today)
	sched.Weeks = forecast.Project(sched.Weeks, snap.Budgets, snap.Purchases)
	return sched
}

func currency(cfg config.Config) string {
	if cfg.Display.Currency != "" {
		return cfg.Display.Currency
	}
	return "$"
}
