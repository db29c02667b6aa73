// Package ledger reads a billplan ledger file into the immutable snapshot
// the forecast and goal calculators consume.
//
// A ledger is one TOML document holding bills, deposits, recurring income
// rules, category budgets, purchases, income sources, and goals. Malformed
// rules and dangling references fail the load with every problem reported
// at once; records that merely lack usable dates are demoted (a bill with
// an unreadable due date becomes deferred) and surface as warnings.
package ledger

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

// Snapshot is a fully validated ledger, ready for projection.
type Snapshot struct {
	Bills     []model.Bill
	Deposits  []model.Deposit
	Rules     []model.IncomeRule
	Budgets   []model.CategoryBudget
	Purchases []model.Purchase
	Sources   []model.IncomeSource
	Goals     []model.Goal

	BankBalance decimal.Decimal
}

type rawLedger struct {
	BankBalance decimal.Decimal `toml:"bank_balance"`
	Bills       []rawBill       `toml:"bills"`
	Deposits    []rawDeposit    `toml:"deposits"`
	IncomeRules []rawRule       `toml:"income_rules"`
	Budgets     []rawBudget     `toml:"budgets"`
	Purchases   []rawPurchase   `toml:"purchases"`
	Sources     []rawSource     `toml:"income_sources"`
	Goals       []rawGoal       `toml:"goals"`
}

type rawBill struct {
	Name             string           `toml:"name"`
	Category         string           `toml:"category"`
	Priority         int              `toml:"priority"`
	Amount           *decimal.Decimal `toml:"amount"`
	StatementBalance *decimal.Decimal `toml:"statement_balance"`
	MinimumDue       *decimal.Decimal `toml:"minimum_due"`
	UpdatedBalance   *decimal.Decimal `toml:"updated_balance"`
	DueDate          string           `toml:"due_date"`
	DueDay           int              `toml:"due_day"`
	Deferred         bool             `toml:"deferred"`
}

type rawDeposit struct {
	Name   string           `toml:"name"`
	Amount *decimal.Decimal `toml:"amount"`
	Date   string           `toml:"date"`
}

type rawRule struct {
	Name            string           `toml:"name"`
	Amount          *decimal.Decimal `toml:"amount"`
	Unit            string           `toml:"unit"`
	Interval        int              `toml:"interval"`
	Weekday         string           `toml:"weekday"`
	DayOfMonth      int              `toml:"day_of_month"`
	LastDay         bool             `toml:"last_day"`
	LastBusinessDay bool             `toml:"last_business_day"`
	Start           string           `toml:"start"`
	End             string           `toml:"end"`
}

type rawBudget struct {
	Category      string           `toml:"category"`
	Amount        *decimal.Decimal `toml:"amount"`
	EffectiveFrom string           `toml:"effective_from"`
	EffectiveTo   string           `toml:"effective_to"`
}

type rawPurchase struct {
	Category  string           `toml:"category"`
	Estimated *decimal.Decimal `toml:"estimated"`
	Actual    *decimal.Decimal `toml:"actual"`
	Date      string           `toml:"date"`
}

type rawSource struct {
	Name          string                     `toml:"name"`
	Cadence       string                     `toml:"cadence"`
	DailyPay      *decimal.Decimal           `toml:"daily_pay"`
	PayByWeekday  map[string]decimal.Decimal `toml:"pay_by_weekday"`
	DaysPerWeek   int                        `toml:"days_per_week"`
	ProjectAmount *decimal.Decimal           `toml:"project_amount"`
}

type rawGoal struct {
	Name           string           `toml:"name"`
	Target         *decimal.Decimal `toml:"target"`
	Due            string           `toml:"due"`
	UseBankBalance bool             `toml:"use_bank_balance"`
	Allocations    []rawAllocation  `toml:"allocations"`
}

type rawAllocation struct {
	Source  string           `toml:"source"`
	Mode    string           `toml:"mode"`
	Percent *decimal.Decimal `toml:"percent"`
	Amount  *decimal.Decimal `toml:"amount"`
}

// Load reads and validates the ledger at path. Validation problems are
// collected across the whole file before reporting, so one load surfaces
// every error at once. The returned warnings describe records that were
// demoted rather than rejected.
func Load(path string) (Snapshot, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("reading ledger: %w", err)
	}

	var raw rawLedger
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, nil, fmt.Errorf("parsing ledger: %w", err)
	}

	b := newBuilder(raw.BankBalance)
	snap := Snapshot{BankBalance: raw.BankBalance}

	for _, r := range raw.Bills {
		if bill, ok := b.bill(r); ok {
			snap.Bills = append(snap.Bills, bill)
		}
	}
	for _, r := range raw.Deposits {
		if d, ok := b.deposit(r); ok {
			snap.Deposits = append(snap.Deposits, d)
		}
	}
	for _, r := range raw.IncomeRules {
		if rule, ok := b.rule(r); ok {
			snap.Rules = append(snap.Rules, rule)
		}
	}
	for _, r := range raw.Budgets {
		if cb, ok := b.budget(r); ok {
			snap.Budgets = append(snap.Budgets, cb)
		}
	}
	for _, r := range raw.Purchases {
		if p, ok := b.purchase(r); ok {
			snap.Purchases = append(snap.Purchases, p)
		}
	}
	for _, r := range raw.Sources {
		if s, ok := b.source(r); ok {
			snap.Sources = append(snap.Sources, s)
		}
	}
	// Goals resolve allocation references, so sources must be built first.
	for _, r := range raw.Goals {
		if g, ok := b.goal(r); ok {
			snap.Goals = append(snap.Goals, g)
		}
	}

	if raw.BankBalance.IsNegative() {
		b.errorf("bank_balance: negative amount %s", raw.BankBalance)
	}

	if err := errors.Join(b.errs...); err != nil {
		return Snapshot{}, b.warnings, fmt.Errorf("invalid ledger:\n%w", err)
	}
	return snap, b.warnings, nil
}

// builder accumulates validation state while raw records become model
// values. Category and source names intern to stable ids so records
// naming the same category share one CategoryID.
type builder struct {
	errs     []error
	warnings []string

	categories  map[string]uuid.UUID
	sources     map[string]uuid.UUID
	bankBalance decimal.Decimal
}

func newBuilder(bankBalance decimal.Decimal) *builder {
	return &builder{
		categories:  make(map[string]uuid.UUID),
		sources:     make(map[string]uuid.UUID),
		bankBalance: bankBalance,
	}
}

func (b *builder) errorf(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

func (b *builder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *builder) category(name string) uuid.UUID {
	id, ok := b.categories[name]
	if !ok {
		id = uuid.New()
		b.categories[name] = id
	}
	return id
}
