// Package model defines domain types for billplan ledgers and forecasts.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill represents one payable obligation, fixed-amount or variable.
type Bill struct {
	ID       uuid.UUID
	Name     string
	Category string
	Priority int

	Amount   decimal.Decimal
	Variable *VariableAmounts

	DueDate  *time.Time // one-time bills
	DueDay   int        // monthly bills, 1-31; 0 means unset
	Deferred bool
}

// VariableAmounts holds the statement figures reported for a variable bill.
// Any of the three may be missing.
type VariableAmounts struct {
	StatementBalance *decimal.Decimal
	MinimumDue       *decimal.Decimal
	UpdatedBalance   *decimal.Decimal
}

// CurrentAmountDue returns what the bill costs to settle right now.
// Fixed bills owe their amount. Variable bills prefer the minimum due,
// then the updated balance, then the statement balance; with no figures
// reported they owe zero.
func (b Bill) CurrentAmountDue() decimal.Decimal {
	if b.Variable == nil {
		return b.Amount
	}
	switch {
	case b.Variable.MinimumDue != nil:
		return *b.Variable.MinimumDue
	case b.Variable.UpdatedBalance != nil:
		return *b.Variable.UpdatedBalance
	case b.Variable.StatementBalance != nil:
		return *b.Variable.StatementBalance
	}
	return decimal.Zero
}

// Unscheduled reports whether the bill carries no scheduling fields at all.
// Such bills are treated as deferred.
func (b Bill) Unscheduled() bool {
	return b.DueDate == nil && b.DueDay == 0
}
