package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledBill is a bill occurrence resolved to a concrete date.
type ScheduledBill struct {
	Bill Bill
	Due  time.Time
	// Amount is the bill's current amount due, captured at scheduling time.
	Amount decimal.Decimal
}

// Week is one Sunday-aligned 7-day window with everything scheduled in it
// and the running totals the projector fills in.
type Week struct {
	Start time.Time
	End   time.Time

	Bills    []ScheduledBill
	Deposits []Deposit

	TotalBills decimal.Decimal
	Income     decimal.Decimal
	Deduction  decimal.Decimal
	Available  decimal.Decimal
	Remainder  decimal.Decimal
	Carryover  decimal.Decimal
}

// Contains reports whether day falls inside the window, inclusive on both ends.
func (w Week) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// Schedule is the bucketed view of a ledger: bills and deposits placed into
// week windows, plus the bills excluded from scheduling.
type Schedule struct {
	Weeks    []Week
	Deferred []Bill
	Overdue  []ScheduledBill
}
