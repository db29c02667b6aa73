package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationMode selects how much of a source's income feeds a goal.
type AllocationMode string

const (
	ModeAll     AllocationMode = "all"
	ModePercent AllocationMode = "percentage"
	ModeFixed   AllocationMode = "fixed_amount"
)

// Allocation directs part of one income source toward a goal.
type Allocation struct {
	SourceID uuid.UUID
	Source   string
	Mode     AllocationMode
	Percent  decimal.Decimal // ModePercent, 0-100
	Amount   decimal.Decimal // ModeFixed
}

// Goal is a savings target funded by income allocations and, optionally,
// a flat contribution from the bank balance.
type Goal struct {
	ID          uuid.UUID
	Name        string
	Target      decimal.Decimal
	Due         *time.Time
	Allocations []Allocation

	UseBankBalance bool
	BankBalance    decimal.Decimal
}

// GoalProjection is the affordability verdict for one goal.
type GoalProjection struct {
	Goal      Goal
	Monthly   decimal.Decimal // total allocated per month, excluding bank balance
	Total     decimal.Decimal
	CanAfford bool
	Surplus   decimal.Decimal
	Shortfall decimal.Decimal

	// ProjectedDate is when the goal becomes affordable, nil when no
	// progress is being made toward it.
	ProjectedDate *time.Time
}
