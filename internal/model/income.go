package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit is a single dated income event, either entered directly or
// generated from an IncomeRule (RuleID records the provenance).
type Deposit struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
	Date   time.Time
	RuleID *uuid.UUID
}

// RuleUnit is the base period of a recurring income rule.
type RuleUnit string

const (
	UnitWeek  RuleUnit = "week"
	UnitMonth RuleUnit = "month"
)

// IncomeRule describes a repeating deposit: every Interval weeks or months,
// placed on a weekday (weekly) or on a day of the month, the last day, or
// the last business day (monthly). Exactly one placement field may be set.
type IncomeRule struct {
	ID       uuid.UUID
	Name     string
	Amount   decimal.Decimal
	Unit     RuleUnit
	Interval int

	Weekday         *time.Weekday // weekly rules
	DayOfMonth      int           // monthly rules, 1-31; 0 means unset
	LastDay         bool          // monthly rules
	LastBusinessDay bool          // monthly rules

	Start time.Time
	End   *time.Time // exclusive; no occurrence on or after it
}

// Cadence is how an income source pays out.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"   // fixed amount per working day
	CadenceVarying Cadence = "varying" // amount depends on the weekday
	CadenceProject Cadence = "project" // flat monthly project payment
)

// IncomeSource describes where money comes from, for goal planning.
type IncomeSource struct {
	ID      uuid.UUID
	Name    string
	Cadence Cadence

	DailyPay      decimal.Decimal                  // CadenceDaily
	PayByWeekday  map[time.Weekday]decimal.Decimal // CadenceVarying
	DaysPerWeek   int                              // CadenceDaily
	ProjectAmount decimal.Decimal                  // CadenceProject
}
