package forecast

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

func TestProject_DeficitClipsCarryoverToZero(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	weeks := BuildWeeks(2, 0, today)
	s := Assign(weeks,
		[]model.Bill{oneTimeBill("insurance", 200, mustDate(t, "2026-01-06"))},
		[]model.Deposit{datedDeposit("pay", 150, mustDate(t, "2026-01-05"))},
		nil, today)

	got := Project(s.Weeks, nil, nil)

	if want := decimal.NewFromInt(-50); !got[0].Remainder.Equal(want) {
		t.Errorf("week 0 remainder = %s, want %s", got[0].Remainder, want)
	}
	if !got[1].Carryover.IsZero() {
		t.Errorf("week 1 carryover = %s, want 0 (deficits do not carry)", got[1].Carryover)
	}
}

func TestProject_CarryoverNeverNegative(t *testing.T) {
	// Bills exceed income for several consecutive weeks.
	today := mustDate(t, "2026-01-04")
	weeks := BuildWeeks(4, 0, today)
	var bills []model.Bill
	for _, d := range []string{"2026-01-06", "2026-01-13", "2026-01-20", "2026-01-27"} {
		bills = append(bills, oneTimeBill("loan-"+d, 500, mustDate(t, d)))
	}
	deposits := []model.Deposit{
		datedDeposit("pay", 100, mustDate(t, "2026-01-05")),
		datedDeposit("pay", 100, mustDate(t, "2026-01-12")),
	}

	s := Assign(weeks, bills, deposits, nil, today)
	got := Project(s.Weeks, nil, nil)

	for i, w := range got {
		if w.Carryover.IsNegative() {
			t.Errorf("week %d carryover = %s, want >= 0", i, w.Carryover)
		}
		if w.Remainder.IsPositive() {
			t.Errorf("week %d remainder = %s, expected a deficit in this setup", i, w.Remainder)
		}
	}
}

func TestProject_SurplusCarriesForward(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	weeks := BuildWeeks(2, 0, today)
	s := Assign(weeks,
		[]model.Bill{
			oneTimeBill("power", 100, mustDate(t, "2026-01-06")),
			oneTimeBill("water", 50, mustDate(t, "2026-01-13")),
		},
		[]model.Deposit{datedDeposit("pay", 300, mustDate(t, "2026-01-05"))},
		nil, today)

	got := Project(s.Weeks, nil, nil)

	if !got[0].Carryover.IsZero() {
		t.Errorf("week 0 carryover = %s, want 0", got[0].Carryover)
	}
	if want := decimal.NewFromInt(200); !got[1].Carryover.Equal(want) {
		t.Errorf("week 1 carryover = %s, want %s", got[1].Carryover, want)
	}
	// Week 1 has no income of its own; the surplus alone covers its bill.
	if want := decimal.NewFromInt(150); !got[1].Remainder.Equal(want) {
		t.Errorf("week 1 remainder = %s, want %s", got[1].Remainder, want)
	}
}

func TestProject_DeductionReducesAvailable(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	groceries := uuid.New()
	budgets := []model.CategoryBudget{catBudget(groceries, 100, mustDate(t, "2025-12-01"), nil)}

	s := Assign(BuildWeeks(1, 0, today), nil,
		[]model.Deposit{datedDeposit("pay", 500, mustDate(t, "2026-01-05"))},
		nil, today)
	got := Project(s.Weeks, budgets, nil)

	if want := decimal.NewFromInt(100); !got[0].Deduction.Equal(want) {
		t.Errorf("week 0 deduction = %s, want %s", got[0].Deduction, want)
	}
	if want := decimal.NewFromInt(400); !got[0].Available.Equal(want) {
		t.Errorf("week 0 available = %s, want %s (income minus deduction)", got[0].Available, want)
	}
}

func TestProject_Idempotent(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	groceries := uuid.New()
	bills := []model.Bill{monthlyBill("rent", 900, 1)}
	deposits := []model.Deposit{datedDeposit("pay", 700, mustDate(t, "2026-01-09"))}
	budgets := []model.CategoryBudget{catBudget(groceries, 80, mustDate(t, "2025-12-01"), nil)}
	purchases := []model.Purchase{purchase(groceries, 95, mustDate(t, "2026-01-06"))}

	run := func() []model.Week {
		s := Assign(BuildWeeks(5, 0, today), bills, deposits, nil, today)
		return Project(s.Weeks, budgets, purchases)
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("two projection runs over the same snapshot differ")
	}
}
