package forecast

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func oneTimeBill(name string, amount int64, due time.Time) model.Bill {
	d := due
	return model.Bill{ID: uuid.New(), Name: name, Amount: decimal.NewFromInt(amount), DueDate: &d}
}

func monthlyBill(name string, amount int64, day int) model.Bill {
	return model.Bill{ID: uuid.New(), Name: name, Amount: decimal.NewFromInt(amount), DueDay: day}
}

func datedDeposit(name string, amount int64, date time.Time) model.Deposit {
	return model.Deposit{ID: uuid.New(), Name: name, Amount: decimal.NewFromInt(amount), Date: date}
}

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }

func billCount(s model.Schedule, name string) int {
	n := 0
	for _, w := range s.Weeks {
		for _, sb := range w.Bills {
			if sb.Bill.Name == name {
				n++
			}
		}
	}
	return n
}

func TestBuildWeeks_SundayAligned(t *testing.T) {
	// 2026-04-01 is a Wednesday; its week starts Sunday 2026-03-29.
	weeks := BuildWeeks(1, 0, mustDate(t, "2026-04-01"))
	if len(weeks) != 1 {
		t.Fatalf("BuildWeeks returned %d windows, want 1", len(weeks))
	}
	if want := mustDate(t, "2026-03-29"); !weeks[0].Start.Equal(want) {
		t.Errorf("window start = %v, want %v", weeks[0].Start, want)
	}
	if want := mustDate(t, "2026-04-04"); !weeks[0].End.Equal(want) {
		t.Errorf("window end = %v, want %v", weeks[0].End, want)
	}

	// A Sunday reference is its own week start.
	weeks = BuildWeeks(1, 0, mustDate(t, "2026-03-29"))
	if want := mustDate(t, "2026-03-29"); !weeks[0].Start.Equal(want) {
		t.Errorf("Sunday reference start = %v, want %v", weeks[0].Start, want)
	}
}

func TestBuildWeeks_ContiguousWithoutGaps(t *testing.T) {
	weeks := BuildWeeks(8, 0, mustDate(t, "2026-01-14"))
	for i, w := range weeks {
		if got, want := w.End, w.Start.AddDate(0, 0, 6); !got.Equal(want) {
			t.Errorf("window %d: end = %v, want start+6d %v", i, got, want)
		}
		if i == 0 {
			continue
		}
		if got, want := w.Start, weeks[i-1].End.AddDate(0, 0, 1); !got.Equal(want) {
			t.Errorf("window %d: start = %v, want previous end+1d %v", i, got, want)
		}
	}
}

func TestBuildWeeks_OffsetShiftsWholeWeeks(t *testing.T) {
	base := BuildWeeks(1, 0, mustDate(t, "2026-01-14"))
	ahead := BuildWeeks(1, 2, mustDate(t, "2026-01-14"))

	if got, want := ahead[0].Start, base[0].Start.AddDate(0, 0, 14); !got.Equal(want) {
		t.Errorf("offset window start = %v, want %v", got, want)
	}
}

func TestAssign_OneTimeBillLandsInItsWindow(t *testing.T) {
	today := mustDate(t, "2026-03-29")
	weeks := BuildWeeks(3, 0, today)
	b := oneTimeBill("inspection", 120, mustDate(t, "2026-04-07"))

	s := Assign(weeks, []model.Bill{b}, nil, nil, today)

	if n := len(s.Weeks[1].Bills); n != 1 {
		t.Fatalf("window 1 holds %d bills, want 1", n)
	}
	if got := s.Weeks[1].Bills[0].Due; !got.Equal(mustDate(t, "2026-04-07")) {
		t.Errorf("scheduled due = %v, want 2026-04-07", got)
	}
	if billCount(s, "inspection") != 1 {
		t.Errorf("bill appears %d times across windows, want exactly 1", billCount(s, "inspection"))
	}
}

func TestAssign_MonthBoundaryWindowCatchesBothMonths(t *testing.T) {
	// Window 2026-03-29 .. 2026-04-04 spans a month boundary: a day-31 bill
	// falls in its March half, a day-2 bill in its April half.
	today := mustDate(t, "2026-03-29")
	weeks := BuildWeeks(1, 0, today)

	s := Assign(weeks, []model.Bill{
		monthlyBill("rent", 900, 31),
		monthlyBill("water", 40, 2),
	}, nil, nil, today)

	if n := len(s.Weeks[0].Bills); n != 2 {
		t.Fatalf("boundary window holds %d bills, want 2: %+v", n, s.Weeks[0].Bills)
	}
	if got := s.Weeks[0].Bills[0].Due; !got.Equal(mustDate(t, "2026-03-31")) {
		t.Errorf("first due = %v, want 2026-03-31", got)
	}
	if got := s.Weeks[0].Bills[1].Due; !got.Equal(mustDate(t, "2026-04-02")) {
		t.Errorf("second due = %v, want 2026-04-02", got)
	}
	if billCount(s, "rent") != 1 || billCount(s, "water") != 1 {
		t.Error("a month-boundary bill was duplicated across candidate months")
	}
}

func TestAssign_ClampedDueDayStaysInMonth(t *testing.T) {
	// February 2026 ends on the 28th; a day-31 bill lands there, not in March.
	today := mustDate(t, "2026-02-22")
	weeks := BuildWeeks(1, 0, today)

	s := Assign(weeks, []model.Bill{monthlyBill("card", 75, 31)}, nil, nil, today)

	if n := len(s.Weeks[0].Bills); n != 1 {
		t.Fatalf("window holds %d bills, want 1", n)
	}
	if got := s.Weeks[0].Bills[0].Due; !got.Equal(mustDate(t, "2026-02-28")) {
		t.Errorf("clamped due = %v, want 2026-02-28", got)
	}
}

func TestAssign_MonthlyBillRepeatsAcrossHorizon(t *testing.T) {
	today := mustDate(t, "2026-01-01")
	weeks := BuildWeeks(8, 0, today)

	s := Assign(weeks, []model.Bill{monthlyBill("rent", 900, 15)}, nil, nil, today)

	if billCount(s, "rent") != 2 {
		t.Fatalf("monthly bill appears %d times over 8 weeks, want 2 occurrences", billCount(s, "rent"))
	}
}

func TestAssign_SplitsDeferredAndOverdue(t *testing.T) {
	today := mustDate(t, "2026-04-01")
	weeks := BuildWeeks(2, 0, today)

	parked := monthlyBill("someday", 10, 5)
	parked.Deferred = true
	unscheduled := model.Bill{ID: uuid.New(), Name: "floating", Amount: decimal.NewFromInt(25)}
	past := oneTimeBill("missed", 60, mustDate(t, "2026-03-30"))

	s := Assign(weeks, []model.Bill{parked, unscheduled, past}, nil, nil, today)

	if len(s.Deferred) != 2 {
		t.Errorf("deferred list holds %d bills, want 2", len(s.Deferred))
	}
	if len(s.Overdue) != 1 || s.Overdue[0].Bill.Name != "missed" {
		t.Fatalf("overdue list = %+v, want the missed bill alone", s.Overdue)
	}
	for i, w := range s.Weeks {
		if len(w.Bills) != 0 {
			t.Errorf("window %d holds %d bills, want 0", i, len(w.Bills))
		}
		if !w.TotalBills.IsZero() {
			t.Errorf("window %d total = %s, want 0 (deferred and overdue never count)", i, w.TotalBills)
		}
	}
}

func TestAssign_MonthlyOccurrenceBeforeTodayIsOverdue(t *testing.T) {
	// Window starts Sunday 2026-03-29; today is the 1st, so the day-31
	// occurrence inside the window has already passed.
	today := mustDate(t, "2026-04-01")
	weeks := BuildWeeks(1, 0, today)

	s := Assign(weeks, []model.Bill{monthlyBill("rent", 900, 31)}, nil, nil, today)

	if len(s.Overdue) != 1 {
		t.Fatalf("overdue list holds %d entries, want 1", len(s.Overdue))
	}
	if got := s.Overdue[0].Due; !got.Equal(mustDate(t, "2026-03-31")) {
		t.Errorf("overdue due = %v, want 2026-03-31", got)
	}
	if n := len(s.Weeks[0].Bills); n != 0 {
		t.Errorf("window still holds %d bills, want 0 (no double counting)", n)
	}
}

func TestAssign_TotalBillsUsesCurrentAmountDue(t *testing.T) {
	today := mustDate(t, "2026-03-29")
	weeks := BuildWeeks(1, 0, today)

	minDue := decimal.NewFromInt(35)
	statement := decimal.NewFromInt(420)
	card := model.Bill{
		ID: uuid.New(), Name: "card", DueDay: 31,
		Variable: &model.VariableAmounts{StatementBalance: &statement, MinimumDue: &minDue},
	}
	loan := model.Bill{
		ID: uuid.New(), Name: "loan", DueDay: 2,
		Variable: &model.VariableAmounts{StatementBalance: &statement},
	}

	s := Assign(weeks, []model.Bill{card, loan}, nil, nil, today)

	if want := decimal.NewFromInt(455); !s.Weeks[0].TotalBills.Equal(want) {
		t.Errorf("TotalBills = %s, want %s (minimum due 35 + statement 420)", s.Weeks[0].TotalBills, want)
	}
}

func TestAssign_DepositsAndRuleOccurrences(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	weeks := BuildWeeks(4, 0, today)

	rule := model.IncomeRule{
		ID:       uuid.New(),
		Name:     "paycheck",
		Amount:   decimal.NewFromInt(800),
		Unit:     model.UnitWeek,
		Interval: 2,
		Weekday:  weekdayPtr(time.Friday),
		Start:    mustDate(t, "2026-01-04"),
	}
	bonus := datedDeposit("bonus", 250, mustDate(t, "2026-01-13"))

	s := Assign(weeks, nil, []model.Deposit{bonus}, []model.IncomeRule{rule}, today)

	// Fridays Jan 9 and Jan 23 fall in windows 0 and 2; the bonus in window 1.
	if n := len(s.Weeks[0].Deposits); n != 1 {
		t.Fatalf("window 0 holds %d deposits, want 1", n)
	}
	if got := s.Weeks[0].Deposits[0].Date; !got.Equal(mustDate(t, "2026-01-09")) {
		t.Errorf("window 0 deposit date = %v, want 2026-01-09", got)
	}
	if n := len(s.Weeks[1].Deposits); n != 1 || s.Weeks[1].Deposits[0].Name != "bonus" {
		t.Errorf("window 1 deposits = %+v, want the bonus alone", s.Weeks[1].Deposits)
	}
	if n := len(s.Weeks[2].Deposits); n != 1 {
		t.Fatalf("window 2 holds %d deposits, want 1", n)
	}
	if s.Weeks[2].Deposits[0].RuleID == nil || *s.Weeks[2].Deposits[0].RuleID != rule.ID {
		t.Error("generated deposit does not record its rule provenance")
	}
	if n := len(s.Weeks[3].Deposits); n != 0 {
		t.Errorf("window 3 holds %d deposits, want 0 (biweekly stride skips it)", n)
	}
}

func TestAssign_Idempotent(t *testing.T) {
	today := mustDate(t, "2026-01-04")
	bills := []model.Bill{
		monthlyBill("rent", 900, 1),
		oneTimeBill("plates", 85, mustDate(t, "2026-01-20")),
	}
	rules := []model.IncomeRule{{
		ID:       uuid.New(),
		Name:     "paycheck",
		Amount:   decimal.NewFromInt(800),
		Unit:     model.UnitWeek,
		Interval: 1,
		Weekday:  weekdayPtr(time.Friday),
		Start:    mustDate(t, "2025-06-06"),
	}}

	first := Assign(BuildWeeks(6, 0, today), bills, nil, rules, today)
	second := Assign(BuildWeeks(6, 0, today), bills, nil, rules, today)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same snapshot produced different schedules")
	}
}
