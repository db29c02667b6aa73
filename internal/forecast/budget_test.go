package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

func catBudget(cat uuid.UUID, amount int64, from time.Time, to *time.Time) model.CategoryBudget {
	return model.CategoryBudget{
		ID:            uuid.New(),
		CategoryID:    cat,
		Amount:        decimal.NewFromInt(amount),
		EffectiveFrom: from,
		EffectiveTo:   to,
	}
}

func purchase(cat uuid.UUID, actual int64, date time.Time) model.Purchase {
	a := decimal.NewFromInt(actual)
	d := date
	return model.Purchase{ID: uuid.New(), CategoryID: cat, Actual: &a, Date: &d}
}

func TestResolveBudget_LatestCoveringWins(t *testing.T) {
	groceries := uuid.New()
	budgets := []model.CategoryBudget{
		catBudget(groceries, 50, mustDate(t, "2026-01-01"), nil),
		catBudget(groceries, 80, mustDate(t, "2026-03-01"), nil),
	}

	february := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0]
	if got := ResolveBudget(budgets, groceries, february); !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("February budget = %s, want 50", got)
	}

	april := BuildWeeks(1, 0, mustDate(t, "2026-04-08"))[0]
	if got := ResolveBudget(budgets, groceries, april); !got.Equal(decimal.NewFromInt(80)) {
		t.Errorf("April budget = %s, want 80", got)
	}
}

func TestResolveBudget_MustCoverWholeWindow(t *testing.T) {
	cat := uuid.New()
	week := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0] // Feb 8 - Feb 14

	midWindowStart := []model.CategoryBudget{
		catBudget(cat, 60, mustDate(t, "2026-02-10"), nil),
	}
	if got := ResolveBudget(midWindowStart, cat, week); !got.IsZero() {
		t.Errorf("budget starting mid-window resolved to %s, want 0", got)
	}

	endsEarly := mustDate(t, "2026-02-13")
	expiring := []model.CategoryBudget{
		catBudget(cat, 60, mustDate(t, "2026-01-01"), &endsEarly),
	}
	if got := ResolveBudget(expiring, cat, week); !got.IsZero() {
		t.Errorf("budget expiring mid-window resolved to %s, want 0", got)
	}

	endsOnBoundary := mustDate(t, "2026-02-14")
	exact := []model.CategoryBudget{
		catBudget(cat, 60, mustDate(t, "2026-01-01"), &endsOnBoundary),
	}
	if got := ResolveBudget(exact, cat, week); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("budget ending on the window's last day resolved to %s, want 60", got)
	}
}

func TestResolveBudget_NoCandidateIsZero(t *testing.T) {
	week := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0]
	if got := ResolveBudget(nil, uuid.New(), week); !got.IsZero() {
		t.Errorf("ResolveBudget with no budgets = %s, want 0", got)
	}
}

func TestActualSpend_SumsPurchasesInsideWindow(t *testing.T) {
	cat := uuid.New()
	week := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0]

	est := decimal.NewFromInt(20)
	inWindow := purchase(cat, 30, mustDate(t, "2026-02-10"))
	onBoundary := purchase(cat, 15, mustDate(t, "2026-02-14"))
	outside := purchase(cat, 99, mustDate(t, "2026-02-15"))
	estimateOnly := model.Purchase{ID: uuid.New(), CategoryID: cat, Estimated: &est, Date: inWindow.Date}
	dateless := model.Purchase{ID: uuid.New(), CategoryID: cat, Estimated: &est}

	got := ActualSpend([]model.Purchase{inWindow, onBoundary, outside, estimateOnly, dateless}, cat, week)
	if want := decimal.NewFromInt(65); !got.Equal(want) {
		t.Errorf("ActualSpend = %s, want %s (30 + 15 + estimate 20)", got, want)
	}
}

func TestDeduction_TakesLargerOfPlanAndSpend(t *testing.T) {
	groceries := uuid.New()
	fuel := uuid.New()
	week := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0]

	budgets := []model.CategoryBudget{
		catBudget(groceries, 50, mustDate(t, "2026-01-01"), nil),
		catBudget(fuel, 40, mustDate(t, "2026-01-01"), nil),
	}
	purchases := []model.Purchase{
		purchase(groceries, 80, mustDate(t, "2026-02-09")), // over plan
		purchase(fuel, 10, mustDate(t, "2026-02-09")),      // under plan
	}

	got := Deduction(budgets, purchases, week)
	if want := decimal.NewFromInt(120); !got.Equal(want) {
		t.Errorf("Deduction = %s, want %s (max(50,80) + max(40,10))", got, want)
	}
}

func TestDeduction_CountsUnbudgetedSpending(t *testing.T) {
	impulse := uuid.New()
	week := BuildWeeks(1, 0, mustDate(t, "2026-02-08"))[0]

	got := Deduction(nil, []model.Purchase{purchase(impulse, 35, mustDate(t, "2026-02-11"))}, week)
	if want := decimal.NewFromInt(35); !got.Equal(want) {
		t.Errorf("Deduction = %s, want %s for spending in a category with no budget", got, want)
	}
}
