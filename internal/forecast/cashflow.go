package forecast

import (
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

// Project fills in per-week totals and propagates the carryover balance in
// a single chronological pass. The first window starts with zero carryover;
// each later window inherits the previous remainder clipped at zero, so a
// deficit week never pushes debt forward. The week's own remainder keeps
// its sign.
func Project(weeks []model.Week, budgets []model.CategoryBudget, purchases []model.Purchase) []model.Week {
	out := make([]model.Week, len(weeks))
	copy(out, weeks)

	carry := decimal.Zero
	for i := range out {
		w := &out[i]
		w.Carryover = carry

		w.Income = decimal.Zero
		for _, d := range w.Deposits {
			w.Income = w.Income.Add(d.Amount)
		}

		w.Deduction = Deduction(budgets, purchases, *w)
		w.Available = w.Income.Add(w.Carryover).Sub(w.Deduction)
		w.Remainder = w.Available.Sub(w.TotalBills)

		carry = decimal.Max(w.Remainder, decimal.Zero)
	}
	return out
}
