package forecast

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
)

// ResolveBudget picks the budget amount in force for a category across a
// window. Only budgets whose effective range covers the window in full are
// candidates; among those the latest effective-from wins, so a newer budget
// supersedes the one it overlaps. With no candidate the amount is zero.
func ResolveBudget(budgets []model.CategoryBudget, categoryID uuid.UUID, week model.Week) decimal.Decimal {
	var best *model.CategoryBudget
	for i := range budgets {
		b := &budgets[i]
		if b.CategoryID != categoryID || !b.Covers(week.Start, week.End) {
			continue
		}
		if best == nil || b.EffectiveFrom.After(best.EffectiveFrom) {
			best = b
		}
	}
	if best == nil {
		return decimal.Zero
	}
	return best.Amount
}

// ActualSpend sums the category's purchases dated inside the window.
func ActualSpend(purchases []model.Purchase, categoryID uuid.UUID, week model.Week) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if p.CategoryID != categoryID || p.Date == nil {
			continue
		}
		if week.Contains(truncateDay(*p.Date)) {
			total = total.Add(p.Spend())
		}
	}
	return total
}

// Deduction computes the window's total expense deduction: per category,
// the larger of the resolved budget and the actual spend, so the projection
// never understates a week's cost when spending exceeds plan.
func Deduction(budgets []model.CategoryBudget, purchases []model.Purchase, week model.Week) decimal.Decimal {
	categories := make(map[uuid.UUID]struct{})
	for _, b := range budgets {
		categories[b.CategoryID] = struct{}{}
	}
	for _, p := range purchases {
		categories[p.CategoryID] = struct{}{}
	}

	total := decimal.Zero
	for id := range categories {
		planned := ResolveBudget(budgets, id, week)
		spent := ActualSpend(purchases, id, week)
		total = total.Add(decimal.Max(planned, spent))
	}
	return total
}
