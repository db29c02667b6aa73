// Package goal projects whether savings goals are affordable from the
// income allocated to them.
package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
	"billplan/internal/recur"
)

// weeksPerMonth is a fixed approximation (52 weeks / 12 months), not a
// calendar-exact average.
var weeksPerMonth = decimal.NewFromFloat(4.33)

// MonthlyEquivalent normalizes an income source to one month of earnings.
// Daily sources earn their daily pay on a fixed number of days per week; a
// varying source's week is the sum of its per-weekday amounts. Either way
// the weekly figure scales by 4.33 weeks per month. Project sources store a
// figure that is already monthly.
func MonthlyEquivalent(src model.IncomeSource) decimal.Decimal {
	switch src.Cadence {
	case model.CadenceDaily:
		return src.DailyPay.Mul(decimal.NewFromInt(int64(src.DaysPerWeek))).Mul(weeksPerMonth)
	case model.CadenceVarying:
		weekly := decimal.Zero
		for _, amount := range src.PayByWeekday {
			weekly = weekly.Add(amount)
		}
		return weekly.Mul(weeksPerMonth)
	case model.CadenceProject:
		return src.ProjectAmount
	}
	return decimal.Zero
}

// Contribution applies an allocation's mode to its source's monthly figure.
// Fixed-amount allocations substitute their flat amount and ignore the
// source figure entirely.
func Contribution(a model.Allocation, monthly decimal.Decimal) decimal.Decimal {
	switch a.Mode {
	case model.ModeAll:
		return monthly
	case model.ModePercent:
		return monthly.Mul(a.Percent).Div(decimal.NewFromInt(100))
	case model.ModeFixed:
		return a.Amount
	}
	return decimal.Zero
}

// Project decides whether the goal is affordable from one month of its
// allocated income plus the optional bank-balance contribution. When it is
// not, the projected date assumes the same total accrues every month; with
// zero or negative progress no date is produced at all.
func Project(g model.Goal, sources []model.IncomeSource, today time.Time) model.GoalProjection {
	byID := make(map[uuid.UUID]model.IncomeSource, len(sources))
	for _, s := range sources {
		byID[s.ID] = s
	}

	monthly := decimal.Zero
	for _, a := range g.Allocations {
		src, ok := byID[a.SourceID]
		if !ok {
			continue
		}
		monthly = monthly.Add(Contribution(a, MonthlyEquivalent(src)))
	}

	total := monthly
	if g.UseBankBalance {
		total = total.Add(g.BankBalance)
	}

	p := model.GoalProjection{Goal: g, Monthly: monthly, Total: total}
	if total.GreaterThanOrEqual(g.Target) {
		p.CanAfford = true
		p.Surplus = total.Sub(g.Target)
		d := truncateDay(today)
		p.ProjectedDate = &d
		return p
	}

	p.Shortfall = g.Target.Sub(total)
	if total.IsPositive() {
		months := g.Target.Div(total).Ceil().IntPart()
		d := recur.AddMonths(truncateDay(today), int(months))
		p.ProjectedDate = &d
	}
	return p
}

// ProjectAll runs the projection for every goal against one set of sources.
func ProjectAll(goals []model.Goal, sources []model.IncomeSource, today time.Time) []model.GoalProjection {
	out := make([]model.GoalProjection, 0, len(goals))
	for _, g := range goals {
		out = append(out, Project(g, sources, today))
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
