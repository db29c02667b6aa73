package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
	"billplan/internal/recur"
)

const dateLayout = "2006-01-02"

func (b *builder) bill(r rawBill) (model.Bill, bool) {
	if r.Name == "" {
		b.errorf("bill: name is required")
		return model.Bill{}, false
	}

	bill := model.Bill{
		ID:       uuid.New(),
		Name:     r.Name,
		Category: r.Category,
		Priority: r.Priority,
		DueDay:   r.DueDay,
		Deferred: r.Deferred,
	}

	variable := r.StatementBalance != nil || r.MinimumDue != nil || r.UpdatedBalance != nil
	switch {
	case variable && r.Amount != nil:
		b.errorf("bill %q: carries both a fixed amount and variable figures", r.Name)
		return model.Bill{}, false
	case variable:
		bill.Variable = &model.VariableAmounts{
			StatementBalance: r.StatementBalance,
			MinimumDue:       r.MinimumDue,
			UpdatedBalance:   r.UpdatedBalance,
		}
		for _, f := range []struct {
			name string
			v    *decimal.Decimal
		}{
			{"statement_balance", r.StatementBalance},
			{"minimum_due", r.MinimumDue},
			{"updated_balance", r.UpdatedBalance},
		} {
			if f.v != nil && f.v.IsNegative() {
				b.errorf("bill %q: negative %s %s", r.Name, f.name, f.v)
			}
		}
	case r.Amount != nil:
		if r.Amount.IsNegative() {
			b.errorf("bill %q: negative amount %s", r.Name, r.Amount)
		}
		bill.Amount = *r.Amount
	}

	if r.DueDate != "" {
		due, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			// An unreadable date is missing data, not a reason to abort.
			b.warnf("bill %q: unreadable due date %q, treating the bill as deferred", r.Name, r.DueDate)
			bill.Deferred = true
		} else {
			bill.DueDate = &due
		}
	}

	if err := recur.ValidateBill(bill); err != nil {
		b.errorf("bill %q: %v", r.Name, err)
		return model.Bill{}, false
	}
	return bill, true
}

func (b *builder) deposit(r rawDeposit) (model.Deposit, bool) {
	if r.Name == "" {
		b.errorf("deposit: name is required")
		return model.Deposit{}, false
	}
	if r.Amount == nil {
		b.errorf("deposit %q: amount is required", r.Name)
		return model.Deposit{}, false
	}
	if r.Amount.IsNegative() {
		b.errorf("deposit %q: negative amount %s", r.Name, r.Amount)
		return model.Deposit{}, false
	}

	if r.Date == "" {
		b.warnf("deposit %q: missing date, dropping it from scheduling", r.Name)
		return model.Deposit{}, false
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		b.warnf("deposit %q: unreadable date %q, dropping it from scheduling", r.Name, r.Date)
		return model.Deposit{}, false
	}

	return model.Deposit{
		ID:     uuid.New(),
		Name:   r.Name,
		Amount: *r.Amount,
		Date:   date,
	}, true
}

func (b *builder) rule(r rawRule) (model.IncomeRule, bool) {
	if r.Name == "" {
		b.errorf("income rule: name is required")
		return model.IncomeRule{}, false
	}
	if r.Amount == nil || !r.Amount.IsPositive() {
		b.errorf("income rule %q: a positive amount is required", r.Name)
		return model.IncomeRule{}, false
	}

	rule := model.IncomeRule{
		ID:              uuid.New(),
		Name:            r.Name,
		Amount:          *r.Amount,
		Unit:            model.RuleUnit(r.Unit),
		Interval:        r.Interval,
		DayOfMonth:      r.DayOfMonth,
		LastDay:         r.LastDay,
		LastBusinessDay: r.LastBusinessDay,
	}

	// Rule dates are construction-time input: a rule that cannot state when
	// it starts is malformed, unlike a bill with a missing due date.
	if r.Start != "" {
		start, err := time.Parse(dateLayout, r.Start)
		if err != nil {
			b.errorf("income rule %q: unreadable start date %q", r.Name, r.Start)
			return model.IncomeRule{}, false
		}
		rule.Start = start
	}
	if r.End != "" {
		end, err := time.Parse(dateLayout, r.End)
		if err != nil {
			b.errorf("income rule %q: unreadable end date %q", r.Name, r.End)
			return model.IncomeRule{}, false
		}
		rule.End = &end
	}
	if r.Weekday != "" {
		wd, ok := parseWeekday(r.Weekday)
		if !ok {
			b.errorf("income rule %q: unknown weekday %q", r.Name, r.Weekday)
			return model.IncomeRule{}, false
		}
		rule.Weekday = &wd
	}

	if err := recur.ValidateRule(rule); err != nil {
		b.errorf("income rule %q: %v", r.Name, err)
		return model.IncomeRule{}, false
	}
	return rule, true
}

func (b *builder) budget(r rawBudget) (model.CategoryBudget, bool) {
	if r.Category == "" {
		b.errorf("budget: category is required")
		return model.CategoryBudget{}, false
	}
	if r.Amount == nil {
		b.errorf("budget %q: amount is required", r.Category)
		return model.CategoryBudget{}, false
	}
	if r.Amount.IsNegative() {
		b.errorf("budget %q: negative amount %s", r.Category, r.Amount)
		return model.CategoryBudget{}, false
	}

	from, err := time.Parse(dateLayout, r.EffectiveFrom)
	if err != nil {
		b.errorf("budget %q: unreadable effective_from %q", r.Category, r.EffectiveFrom)
		return model.CategoryBudget{}, false
	}

	cb := model.CategoryBudget{
		ID:            uuid.New(),
		CategoryID:    b.category(r.Category),
		Category:      r.Category,
		Amount:        *r.Amount,
		EffectiveFrom: from,
	}
	if r.EffectiveTo != "" {
		to, err := time.Parse(dateLayout, r.EffectiveTo)
		if err != nil {
			b.errorf("budget %q: unreadable effective_to %q", r.Category, r.EffectiveTo)
			return model.CategoryBudget{}, false
		}
		if to.Before(from) {
			b.errorf("budget %q: effective_to %s precedes effective_from %s",
				r.Category, to.Format(dateLayout), from.Format(dateLayout))
			return model.CategoryBudget{}, false
		}
		cb.EffectiveTo = &to
	}
	return cb, true
}

func (b *builder) purchase(r rawPurchase) (model.Purchase, bool) {
	if r.Category == "" {
		b.errorf("purchase: category is required")
		return model.Purchase{}, false
	}
	for _, f := range []struct {
		name string
		v    *decimal.Decimal
	}{
		{"estimated", r.Estimated},
		{"actual", r.Actual},
	} {
		if f.v != nil && f.v.IsNegative() {
			b.errorf("purchase in %q: negative %s amount %s", r.Category, f.name, f.v)
			return model.Purchase{}, false
		}
	}

	p := model.Purchase{
		ID:         uuid.New(),
		CategoryID: b.category(r.Category),
		Category:   r.Category,
		Estimated:  r.Estimated,
		Actual:     r.Actual,
	}
	if r.Date != "" {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			b.warnf("purchase in %q: unreadable date %q, it will not count toward any week", r.Category, r.Date)
		} else {
			p.Date = &date
		}
	}
	return p, true
}

func (b *builder) source(r rawSource) (model.IncomeSource, bool) {
	if r.Name == "" {
		b.errorf("income source: name is required")
		return model.IncomeSource{}, false
	}
	if _, dup := b.sources[r.Name]; dup {
		b.errorf("income source %q: duplicate name", r.Name)
		return model.IncomeSource{}, false
	}

	s := model.IncomeSource{
		ID:          uuid.New(),
		Name:        r.Name,
		Cadence:     model.Cadence(r.Cadence),
		DaysPerWeek: r.DaysPerWeek,
	}
	if r.DailyPay != nil {
		s.DailyPay = *r.DailyPay
	}
	if r.ProjectAmount != nil {
		s.ProjectAmount = *r.ProjectAmount
	}

	switch s.Cadence {
	case model.CadenceDaily:
		if s.DailyPay.IsNegative() {
			b.errorf("income source %q: negative daily pay", r.Name)
			return model.IncomeSource{}, false
		}
		if r.DaysPerWeek < 0 || r.DaysPerWeek > 7 {
			b.errorf("income source %q: days per week %d out of range 0-7", r.Name, r.DaysPerWeek)
			return model.IncomeSource{}, false
		}
	case model.CadenceVarying:
		s.PayByWeekday = make(map[time.Weekday]decimal.Decimal, len(r.PayByWeekday))
		for day, amount := range r.PayByWeekday {
			wd, ok := parseWeekday(day)
			if !ok {
				b.errorf("income source %q: unknown weekday %q", r.Name, day)
				return model.IncomeSource{}, false
			}
			if amount.IsNegative() {
				b.errorf("income source %q: negative pay on %s", r.Name, wd)
				return model.IncomeSource{}, false
			}
			s.PayByWeekday[wd] = amount
		}
	case model.CadenceProject:
		if s.ProjectAmount.IsNegative() {
			b.errorf("income source %q: negative project amount", r.Name)
			return model.IncomeSource{}, false
		}
	default:
		b.errorf("income source %q: unknown cadence %q", r.Name, r.Cadence)
		return model.IncomeSource{}, false
	}

	b.sources[r.Name] = s.ID
	return s, true
}

func (b *builder) goal(r rawGoal) (model.Goal, bool) {
	if r.Name == "" {
		b.errorf("goal: name is required")
		return model.Goal{}, false
	}
	if r.Target == nil || !r.Target.IsPositive() {
		b.errorf("goal %q: a positive target is required", r.Name)
		return model.Goal{}, false
	}

	g := model.Goal{
		ID:             uuid.New(),
		Name:           r.Name,
		Target:         *r.Target,
		UseBankBalance: r.UseBankBalance,
	}
	if r.Due != "" {
		due, err := time.Parse(dateLayout, r.Due)
		if err != nil {
			b.warnf("goal %q: unreadable due date %q, ignoring it", r.Name, r.Due)
		} else {
			g.Due = &due
		}
	}

	ok := true
	for _, a := range r.Allocations {
		srcID, found := b.sources[a.Source]
		if !found {
			b.errorf("goal %q: allocation names unknown income source %q", r.Name, a.Source)
			ok = false
			continue
		}

		alloc := model.Allocation{SourceID: srcID, Source: a.Source, Mode: model.AllocationMode(a.Mode)}
		switch alloc.Mode {
		case model.ModeAll:
		case model.ModePercent:
			if a.Percent == nil {
				b.errorf("goal %q: percentage allocation from %q needs a percent", r.Name, a.Source)
				ok = false
				continue
			}
			hundred := decimal.NewFromInt(100)
			if a.Percent.IsNegative() || a.Percent.GreaterThan(hundred) {
				b.errorf("goal %q: percent %s out of range 0-100", r.Name, a.Percent)
				ok = false
				continue
			}
			alloc.Percent = *a.Percent
		case model.ModeFixed:
			if a.Amount == nil || a.Amount.IsNegative() {
				b.errorf("goal %q: fixed allocation from %q needs a non-negative amount", r.Name, a.Source)
				ok = false
				continue
			}
			alloc.Amount = *a.Amount
		default:
			b.errorf("goal %q: unknown allocation mode %q", r.Name, a.Mode)
			ok = false
			continue
		}
		g.Allocations = append(g.Allocations, alloc)
	}

	if g.UseBankBalance {
		// The flat figure itself lives at the ledger root as bank_balance.
		g.BankBalance = b.bankBalance
	}
	return g, ok
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(s)]
	return wd, ok
}
