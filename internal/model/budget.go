package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryBudget is a planned spending amount for a category, valid over
// [EffectiveFrom, EffectiveTo]. A nil EffectiveTo means open-ended. Several
// budgets may exist per category with different effective ranges.
type CategoryBudget struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	Category      string
	Amount        decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// Covers reports whether the budget's effective range contains the whole
// span [start, end], not merely overlaps it.
func (b CategoryBudget) Covers(start, end time.Time) bool {
	if b.EffectiveFrom.After(start) {
		return false
	}
	return b.EffectiveTo == nil || !b.EffectiveTo.Before(end)
}

// Purchase records spending against a category. Estimated and Actual may
// both be absent; a purchase without a date never lands in any week.
type Purchase struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Category   string
	Estimated  *decimal.Decimal
	Actual     *decimal.Decimal
	Date       *time.Time
}

// Spend returns the figure a purchase contributes to actual spend: the
// actual amount when recorded, otherwise the estimate, otherwise zero.
func (p Purchase) Spend() decimal.Decimal {
	switch {
	case p.Actual != nil:
		return *p.Actual
	case p.Estimated != nil:
		return *p.Estimated
	}
	return decimal.Zero
}
