// Package recur resolves recurrence rules into concrete calendar dates.
package recur

import (
	"errors"
	"fmt"
	"time"

	"billplan/internal/model"
)

// NextBillDue resolves a bill's next occurrence against a reference date.
// One-time bills resolve to their stored date unconditionally, even when it
// lies in the past. Monthly bills resolve to the due day in the reference
// month, advancing to the following month when that candidate is earlier
// than the reference date. The second return is false for bills with no
// scheduling fields.
func NextBillDue(b model.Bill, ref time.Time) (time.Time, bool) {
	if b.DueDate != nil {
		return *b.DueDate, true
	}
	if b.DueDay == 0 {
		return time.Time{}, false
	}

	candidate := DayInMonth(b.DueDay, ref.Year(), ref.Month(), ref.Location())
	if candidate.Before(truncateDay(ref)) {
		y, m := addMonths(ref.Year(), ref.Month(), 1)
		candidate = DayInMonth(b.DueDay, y, m, ref.Location())
	}
	return candidate, true
}

// DayInMonth places a day-of-month value inside the given month. Days past
// the month's length clamp to its final day (31 resolves to Feb 28 or 29),
// never rolling into the following month.
func DayInMonth(day, year int, month time.Month, loc *time.Location) time.Time {
	if last := daysIn(year, month, loc); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// AddMonths advances a date by whole months. The day of month clamps to
// the target month's length instead of overflowing, so January 31 plus one
// month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m := addMonths(t.Year(), t.Month(), n)
	return DayInMonth(t.Day(), y, m, t.Location())
}

// LastBusinessDay returns the latest Monday-Friday date in the month.
func LastBusinessDay(year int, month time.Month, loc *time.Location) time.Time {
	d := time.Date(year, month, daysIn(year, month, loc), 0, 0, 0, 0, loc)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// ValidateBill rejects bills whose scheduling fields cannot be resolved.
// A bill may carry a one-time due date or a monthly due day, not both;
// carrying neither is legal and means the bill is deferred.
func ValidateBill(b model.Bill) error {
	var errs []error
	if b.DueDate != nil && b.DueDay != 0 {
		errs = append(errs, errors.New("both a due date and a due day are set"))
	}
	if b.DueDay < 0 || b.DueDay > 31 {
		errs = append(errs, fmt.Errorf("due day %d out of range 1-31", b.DueDay))
	}
	return errors.Join(errs...)
}

// ValidateRule rejects malformed income rules at construction time. Weekly
// rules take exactly a weekday placement; monthly rules take exactly one of
// a day-of-month, last-day, or last-business-day placement.
func ValidateRule(r model.IncomeRule) error {
	var errs []error

	if r.Interval < 1 {
		errs = append(errs, fmt.Errorf("interval must be at least 1, got %d", r.Interval))
	}
	if r.Start.IsZero() {
		errs = append(errs, errors.New("start date is required"))
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		errs = append(errs, fmt.Errorf("day of month %d out of range 1-31", r.DayOfMonth))
	}

	monthly := 0
	if r.DayOfMonth > 0 {
		monthly++
	}
	if r.LastDay {
		monthly++
	}
	if r.LastBusinessDay {
		monthly++
	}

	switch r.Unit {
	case model.UnitWeek:
		if r.Weekday == nil {
			errs = append(errs, errors.New("weekly rule needs a weekday placement"))
		}
		if monthly > 0 {
			errs = append(errs, errors.New("weekly rule cannot carry a monthly placement"))
		}
	case model.UnitMonth:
		if r.Weekday != nil {
			errs = append(errs, errors.New("monthly rule cannot carry a weekday placement"))
		}
		if monthly == 0 {
			errs = append(errs, errors.New("monthly rule needs a day-of-month, last-day, or last-business-day placement"))
		}
		if monthly > 1 {
			errs = append(errs, errors.New("monthly placements are mutually exclusive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown unit %q", r.Unit))
	}

	return errors.Join(errs...)
}

// Occurrences expands a rule into every concrete date within [from, to].
// Dates are produced by striding Interval weeks or months from the rule's
// start, so an interval of 2 fires biweekly rather than on every matching
// week. The rule's end date is an exclusive bound: nothing is produced on
// or after it. The rule must already be validated.
func Occurrences(r model.IncomeRule, from, to time.Time) []time.Time {
	if to.Before(from) {
		return nil
	}
	switch r.Unit {
	case model.UnitWeek:
		return weeklyOccurrences(r, from, to)
	case model.UnitMonth:
		return monthlyOccurrences(r, from, to)
	}
	return nil
}

func weeklyOccurrences(r model.IncomeRule, from, to time.Time) []time.Time {
	start := truncateDay(r.Start)

	// First date on or after the start that lands on the placement weekday.
	offset := (int(*r.Weekday) - int(start.Weekday()) + 7) % 7
	anchor := start.AddDate(0, 0, offset)

	var out []time.Time
	for d := anchor; !d.After(to); d = d.AddDate(0, 0, r.Interval*7) {
		if r.End != nil && !d.Before(*r.End) {
			break
		}
		if !d.Before(from) {
			out = append(out, d)
		}
	}
	return out
}

func monthlyOccurrences(r model.IncomeRule, from, to time.Time) []time.Time {
	start := truncateDay(r.Start)
	loc := start.Location()

	var out []time.Time
	year, month := start.Year(), start.Month()
	for months := 0; ; months += r.Interval {
		y, m := addMonths(year, month, months)
		var d time.Time
		switch {
		case r.DayOfMonth > 0:
			d = DayInMonth(r.DayOfMonth, y, m, loc)
		case r.LastDay:
			d = time.Date(y, m, daysIn(y, m, loc), 0, 0, 0, 0, loc)
		case r.LastBusinessDay:
			d = LastBusinessDay(y, m, loc)
		}
		if d.After(to) {
			break
		}
		if r.End != nil && !d.Before(*r.End) {
			break
		}
		// The start month's candidate may precede the start date itself.
		if d.Before(start) || d.Before(from) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// addMonths advances a (year, month) pair without day-of-month overflow.
func addMonths(year int, month time.Month, n int) (int, time.Month) {
	total := year*12 + int(month) - 1 + n
	return total / 12, time.Month(total%12 + 1)
}

// daysIn returns the number of calendar days in the month. Day zero of the
// following month normalizes back to this month's final day.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
