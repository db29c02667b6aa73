// Package forecast buckets bills and deposits into Sunday-aligned week
// windows and projects a running spendable balance across them.
package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billplan/internal/model"
	"billplan/internal/recur"
)

// BuildWeeks returns count contiguous 7-day windows. Window zero starts on
// the Sunday on or before ref shifted by offsetWeeks whole weeks; each
// following window starts exactly 7 days after the previous one.
func BuildWeeks(count, offsetWeeks int, ref time.Time) []model.Week {
	if count <= 0 {
		return nil
	}
	first := weekStart(ref.AddDate(0, 0, offsetWeeks*7))

	weeks := make([]model.Week, count)
	for i := range weeks {
		s := first.AddDate(0, 0, i*7)
		weeks[i] = model.Week{Start: s, End: s.AddDate(0, 0, 6)}
	}
	return weeks
}

// Assign places every schedulable occurrence into the window containing it
// and returns the result without touching the inputs. Deferred bills
// (flagged, or carrying no scheduling fields) and occurrences dated before
// today are split into their own collections and never counted in weekly
// totals. Recurring income rules are expanded across the full horizon.
func Assign(weeks []model.Week, bills []model.Bill, deposits []model.Deposit, rules []model.IncomeRule, today time.Time) model.Schedule {
	s := model.Schedule{Weeks: make([]model.Week, len(weeks))}
	copy(s.Weeks, weeks)
	today = truncateDay(today)

	for _, b := range bills {
		if b.Deferred || b.Unscheduled() {
			s.Deferred = append(s.Deferred, b)
			continue
		}
		if b.DueDate != nil {
			placeBill(&s, b, truncateDay(*b.DueDate), today)
			continue
		}
		for _, due := range monthlyCandidates(b.DueDay, s.Weeks) {
			placeBill(&s, b, due, today)
		}
	}

	for _, d := range deposits {
		placeDeposit(s.Weeks, d)
	}
	if len(s.Weeks) > 0 {
		from, to := s.Weeks[0].Start, s.Weeks[len(s.Weeks)-1].End
		for _, r := range rules {
			rid := r.ID
			for _, day := range recur.Occurrences(r, from, to) {
				placeDeposit(s.Weeks, model.Deposit{
					ID:     uuid.NewSHA1(rid, []byte(day.Format("2006-01-02"))),
					Name:   r.Name,
					Amount: r.Amount,
					Date:   day,
					RuleID: &rid,
				})
			}
		}
	}

	for i := range s.Weeks {
		w := &s.Weeks[i]
		sortBills(w.Bills)
		sort.Slice(w.Deposits, func(a, b int) bool {
			return w.Deposits[a].Date.Before(w.Deposits[b].Date)
		})
		w.TotalBills = decimal.Zero
		for _, sb := range w.Bills {
			w.TotalBills = w.TotalBills.Add(sb.Amount)
		}
	}
	sortBills(s.Overdue)
	sort.Slice(s.Deferred, func(a, b int) bool {
		if s.Deferred[a].Priority != s.Deferred[b].Priority {
			return s.Deferred[a].Priority > s.Deferred[b].Priority
		}
		return s.Deferred[a].Name < s.Deferred[b].Name
	})

	return s
}

// monthlyCandidates resolves a due day against both the starting and the
// ending month of every window. A window spanning a month boundary would
// otherwise drop bills due late in the first month or early in the second.
func monthlyCandidates(day int, weeks []model.Week) []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, w := range weeks {
		for _, c := range [2]time.Time{
			recur.DayInMonth(day, w.Start.Year(), w.Start.Month(), w.Start.Location()),
			recur.DayInMonth(day, w.End.Year(), w.End.Month(), w.End.Location()),
		} {
			if !w.Contains(c) {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func placeBill(s *model.Schedule, b model.Bill, due, today time.Time) {
	sb := model.ScheduledBill{Bill: b, Due: due, Amount: b.CurrentAmountDue()}
	if due.Before(today) {
		s.Overdue = append(s.Overdue, sb)
		return
	}
	for i := range s.Weeks {
		if s.Weeks[i].Contains(due) {
			s.Weeks[i].Bills = append(s.Weeks[i].Bills, sb)
			return
		}
	}
}

func placeDeposit(weeks []model.Week, d model.Deposit) {
	day := truncateDay(d.Date)
	for i := range weeks {
		if weeks[i].Contains(day) {
			weeks[i].Deposits = append(weeks[i].Deposits, d)
			return
		}
	}
}

func sortBills(bills []model.ScheduledBill) {
	sort.Slice(bills, func(a, b int) bool {
		if !bills[a].Due.Equal(bills[b].Due) {
			return bills[a].Due.Before(bills[b].Due)
		}
		if bills[a].Bill.Priority != bills[b].Bill.Priority {
			return bills[a].Bill.Priority > bills[b].Bill.Priority
		}
		return bills[a].Bill.Name < bills[b].Bill.Name
	})
}

// weekStart returns the Sunday on or before d, at midnight.
func weekStart(d time.Time) time.Time {
	d = truncateDay(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
