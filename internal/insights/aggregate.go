// Package insights derives spending patterns, forecasts and recommendations
// from a user's transactions. Everything here is pure: callers pass the
// transactions and the reference time, nothing is read or written.
package insights

import (
	"sort"
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

// Window is a half-open range of calendar dates [Start, End). A zero End
// leaves the window open towards the future.
type Window struct {
	Start core.Date
	End   core.Date
}

// MonthsAgo subtracts n calendar months from now the naive way: the day of
// month is kept and overflow rolls forward (31 Mar minus 1 month is 3 Mar).
func MonthsAgo(now time.Time, n int) core.Date {
	return core.DateOf(now.AddDate(0, -n, 0))
}

// DaysAgo is the calendar date n days before now.
func DaysAgo(now time.Time, n int) core.Date {
	return core.DateOf(now.AddDate(0, 0, -n))
}

// LastMonths is the trailing n-month lookback ending at now.
func LastMonths(now time.Time, n int) Window {
	return Window{Start: MonthsAgo(now, n)}
}

// LastDays is the trailing n-day lookback ending at now.
func LastDays(now time.Time, n int) Window {
	return Window{Start: DaysAgo(now, n)}
}

// Between is the month slice [now-from months, now-to months).
func Between(now time.Time, from, to int) Window {
	return Window{Start: MonthsAgo(now, from), End: MonthsAgo(now, to)}
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d core.Date) bool {
	if d.Before(w.Start.Time) {
		return false
	}
	return w.End.IsZero() || d.Before(w.End.Time)
}

// WeekdayStat counts expense transactions falling on one weekday.
type WeekdayStat struct {
	Day    time.Weekday
	Count  int
	Amount decimal.Decimal
}

// Summary is one pass of a transaction list over a window. Categories and
// Weekdays cover expenses only and keep first-encountered order.
type Summary struct {
	Window       Window
	Transactions []core.Transaction
	Totals       core.PeriodTotals
	ExpenseCount int
	Categories   []core.CategoryAmount
	Weekdays     []WeekdayStat
	Earliest     core.Date
}

// Summarize filters txns to w and aggregates them. The input is not modified.
func Summarize(txns []core.Transaction, w Window) Summary {
	s := Summary{Window: w}
	catIdx := make(map[string]int)
	dayIdx := make(map[time.Weekday]int)

	for _, t := range txns {
		if !w.Contains(t.Date) {
			continue
		}
		s.Transactions = append(s.Transactions, t)
		s.Totals = s.Totals.Add(t)
		if s.Earliest.IsZero() || t.Date.Before(s.Earliest.Time) {
			s.Earliest = t.Date
		}
		if t.Type != core.Expense {
			continue
		}
		s.ExpenseCount++

		i, ok := catIdx[t.Category]
		if !ok {
			i = len(s.Categories)
			catIdx[t.Category] = i
			s.Categories = append(s.Categories, core.CategoryAmount{Name: t.Category})
		}
		s.Categories[i].Amount = s.Categories[i].Amount.Add(t.Amount)

		wd := t.Date.Weekday()
		j, ok := dayIdx[wd]
		if !ok {
			j = len(s.Weekdays)
			dayIdx[wd] = j
			s.Weekdays = append(s.Weekdays, WeekdayStat{Day: wd})
		}
		s.Weekdays[j].Count++
		s.Weekdays[j].Amount = s.Weekdays[j].Amount.Add(t.Amount)
	}
	return s
}

// Empty reports whether no transaction fell inside the window.
func (s Summary) Empty() bool {
	return len(s.Transactions) == 0
}

// TopCategory returns the largest expense category. Ties go to the category
// encountered first.
func (s Summary) TopCategory() (core.CategoryAmount, bool) {
	if len(s.Categories) == 0 {
		return core.CategoryAmount{}, false
	}
	top := s.Categories[0]
	for _, c := range s.Categories[1:] {
		if c.Amount.GreaterThan(top.Amount) {
			top = c
		}
	}
	return top, true
}

// RankedCategories returns the categories by descending total.
func (s Summary) RankedCategories() []core.CategoryAmount {
	out := make([]core.CategoryAmount, len(s.Categories))
	copy(out, s.Categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// PeakWeekday returns the weekday with the most expense transactions, with
// the same first-encountered tie-break as TopCategory.
func (s Summary) PeakWeekday() (WeekdayStat, bool) {
	if len(s.Weekdays) == 0 {
		return WeekdayStat{}, false
	}
	peak := s.Weekdays[0]
	for _, d := range s.Weekdays[1:] {
		if d.Count > peak.Count {
			peak = d
		}
	}
	return peak, true
}

// ExpenseTotal sums expense amounts inside w.
func ExpenseTotal(txns []core.Transaction, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == core.Expense && w.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func monthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Label is the fixed English three letter month name.
func (k MonthKey) Label() string {
	return k.Month.String()[:3]
}

// addMonths moves whole calendar months without day overflow.
func (k MonthKey) addMonths(n int) MonthKey {
	t := time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return monthKeyOf(t)
}

// MonthlyBucket holds income and expense totals for one calendar month.
type MonthlyBucket struct {
	MonthKey
	Totals core.PeriodTotals
}

// MonthlyBuckets returns exactly n buckets, oldest first, ending with the
// month containing now. Months without transactions are zero.
func MonthlyBuckets(txns []core.Transaction, now time.Time, n int) []MonthlyBucket {
	if n <= 0 {
		return []MonthlyBucket{}
	}
	current := monthKeyOf(now)
	buckets := make([]MonthlyBucket, n)
	idx := make(map[MonthKey]int, n)
	for i := 0; i < n; i++ {
		k := current.addMonths(i - n + 1)
		buckets[i] = MonthlyBucket{MonthKey: k}
		idx[k] = i
	}
	for _, t := range txns {
		if i, ok := idx[monthKeyOf(t.Date.Time)]; ok {
			buckets[i].Totals = buckets[i].Totals.Add(t)
		}
	}
	return buckets
}

// TrendPercent compares the trailing month of expenses against the month
// before it: (recent - previous) / previous * 100, rounded to one decimal.
// A zero previous month yields 0.
func TrendPercent(txns []core.Transaction, now time.Time) (pct, recent, previous decimal.Decimal) {
	recent = ExpenseTotal(txns, LastMonths(now, 1))
	previous = ExpenseTotal(txns, Between(now, 2, 1))
	if !previous.IsPositive() {
		return decimal.Zero, recent, previous
	}
	pct = recent.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	return pct, recent, previous
}
