package insights

import (
	"math"
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

// PatternWindowMonths is the lookback used by AnalyzePatterns.
const PatternWindowMonths = 6

type PatternKind string

const (
	PatternTopCategory    PatternKind = "top_category"
	PatternAverageMonthly PatternKind = "avg_monthly"
	PatternPeakDay        PatternKind = "peak_day"
	PatternTotalExpenses  PatternKind = "total_expenses"
)

// Pattern carries raw values only. Name is the category or weekday where the
// kind has one; Count is the peak day transaction count; Months is the
// number of months with data behind the average and the total. HasTrend is
// false when there was no spending the month before, and TrendPercent is
// then zero.
type Pattern struct {
	Kind         PatternKind
	Label        string
	Name         string
	Amount       decimal.Decimal
	Count        int
	TrendPercent decimal.Decimal
	HasTrend     bool
	Months       int
}

type PatternReport struct {
	Patterns []Pattern
	HasData  bool
}

// AnalyzePatterns produces the four fixed pattern slots over the trailing six
// months: top category, average monthly spend with month-over-month trend,
// peak weekday, and total expenses.
func AnalyzePatterns(txns []core.Transaction, now time.Time) PatternReport {
	s := Summarize(txns, LastMonths(now, PatternWindowMonths))
	if s.Empty() {
		return PatternReport{Patterns: []Pattern{}}
	}

	top, _ := s.TopCategory()
	months := monthsWithData(s.Earliest, now)
	avg := s.Totals.Expense.Div(decimal.NewFromInt(int64(months))).Round(2)
	trend, _, previous := TrendPercent(txns, now)

	peak := Pattern{Kind: PatternPeakDay, Label: "Peak Day"}
	if d, ok := s.PeakWeekday(); ok {
		peak.Name = d.Day.String()
		peak.Count = d.Count
		peak.Amount = d.Amount
	}

	return PatternReport{
		HasData: true,
		Patterns: []Pattern{
			{Kind: PatternTopCategory, Label: "Top Category", Name: top.Name, Amount: top.Amount},
			{Kind: PatternAverageMonthly, Label: "Avg Monthly", Amount: avg, TrendPercent: trend, HasTrend: previous.IsPositive(), Months: months},
			peak,
			{Kind: PatternTotalExpenses, Label: "Total Expenses", Amount: s.Totals.Expense, Months: months},
		},
	}
}

// monthsWithData counts 30-day periods between the first transaction in the
// window and now, clamped to [1, PatternWindowMonths].
func monthsWithData(earliest core.Date, now time.Time) int {
	days := now.Sub(earliest.Time).Hours() / 24
	n := int(math.Ceil(days / 30))
	if n < 1 {
		return 1
	}
	if n > PatternWindowMonths {
		return PatternWindowMonths
	}
	return n
}
