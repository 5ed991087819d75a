package insights

import (
	"testing"
	"time"

	"finvault/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsAgo_NaiveSubtraction(t *testing.T) {
	now := time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-03", MonthsAgo(now, 1).String())
	assert.Equal(t, "2024-12-31", MonthsAgo(now, 3).String())
	assert.Equal(t, "2025-03-24", DaysAgo(now, 7).String())
}

func TestWindowContains(t *testing.T) {
	w := Between(refNow, 2, 1)
	assert.True(t, w.Contains(core.NewDate(2025, 4, 15)), "start is inclusive")
	assert.False(t, w.Contains(core.NewDate(2025, 5, 15)), "end is exclusive")
	assert.False(t, w.Contains(core.NewDate(2025, 4, 14)))

	open := LastMonths(refNow, 1)
	assert.True(t, open.Contains(core.NewDate(2025, 7, 1)), "open window has no upper bound")
}

func TestSummarize(t *testing.T) {
	txns := []core.Transaction{
		expense(100, "Rent", 2025, 6, 10),
		income(500, 2025, 6, 1),
		expense(100, "Food", 2025, 6, 9),
		expense(50, "Food", 2025, 5, 1),
		expense(999, "Old", 2024, 1, 1),
	}
	s := Summarize(txns, LastMonths(refNow, 6))

	require.Len(t, s.Transactions, 4)
	assert.Equal(t, 3, s.ExpenseCount)
	assert.True(t, s.Totals.Income.Equal(dec(500)))
	assert.True(t, s.Totals.Expense.Equal(dec(250)))
	assert.Equal(t, "2025-05-01", s.Earliest.String())

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Rent", s.Categories[0].Name, "first encountered order")

	top, ok := s.TopCategory()
	require.True(t, ok)
	assert.Equal(t, "Food", top.Name)
	assert.True(t, top.Amount.Equal(dec(150)))

	ranked := s.RankedCategories()
	assert.Equal(t, []string{"Food", "Rent"}, []string{ranked[0].Name, ranked[1].Name})
	assert.Equal(t, "Rent", s.Categories[0].Name, "ranking does not reorder the summary")
}

func TestSummarize_TieBreakIsFirstEncountered(t *testing.T) {
	txns := []core.Transaction{
		expense(100, "Travel", 2025, 6, 10), // Tuesday
		expense(100, "Food", 2025, 6, 9),    // Monday
	}
	s := Summarize(txns, LastMonths(refNow, 6))

	top, _ := s.TopCategory()
	assert.Equal(t, "Travel", top.Name)

	peak, ok := s.PeakWeekday()
	require.True(t, ok)
	assert.Equal(t, time.Tuesday, peak.Day)
	assert.Equal(t, 1, peak.Count)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, LastMonths(refNow, 6))
	assert.True(t, s.Empty())
	_, ok := s.TopCategory()
	assert.False(t, ok)
	_, ok = s.PeakWeekday()
	assert.False(t, ok)
	assert.True(t, s.Totals.Expense.IsZero())
}

func TestMonthlyBuckets_AlwaysSixZeroFilled(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	empty := MonthlyBuckets(nil, now, 6)
	require.Len(t, empty, 6)
	for _, b := range empty {
		assert.True(t, b.Totals.Income.IsZero())
		assert.True(t, b.Totals.Expense.IsZero())
	}

	txns := []core.Transaction{
		expense(40, "Food", 2024, 12, 24),
		expense(99, "Food", 2023, 12, 24), // same month name, other year
		income(1000, 2025, 2, 1),
	}
	buckets := MonthlyBuckets(txns, now, 6)
	require.Len(t, buckets, 6)

	var labels []string
	for _, b := range buckets {
		labels = append(labels, b.Label())
	}
	assert.Equal(t, []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, labels)
	assert.Equal(t, 2024, buckets[3].Year)
	assert.True(t, buckets[3].Totals.Expense.Equal(dec(40)))
	assert.True(t, buckets[5].Totals.Income.Equal(dec(1000)))
}

func TestTrendPercent(t *testing.T) {
	txns := []core.Transaction{
		expense(150, "Food", 2025, 6, 1),
		expense(100, "Food", 2025, 5, 1),
		income(900, 2025, 5, 2),
	}
	pct, recent, previous := TrendPercent(txns, refNow)
	assert.True(t, pct.Equal(dec(50)), "pct = %s", pct)
	assert.True(t, recent.Equal(dec(150)))
	assert.True(t, previous.Equal(dec(100)))

	pct, _, _ = TrendPercent(txns[:1], refNow)
	assert.True(t, pct.IsZero(), "no previous month means no trend")
}

func TestLastDays(t *testing.T) {
	w := LastDays(refNow, 7)
	assert.Equal(t, "2025-06-08", w.Start.String())
	txns := []core.Transaction{
		expense(30, "Food", 2025, 6, 8),
		expense(20, "Food", 2025, 6, 7),
		income(900, 2025, 6, 10),
	}
	assert.True(t, ExpenseTotal(txns, w).Equal(dec(30)))
}
