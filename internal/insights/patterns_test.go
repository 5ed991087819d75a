package insights

import (
	"testing"
	"time"

	"finvault/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePatterns_Empty(t *testing.T) {
	rep := AnalyzePatterns(nil, refNow)
	assert.False(t, rep.HasData)
	assert.Empty(t, rep.Patterns)

	// outside the six month window counts as empty too
	rep = AnalyzePatterns([]core.Transaction{expense(10, "Food", 2024, 1, 1)}, refNow)
	assert.False(t, rep.HasData)
}

func TestAnalyzePatterns_SingleExpense(t *testing.T) {
	rep := AnalyzePatterns([]core.Transaction{expense(1000, "Food", 2025, 6, 15)}, refNow)
	require.True(t, rep.HasData)
	require.Len(t, rep.Patterns, 4)

	top := rep.Patterns[0]
	assert.Equal(t, PatternTopCategory, top.Kind)
	assert.Equal(t, "Top Category", top.Label)
	assert.Equal(t, "Food", top.Name)
	assert.True(t, top.Amount.Equal(dec(1000)))

	avg := rep.Patterns[1]
	assert.Equal(t, PatternAverageMonthly, avg.Kind)
	assert.Equal(t, 1, avg.Months)
	assert.True(t, avg.Amount.Equal(dec(1000)), "avg = %s", avg.Amount)
	assert.True(t, avg.TrendPercent.IsZero())
	assert.False(t, avg.HasTrend, "no spending the month before")

	peak := rep.Patterns[2]
	assert.Equal(t, PatternPeakDay, peak.Kind)
	assert.Equal(t, time.Sunday.String(), peak.Name)
	assert.Equal(t, 1, peak.Count)

	total := rep.Patterns[3]
	assert.Equal(t, PatternTotalExpenses, total.Kind)
	assert.True(t, total.Amount.Equal(dec(1000)))
	assert.Equal(t, 1, total.Months)
}

func TestAnalyzePatterns_AverageAndTrend(t *testing.T) {
	txns := []core.Transaction{
		expense(450, "Rent", 2025, 6, 1),
		expense(300, "Rent", 2025, 5, 1),
		expense(150, "Food", 2025, 3, 20),
		income(5000, 2025, 6, 1),
	}
	rep := AnalyzePatterns(txns, refNow)
	require.True(t, rep.HasData)

	// 2025-03-20 to 2025-06-15 12:00 is 87.5 days: three 30 day periods
	avg := rep.Patterns[1]
	assert.Equal(t, 3, avg.Months)
	assert.True(t, avg.Amount.Equal(dec(300)), "avg = %s", avg.Amount)
	assert.True(t, avg.TrendPercent.Equal(dec(50)), "trend = %s", avg.TrendPercent)
	assert.True(t, avg.HasTrend)

	assert.Equal(t, "Rent", rep.Patterns[0].Name)
	assert.True(t, rep.Patterns[3].Amount.Equal(dec(900)))
}

func TestAnalyzePatterns_IncomeOnly(t *testing.T) {
	rep := AnalyzePatterns([]core.Transaction{income(100000, 2025, 6, 1)}, refNow)
	require.True(t, rep.HasData)
	assert.Equal(t, "", rep.Patterns[0].Name)
	assert.True(t, rep.Patterns[1].Amount.IsZero())
	assert.Equal(t, 0, rep.Patterns[2].Count)
}

func TestMonthsWithData_Clamped(t *testing.T) {
	assert.Equal(t, 1, monthsWithData(core.DateOf(refNow), refNow))
	assert.Equal(t, PatternWindowMonths, monthsWithData(MonthsAgo(refNow, 6), refNow))
}
