package insights

import (
	"testing"
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_InsufficientData(t *testing.T) {
	rep := Forecast(nil, refNow)
	assert.False(t, rep.HasData)
	assert.Empty(t, rep.Predictions)

	four := []core.Transaction{
		expense(10, "Food", 2025, 6, 1),
		expense(10, "Food", 2025, 5, 1),
		expense(10, "Food", 2025, 4, 1),
		expense(10, "Food", 2025, 3, 1),
		income(10, 2025, 6, 2),
	}
	assert.False(t, Forecast(four, refNow).HasData, "income does not count towards the minimum")
}

func TestForecast_FlatAverageOverPresentMonths(t *testing.T) {
	txns := []core.Transaction{
		expense(400, "Rent", 2025, 6, 3),
		expense(300, "Rent", 2025, 5, 3),
		expense(100, "Food", 2025, 4, 3),
		expense(100, "Food", 2025, 4, 9),
		expense(100, "Food", 2025, 3, 3),
		income(9000, 2025, 6, 1),
	}
	rep := Forecast(txns, refNow)
	require.True(t, rep.HasData)
	require.Len(t, rep.Predictions, 7)

	// (100 + 200 + 300 + 400) / 4 present months
	assert.True(t, rep.Average.Equal(dec(250)), "avg = %s", rep.Average)

	wantLabels := []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep"}
	wantActual := []int64{100, 200, 300, 400}
	for i, p := range rep.Predictions {
		assert.Equal(t, wantLabels[i], p.Label())
		if i < 4 {
			require.NotNil(t, p.Actual, "month %s", p.Label())
			assert.True(t, p.Actual.Equal(dec(wantActual[i])))
			assert.Nil(t, p.Predicted)
			continue
		}
		assert.Nil(t, p.Actual)
		require.NotNil(t, p.Predicted)
		assert.True(t, p.Predicted.Equal(dec(250)))
	}
}

func TestForecast_MissingMonthsAndRounding(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		expense(50, "Food", 2024, 11, 1),
		expense(50, "Food", 2024, 11, 2),
		expense(40, "Food", 2024, 12, 1),
		expense(30, "Food", 2024, 12, 2),
		expense(31, "Food", 2024, 12, 3),
	}
	rep := Forecast(txns, now)
	require.True(t, rep.HasData)

	// Oct, Nov, Dec of the previous year, then Jan with no expenses
	assert.Nil(t, rep.Predictions[0].Actual)
	assert.Equal(t, 2024, rep.Predictions[1].Year)
	assert.True(t, rep.Predictions[1].Actual.Equal(dec(100)))
	assert.True(t, rep.Predictions[2].Actual.Equal(dec(101)))
	assert.Nil(t, rep.Predictions[3].Actual)
	assert.Nil(t, rep.Predictions[3].Predicted, "current month is never predicted")

	// mean 100.5 rounds half away from zero
	for _, p := range rep.Predictions[4:] {
		assert.True(t, p.Predicted.Equal(dec(101)), "predicted = %s", p.Predicted)
	}
}

func TestForecast_WindowReachesSeventhMonthBack(t *testing.T) {
	txns := []core.Transaction{
		expense(600, "Gifts", 2024, 12, 20), // window opens 2024-12-15
		expense(999, "Gifts", 2024, 12, 10),
		expense(100, "Food", 2025, 6, 1),
		expense(100, "Food", 2025, 6, 2),
		expense(100, "Food", 2025, 5, 1),
		expense(100, "Food", 2025, 5, 2),
	}
	rep := Forecast(txns, refNow)
	require.True(t, rep.HasData)

	// Dec 600, May 200, Jun 200 over three months with expenses
	assert.True(t, rep.Average.Round(2).Equal(decimal.RequireFromString("333.33")), "avg = %s", rep.Average)
	assert.True(t, rep.Predictions[4].Predicted.Equal(dec(333)))
	assert.Nil(t, rep.Predictions[0].Actual, "March has no expenses")
	assert.True(t, rep.Predictions[3].Actual.Equal(dec(200)))
}
