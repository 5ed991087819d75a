package insights

import (
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

const (
	ForecastWindowMonths = 6
	// ForecastMinExpenses is the number of expenses in the window below
	// which no forecast is produced.
	ForecastMinExpenses = 5
	forecastSpan        = 3
)

// Prediction is one month of the forecast. For past months only Actual can be
// set, for future months only Predicted; the current month never has a
// prediction.
type Prediction struct {
	MonthKey
	Actual    *decimal.Decimal
	Predicted *decimal.Decimal
}

type ForecastReport struct {
	Predictions []Prediction
	Average     decimal.Decimal
	HasData     bool
}

// Forecast projects a flat average of past monthly expense totals three
// months ahead. The average only counts months that have expenses.
func Forecast(txns []core.Transaction, now time.Time) ForecastReport {
	s := Summarize(txns, LastMonths(now, ForecastWindowMonths))
	if s.ExpenseCount < ForecastMinExpenses {
		return ForecastReport{Predictions: []Prediction{}}
	}

	// One bucket more than the window: a naive six month lookback can start
	// part way through the seventh month back.
	buckets := MonthlyBuckets(s.Transactions, now, ForecastWindowMonths+1)
	sum, months := decimal.Zero, 0
	for _, b := range buckets {
		if b.Totals.Expense.IsPositive() {
			sum = sum.Add(b.Totals.Expense)
			months++
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(months)))
	predicted := avg.Round(0)

	// The last bucket is the current month.
	last := len(buckets) - 1
	out := make([]Prediction, 0, 2*forecastSpan+1)
	for i := -forecastSpan; i <= forecastSpan; i++ {
		if i <= 0 {
			b := buckets[last+i]
			p := Prediction{MonthKey: b.MonthKey}
			if b.Totals.Expense.IsPositive() {
				v := b.Totals.Expense
				p.Actual = &v
			}
			out = append(out, p)
			continue
		}
		v := predicted
		out = append(out, Prediction{MonthKey: buckets[last].addMonths(i), Predicted: &v})
	}

	return ForecastReport{Predictions: out, Average: avg, HasData: true}
}
