package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finvault/internal/insights"
)

func TestPresentPattern(t *testing.T) {
	tests := []struct {
		name      string
		pattern   insights.Pattern
		wantValue string
		wantTrend string
	}{
		{
			name:      "top category",
			pattern:   insights.Pattern{Kind: insights.PatternTopCategory, Name: "Rent", Amount: decimal.RequireFromString("1234567.5")},
			wantValue: "Rent",
			wantTrend: "₹1,234,567.5",
		},
		{
			name:      "top category missing",
			pattern:   insights.Pattern{Kind: insights.PatternTopCategory},
			wantValue: "N/A",
			wantTrend: "₹0",
		},
		{
			name:      "average rounds to whole rupees",
			pattern:   insights.Pattern{Kind: insights.PatternAverageMonthly, Amount: decimal.RequireFromString("2500.6"), TrendPercent: decimal.RequireFromString("-12.34"), HasTrend: true},
			wantValue: "₹2,501",
			wantTrend: "-12.3% vs last month",
		},
		{
			name:      "average without a previous month",
			pattern:   insights.Pattern{Kind: insights.PatternAverageMonthly, Amount: decimal.NewFromInt(1000)},
			wantValue: "₹1,000",
			wantTrend: "0% vs last month",
		},
		{
			name:      "flat trend keeps its decimal",
			pattern:   insights.Pattern{Kind: insights.PatternAverageMonthly, Amount: decimal.NewFromInt(1000), HasTrend: true},
			wantValue: "₹1,000",
			wantTrend: "0.0% vs last month",
		},
		{
			name:      "peak day missing",
			pattern:   insights.Pattern{Kind: insights.PatternPeakDay},
			wantValue: "N/A",
			wantTrend: "0",
		},
		{
			name:      "peak day",
			pattern:   insights.Pattern{Kind: insights.PatternPeakDay, Name: "Friday", Count: 7},
			wantValue: "Friday",
			wantTrend: "7 transactions",
		},
		{
			name:      "total",
			pattern:   insights.Pattern{Kind: insights.PatternTotalExpenses, Amount: decimal.NewFromInt(42000), Months: 3},
			wantValue: "₹42,000",
			wantTrend: "Last 3 months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, trend := PresentPattern(tt.pattern)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantTrend, trend)
		})
	}
}
