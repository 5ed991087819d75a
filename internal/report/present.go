package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"finvault/internal/insights"
)

const currencySymbol = "₹"

var printer = message.NewPrinter(language.English)

// Rupees formats an amount with thousands grouping and up to two decimals.
func Rupees(d decimal.Decimal) string {
	return formatRupees(d, 2)
}

func formatRupees(d decimal.Decimal, maxFraction int) string {
	return currencySymbol + printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(maxFraction)))
}

// TrendText is the month-over-month line of the average pattern. Without a
// previous month to compare against it reads "0% vs last month".
func TrendText(p insights.Pattern) string {
	if !p.HasTrend {
		return "0% vs last month"
	}
	return fmt.Sprintf("%.1f%% vs last month", p.TrendPercent.InexactFloat64())
}

// PresentPattern renders the display value and trend line of a pattern.
// Missing names render as "N/A".
func PresentPattern(p insights.Pattern) (value, trend string) {
	switch p.Kind {
	case insights.PatternTopCategory:
		if p.Name == "" {
			return "N/A", currencySymbol + "0"
		}
		return p.Name, Rupees(p.Amount)
	case insights.PatternAverageMonthly:
		return formatRupees(p.Amount.Round(0), 0), TrendText(p)
	case insights.PatternPeakDay:
		if p.Name == "" {
			return "N/A", "0"
		}
		return p.Name, fmt.Sprintf("%d transactions", p.Count)
	case insights.PatternTotalExpenses:
		return Rupees(p.Amount), fmt.Sprintf("Last %d months", p.Months)
	default:
		return Rupees(p.Amount), ""
	}
}
