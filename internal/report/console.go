package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"finvault/internal/core"
	"finvault/internal/insights"
	"finvault/internal/tax"
)

// Console renders engine results as boxed tables.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func renderTable(data pterm.TableData) string {
	s, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Sprintf("render table: %v\n", err)
	}
	return s
}

func (c *Console) section(title, body string) {
	fmt.Fprintln(c.out, pterm.DefaultBox.WithTitle(title).Sprint(body))
}

// TaxTable is the regime comparison as a table string.
func TaxTable(res tax.Result) string {
	mark := func(r tax.Regime) string {
		if res.Recommended == r {
			return "recommended"
		}
		return ""
	}
	return renderTable(pterm.TableData{
		{"Regime", "Taxable income", "Tax (incl. cess)", ""},
		{"Old", Rupees(res.Old.TaxableIncome), Rupees(res.Old.Tax), mark(tax.RegimeOld)},
		{"New", Rupees(res.New.TaxableIncome), Rupees(res.New.Tax), mark(tax.RegimeNew)},
	})
}

func (c *Console) PrintTax(title string, res tax.Result) {
	summary := fmt.Sprintf("Gross income: %s\nDeductions (capped): %s\nYou save %s with the %s regime.\n\n",
		Rupees(res.GrossIncome), Rupees(res.TotalDeductions), Rupees(res.Savings), res.Recommended)
	c.section(title, summary+TaxTable(res))
}

func PatternsTable(rep insights.PatternReport) string {
	data := pterm.TableData{{"Pattern", "Value", "Trend"}}
	for _, p := range rep.Patterns {
		value, trend := PresentPattern(p)
		data = append(data, []string{p.Label, value, trend})
	}
	return renderTable(data)
}

// CategoriesTable lists expense categories, largest first, with their share
// of total.
func CategoriesTable(cats []core.CategoryAmount, total decimal.Decimal) string {
	data := pterm.TableData{{"Category", "Spent", "Share"}}
	for _, c := range cats {
		share := "-"
		if total.IsPositive() {
			share = c.Amount.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		data = append(data, []string{c.Name, Rupees(c.Amount), share})
	}
	return renderTable(data)
}

// PrintCategories prints the category breakdown of s. Nothing is printed
// when s has no expenses.
func (c *Console) PrintCategories(s insights.Summary) {
	if len(s.Categories) == 0 {
		return
	}
	c.section("Spending by category", CategoriesTable(s.RankedCategories(), s.Totals.Expense))
}

func ForecastTable(rep insights.ForecastReport) string {
	data := pterm.TableData{{"Month", "Actual", "Predicted"}}
	for _, p := range rep.Predictions {
		actual, predicted := "-", "-"
		if p.Actual != nil {
			actual = Rupees(*p.Actual)
		}
		if p.Predicted != nil {
			predicted = Rupees(*p.Predicted)
		}
		data = append(data, []string{fmt.Sprintf("%s %d", p.Label(), p.Year), actual, predicted})
	}
	return renderTable(data)
}

func RecommendationsTable(rep insights.RecommendationReport) string {
	data := pterm.TableData{{"Severity", "Title", "Description"}}
	for _, r := range rep.Recommendations {
		data = append(data, []string{strings.ToUpper(string(r.Severity)), r.Title, r.Description})
	}
	return renderTable(data)
}

// PrintInsights prints the three analyses, or a note where data is missing.
func (c *Console) PrintInsights(p insights.PatternReport, f insights.ForecastReport, r insights.RecommendationReport) {
	if !p.HasData {
		c.section("Spending patterns", "Not enough data in the last 6 months.")
	} else {
		c.section("Spending patterns", PatternsTable(p))
	}
	if !f.HasData {
		c.section("Forecast", fmt.Sprintf("At least %d expenses are needed for a forecast.", insights.ForecastMinExpenses))
	} else {
		c.section("Forecast", ForecastTable(f))
	}
	if !r.HasData {
		c.section("Recommendations", "No transactions in the last 3 months.")
	} else {
		c.section("Recommendations", RecommendationsTable(r))
	}
}
