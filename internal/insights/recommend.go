package insights

import (
	"fmt"
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

const RecommendationWindowMonths = 3

var (
	lowSavingsRate     = decimal.NewFromInt(20)
	categoryShareLimit = decimal.NewFromInt(40)
	spikeRatio         = decimal.RequireFromString("1.3")
	hundred            = decimal.NewFromInt(100)
)

type Kind string

const (
	KindAlert Kind = "alert"
	KindTip   Kind = "tip"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Recommendation is a qualitative hint. Value holds the percentage the rule
// fired on, zero for the fallback tip.
type Recommendation struct {
	Kind        Kind
	Title       string
	Description string
	Severity    Severity
	Value       decimal.Decimal
}

type RecommendationReport struct {
	Recommendations []Recommendation
	HasData         bool
}

// Recommend evaluates the threshold rules over the trailing three months, in
// fixed order: savings rate, dominant category, spending spike, and a
// fallback tip when fewer than two of those fired.
func Recommend(txns []core.Transaction, now time.Time) RecommendationReport {
	s := Summarize(txns, LastMonths(now, RecommendationWindowMonths))
	if s.Empty() {
		return RecommendationReport{Recommendations: []Recommendation{}}
	}

	var out []Recommendation
	if r, ok := savingsRule(s); ok {
		out = append(out, r)
	}
	if r, ok := categoryRule(s); ok {
		out = append(out, r)
	}
	if r, ok := spikeRule(s.Transactions, now); ok {
		out = append(out, r)
	}
	if len(out) < 2 {
		out = append(out, Recommendation{
			Kind:        KindTip,
			Title:       "Track Regularly",
			Description: "Keep adding transactions to get more personalized insights and better predictions.",
			Severity:    SeverityInfo,
		})
	}
	return RecommendationReport{Recommendations: out, HasData: true}
}

func savingsRule(s Summary) (Recommendation, bool) {
	rate, ok := s.Totals.SavingsRate()
	if !ok {
		return Recommendation{}, false
	}
	if rate.LessThan(lowSavingsRate) {
		return Recommendation{
			Kind:        KindAlert,
			Title:       "Low Savings Rate",
			Description: fmt.Sprintf("You're saving %s%% of your income. Aim for at least 20%% to build financial security.", rate.StringFixed(1)),
			Severity:    SeverityWarning,
			Value:       rate.Round(1),
		}, true
	}
	return Recommendation{
		Kind:        KindTip,
		Title:       "Great Savings!",
		Description: fmt.Sprintf("You're saving %s%% of your income. Keep up the good work!", rate.StringFixed(1)),
		Severity:    SeveritySuccess,
		Value:       rate.Round(1),
	}, true
}

func categoryRule(s Summary) (Recommendation, bool) {
	if !s.Totals.Expense.IsPositive() {
		return Recommendation{}, false
	}
	top, ok := s.TopCategory()
	if !ok {
		return Recommendation{}, false
	}
	share := top.Amount.Div(s.Totals.Expense).Mul(hundred)
	if !share.GreaterThan(categoryShareLimit) {
		return Recommendation{}, false
	}
	return Recommendation{
		Kind:        KindAlert,
		Title:       fmt.Sprintf("High %s Spending", top.Name),
		Description: fmt.Sprintf("%s accounts for %s%% of your expenses. Consider ways to reduce this category.", top.Name, share.StringFixed(0)),
		Severity:    SeverityCritical,
		Value:       share.Round(1),
	}, true
}

func spikeRule(txns []core.Transaction, now time.Time) (Recommendation, bool) {
	_, recent, previous := TrendPercent(txns, now)
	if !previous.IsPositive() || !recent.GreaterThan(previous.Mul(spikeRatio)) {
		return Recommendation{}, false
	}
	increase := recent.Sub(previous).Div(previous).Mul(hundred)
	return Recommendation{
		Kind:        KindAlert,
		Title:       "Spending Spike Detected",
		Description: fmt.Sprintf("Your spending increased by %s%% this month. Review your recent expenses.", increase.StringFixed(0)),
		Severity:    SeverityWarning,
		Value:       increase.Round(1),
	}, true
}
