package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// PeriodTotals sums income and expense over some window.
type PeriodTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (p PeriodTotals) Net() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}

// SavingsRate is (income - expense) / income * 100. ok is false when there is
// no income to divide by.
func (p PeriodTotals) SavingsRate() (rate decimal.Decimal, ok bool) {
	if !p.Income.IsPositive() {
		return decimal.Zero, false
	}
	return p.Net().Div(p.Income).Mul(decimal.NewFromInt(100)), true
}

// Add folds one transaction into the totals.
func (p PeriodTotals) Add(t Transaction) PeriodTotals {
	switch t.Type {
	case Income:
		p.Income = p.Income.Add(t.Amount)
	case Expense:
		p.Expense = p.Expense.Add(t.Amount)
	}
	return p
}
