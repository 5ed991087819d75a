// Package tax compares annual income tax under the old (deduction based) and
// new (flat slab) regimes.
package tax

import (
	"fmt"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

// Regime names one of the two tax computation schemes.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

var (
	half              = decimal.RequireFromString("0.5")
	standardDeduction = decimal.NewFromInt(50000)
	cess              = decimal.RequireFromString("1.04")

	cap80C      = decimal.NewFromInt(150000)
	cap80D      = decimal.NewFromInt(50000)
	capHomeLoan = decimal.NewFromInt(200000)
)

// slab taxes the portion of income above threshold at rate, on top of base
// (the cumulative tax of all lower slabs).
type slab struct {
	threshold decimal.Decimal
	base      decimal.Decimal
	rate      decimal.Decimal
}

func newSlab(threshold, base int64, rate string) slab {
	return slab{
		threshold: decimal.NewFromInt(threshold),
		base:      decimal.NewFromInt(base),
		rate:      decimal.RequireFromString(rate),
	}
}

var (
	oldSlabs = []slab{
		newSlab(250000, 0, "0.05"),
		newSlab(500000, 12500, "0.20"),
		newSlab(1000000, 112500, "0.30"),
	}
	newSlabs = []slab{
		newSlab(300000, 0, "0.05"),
		newSlab(600000, 15000, "0.10"),
		newSlab(900000, 45000, "0.15"),
		newSlab(1200000, 90000, "0.20"),
		newSlab(1500000, 150000, "0.30"),
	}
)

// RegimeResult is the outcome under a single regime.
type RegimeResult struct {
	Tax           decimal.Decimal // rounded to whole units, cess included
	TaxableIncome decimal.Decimal
}

// Result compares both regimes for one income and set of deductions.
// Savings is what the recommended regime saves over the other one.
type Result struct {
	GrossIncome     decimal.Decimal
	TotalDeductions decimal.Decimal
	Old             RegimeResult
	New             RegimeResult
	Recommended     Regime
	Savings         decimal.Decimal
}

// Compute evaluates both regimes. Negative income or deductions are rejected
// with core.ErrNegativeAmount; nothing is clamped.
func Compute(grossIncome decimal.Decimal, d core.Deductions) (Result, error) {
	if grossIncome.IsNegative() {
		return Result{}, fmt.Errorf("gross income: %w", core.ErrNegativeAmount)
	}
	if err := d.Validate(); err != nil {
		return Result{}, fmt.Errorf("deductions: %w", err)
	}

	total := TotalDeductions(d)
	oldTaxable := taxable(grossIncome.Sub(total))
	newTaxable := taxable(grossIncome)

	oldTax := slabTax(oldTaxable, oldSlabs).Mul(cess)
	newTax := slabTax(newTaxable, newSlabs).Mul(cess)

	recommended := RegimeNew
	if oldTax.LessThan(newTax) {
		recommended = RegimeOld
	}

	return Result{
		GrossIncome:     grossIncome,
		TotalDeductions: total,
		Old:             RegimeResult{Tax: oldTax.Round(0), TaxableIncome: oldTaxable},
		New:             RegimeResult{Tax: newTax.Round(0), TaxableIncome: newTaxable},
		Recommended:     recommended,
		Savings:         savings(oldTax, newTax),
	}, nil
}

// ComputeProfile is Compute over a stored profile.
func ComputeProfile(p core.TaxProfile) (Result, error) {
	return Compute(p.GrossIncome, p.Deductions)
}

// TotalDeductions applies the 80C, 80D and home loan caps. HRA and other
// deductions are uncapped.
func TotalDeductions(d core.Deductions) decimal.Decimal {
	return decimal.Min(d.Section80C, cap80C).
		Add(decimal.Min(d.Section80D, cap80D)).
		Add(d.HRA).
		Add(decimal.Min(d.HomeLoanInterest, capHomeLoan)).
		Add(d.Other)
}

// savings rounds the signed difference half up before taking its magnitude,
// so a tie at -x.5 rounds towards zero.
func savings(oldTax, newTax decimal.Decimal) decimal.Decimal {
	return oldTax.Sub(newTax).Add(half).Floor().Abs()
}

func taxable(income decimal.Decimal) decimal.Decimal {
	return decimal.Max(income.Sub(standardDeduction), decimal.Zero)
}

func slabTax(income decimal.Decimal, slabs []slab) decimal.Decimal {
	for i := len(slabs) - 1; i >= 0; i-- {
		s := slabs[i]
		if income.GreaterThan(s.threshold) {
			return s.base.Add(income.Sub(s.threshold).Mul(s.rate))
		}
	}
	return decimal.Zero
}
