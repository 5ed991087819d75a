package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"finvault/internal/core"
	"finvault/internal/tax"
)

// TaxService stores tax profiles and runs the regime comparison.
type TaxService struct {
	store TaxStore
}

func NewTaxService(store TaxStore) *TaxService {
	return &TaxService{store: store}
}

func normalizeYear(fy string) string {
	if fy = strings.TrimSpace(fy); fy == "" {
		return core.DefaultFinancialYear
	}
	return fy
}

// Get returns the stored profile or a zero profile when none exists.
func (s *TaxService) Get(ctx context.Context, userID, financialYear string) (core.TaxProfile, error) {
	fy := normalizeYear(financialYear)
	p, err := s.store.GetTaxProfile(ctx, userID, fy)
	if errors.Is(err, core.ErrNotFound) {
		return core.NewTaxProfile(userID, fy), nil
	}
	if err != nil {
		return core.TaxProfile{}, fmt.Errorf("get tax profile: %w", err)
	}
	return p, nil
}

func (s *TaxService) Put(ctx context.Context, p core.TaxProfile) (core.TaxProfile, error) {
	p.FinancialYear = normalizeYear(p.FinancialYear)
	if err := p.Validate(); err != nil {
		return core.TaxProfile{}, err
	}
	saved, err := s.store.UpsertTaxProfile(ctx, p)
	if err != nil {
		return core.TaxProfile{}, fmt.Errorf("save tax profile: %w", err)
	}
	slog.InfoContext(ctx, "Tax profile saved", "component", "tax", "user_id", p.UserID, "financial_year", p.FinancialYear)
	return saved, nil
}

// Calculate compares both regimes for ad hoc figures.
func (s *TaxService) Calculate(gross decimal.Decimal, d core.Deductions) (tax.Result, error) {
	return tax.Compute(gross, d)
}

// CalculateStored compares both regimes for the stored profile.
func (s *TaxService) CalculateStored(ctx context.Context, userID, financialYear string) (tax.Result, error) {
	p, err := s.Get(ctx, userID, financialYear)
	if err != nil {
		return tax.Result{}, err
	}
	return tax.ComputeProfile(p)
}
