package storage

import (
	"context"
	"fmt"

	"finvault/internal/core"
)

// GetTaxProfile returns core.ErrNotFound when the user has no profile for
// that financial year.
func (r *SQLiteRepository) GetTaxProfile(ctx context.Context, userID, financialYear string) (core.TaxProfile, error) {
	p := core.TaxProfile{UserID: userID, FinancialYear: financialYear}
	var updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT gross_income, section_80c, section_80d, hra, home_loan_interest, other, updated_at
		   FROM tax_profiles WHERE user_id = ? AND financial_year = ?`,
		userID, financialYear,
	).Scan(&p.GrossIncome, &p.Deductions.Section80C, &p.Deductions.Section80D,
		&p.Deductions.HRA, &p.Deductions.HomeLoanInterest, &p.Deductions.Other, &updated)
	if err != nil {
		return core.TaxProfile{}, notFound(err, "tax profile")
	}
	p.UpdatedAt = parseTimestamp(updated)
	return p, nil
}

// UpsertTaxProfile inserts or replaces the (user, financial year) profile.
func (r *SQLiteRepository) UpsertTaxProfile(ctx context.Context, p core.TaxProfile) (core.TaxProfile, error) {
	now := r.timestamp()
	d := p.Deductions
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tax_profiles (user_id, financial_year, gross_income, section_80c, section_80d, hra, home_loan_interest, other, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, financial_year) DO UPDATE SET
		     gross_income = excluded.gross_income,
		     section_80c = excluded.section_80c,
		     section_80d = excluded.section_80d,
		     hra = excluded.hra,
		     home_loan_interest = excluded.home_loan_interest,
		     other = excluded.other,
		     updated_at = excluded.updated_at`,
		p.UserID, p.FinancialYear, p.GrossIncome, d.Section80C, d.Section80D, d.HRA, d.HomeLoanInterest, d.Other, now)
	if err != nil {
		return core.TaxProfile{}, fmt.Errorf("upsert tax profile: %w", err)
	}
	p.UpdatedAt = parseTimestamp(now)
	return p, nil
}
