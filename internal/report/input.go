// Package report loads offline CLI inputs and renders engine results as
// console tables and PDF documents.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"finvault/internal/core"
)

// DeductionsInput mirrors core.Deductions in file form.
type DeductionsInput struct {
	Section80C       float64 `json:"section80C" yaml:"section80C" toml:"section80C"`
	Section80D       float64 `json:"section80D" yaml:"section80D" toml:"section80D"`
	HRA              float64 `json:"hra" yaml:"hra" toml:"hra"`
	HomeLoanInterest float64 `json:"homeLoanInterest" yaml:"homeLoanInterest" toml:"homeLoanInterest"`
	Other            float64 `json:"other" yaml:"other" toml:"other"`
}

type TaxInput struct {
	Name          string          `json:"name" yaml:"name" toml:"name"`
	FinancialYear string          `json:"financialYear" yaml:"financialYear" toml:"financialYear"`
	GrossIncome   float64         `json:"grossIncome" yaml:"grossIncome" toml:"grossIncome"`
	Deductions    DeductionsInput `json:"deductions" yaml:"deductions" toml:"deductions"`
}

// Profile converts the input into a tax profile.
func (in TaxInput) Profile() core.TaxProfile {
	p := core.NewTaxProfile("", in.FinancialYear)
	p.GrossIncome = decimal.NewFromFloat(in.GrossIncome)
	p.Deductions = core.Deductions{
		Section80C:       decimal.NewFromFloat(in.Deductions.Section80C),
		Section80D:       decimal.NewFromFloat(in.Deductions.Section80D),
		HRA:              decimal.NewFromFloat(in.Deductions.HRA),
		HomeLoanInterest: decimal.NewFromFloat(in.Deductions.HomeLoanInterest),
		Other:            decimal.NewFromFloat(in.Deductions.Other),
	}
	return p
}

// TransactionInput is one ledger row. Dates are quoted YYYY-MM-DD strings in
// every format, including TOML.
type TransactionInput struct {
	Amount      float64 `json:"amount" yaml:"amount" toml:"amount"`
	Type        string  `json:"type" yaml:"type" toml:"type"`
	Category    string  `json:"category" yaml:"category" toml:"category"`
	Date        string  `json:"date" yaml:"date" toml:"date"`
	Description string  `json:"description" yaml:"description" toml:"description"`
}

type LedgerInput struct {
	Transactions []TransactionInput `json:"transactions" yaml:"transactions" toml:"transactions"`
}

// Ledger validates and converts every row, naming the first bad one.
func (in LedgerInput) Ledger() ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(in.Transactions))
	for i, row := range in.Transactions {
		d, err := core.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		t := core.Transaction{
			ID:          fmt.Sprintf("row-%d", i+1),
			Amount:      decimal.NewFromFloat(row.Amount),
			Type:        core.TxType(strings.ToLower(strings.TrimSpace(row.Type))),
			Category:    strings.TrimSpace(row.Category),
			Date:        d,
			Description: row.Description,
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadTaxInput reads a TOML, YAML or JSON tax profile.
func LoadTaxInput(path string) (TaxInput, error) {
	var in TaxInput
	if err := loadFile(path, &in); err != nil {
		return TaxInput{}, err
	}
	return in, nil
}

// LoadLedgerInput reads a TOML, YAML or JSON transaction list.
func LoadLedgerInput(path string) (LedgerInput, error) {
	var in LedgerInput
	if err := loadFile(path, &in); err != nil {
		return LedgerInput{}, err
	}
	return in, nil
}

func loadFile(path string, dst any) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported input file format: %s", ext)
	}
	return nil
}
