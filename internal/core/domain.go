package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// DefaultFinancialYear is used when a tax profile request names no year.
const DefaultFinancialYear = "2025-26"

const dateLayout = "2006-01-02"

type (
	TxType string

	// Date is a calendar date stored at midnight UTC.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string
		UserID      string
		Amount      decimal.Decimal
		Type        TxType
		Category    string
		Date        Date
		Description string // optional
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Deductions struct {
		Section80C       decimal.Decimal
		Section80D       decimal.Decimal
		HRA              decimal.Decimal
		HomeLoanInterest decimal.Decimal
		Other            decimal.Decimal
	}

	// TaxProfile is unique per (UserID, FinancialYear).
	TaxProfile struct {
		UserID        string
		GrossIncome   decimal.Decimal
		Deductions    Deductions
		FinancialYear string
		UpdatedAt     time.Time
	}

	Goal struct {
		ID            string
		UserID        string
		Name          string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
		Deadline      Date
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	Investment struct {
		ID           string
		UserID       string
		Name         string
		Type         string
		Amount       decimal.Decimal
		CurrentValue decimal.Decimal
		PurchaseDate Date
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	User struct {
		ID           string
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidType        = errors.New("type must be income or expense")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyName          = errors.New("empty name")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")

	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

func (d Deductions) Validate() error {
	for _, v := range []decimal.Decimal{d.Section80C, d.Section80D, d.HRA, d.HomeLoanInterest, d.Other} {
		if v.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

func (p TaxProfile) Validate() error {
	if p.GrossIncome.IsNegative() {
		return ErrNegativeAmount
	}
	return p.Deductions.Validate()
}

// NewTaxProfile returns the zero profile served when nothing is stored yet.
func NewTaxProfile(userID, financialYear string) TaxProfile {
	if financialYear == "" {
		financialYear = DefaultFinancialYear
	}
	return TaxProfile{UserID: userID, FinancialYear: financialYear}
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return g.Deadline.Validate()
}

// Progress is CurrentAmount as a percentage of TargetAmount.
func (g Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.Type) == "" {
		return ErrEmptyCategory
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if i.CurrentValue.IsNegative() {
		return ErrNegativeAmount
	}
	return i.PurchaseDate.Validate()
}

func (i Investment) Returns() decimal.Decimal {
	return i.CurrentValue.Sub(i.Amount)
}

func (i Investment) ReturnPercent() decimal.Decimal {
	if i.Amount.IsZero() {
		return decimal.Zero
	}
	return i.Returns().Div(i.Amount).Mul(decimal.NewFromInt(100)).Round(2)
}
