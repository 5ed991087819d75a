package http

import (
	"time"

	"github.com/shopspring/decimal"

	"finvault/internal/core"
	"finvault/internal/insights"
	"finvault/internal/report"
	"finvault/internal/tax"
)

// Amounts leave the API as plain JSON numbers and dates as YYYY-MM-DD.

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type signinResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type transactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Type        string           `json:"type"`
	Category    string           `json:"category"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
}

func (req transactionRequest) toDomain(userID, id string) (core.Transaction, error) {
	amount, err := requiredDecimal(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Type:        core.TxType(sanitizeInput(req.Type)),
		Category:    sanitizeInput(req.Category),
		Date:        date,
		Description: sanitizeInput(req.Description),
	}, nil
}

type transactionDTO struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTransactionDTO(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Amount:      num(t.Amount),
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        t.Date.String(),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type goalRequest struct {
	Name          string           `json:"name"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Deadline      string           `json:"deadline"`
}

func (req goalRequest) toDomain(userID, id string) (core.Goal, error) {
	target, err := requiredDecimal(req.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		ID:            id,
		UserID:        userID,
		Name:          sanitizeInput(req.Name),
		TargetAmount:  target,
		CurrentAmount: optionalDecimal(req.CurrentAmount),
		Deadline:      deadline,
	}, nil
}

type goalDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
	Progress      float64 `json:"progress"`
}

func newGoalDTO(g core.Goal) goalDTO {
	return goalDTO{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  num(g.TargetAmount),
		CurrentAmount: num(g.CurrentAmount),
		Deadline:      g.Deadline.String(),
		Progress:      num(g.Progress()),
	}
}

type investmentRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	PurchaseDate string           `json:"purchaseDate"`
}

func (req investmentRequest) toDomain(userID, id string) (core.Investment, error) {
	amount, err := requiredDecimal(req.Amount)
	if err != nil {
		return core.Investment{}, err
	}
	current, err := requiredDecimal(req.CurrentValue)
	if err != nil {
		return core.Investment{}, err
	}
	purchased, err := parseDate(req.PurchaseDate)
	if err != nil {
		return core.Investment{}, err
	}
	return core.Investment{
		ID:           id,
		UserID:       userID,
		Name:         sanitizeInput(req.Name),
		Type:         sanitizeInput(req.Type),
		Amount:       amount,
		CurrentValue: current,
		PurchaseDate: purchased,
	}, nil
}

type investmentDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	CurrentValue  float64 `json:"currentValue"`
	PurchaseDate  string  `json:"purchaseDate"`
	Returns       float64 `json:"returns"`
	ReturnPercent float64 `json:"returnPercent"`
}

func newInvestmentDTO(i core.Investment) investmentDTO {
	return investmentDTO{
		ID:            i.ID,
		Name:          i.Name,
		Type:          i.Type,
		Amount:        num(i.Amount),
		CurrentValue:  num(i.CurrentValue),
		PurchaseDate:  i.PurchaseDate.String(),
		Returns:       num(i.Returns()),
		ReturnPercent: num(i.ReturnPercent()),
	}
}

type deductionsJSON struct {
	Section80C       *decimal.Decimal `json:"section80C"`
	Section80D       *decimal.Decimal `json:"section80D"`
	HRA              *decimal.Decimal `json:"hra"`
	HomeLoanInterest *decimal.Decimal `json:"homeLoanInterest"`
	Other            *decimal.Decimal `json:"other"`
}

// Omitted deductions count as zero.
func (d deductionsJSON) toDomain() core.Deductions {
	return core.Deductions{
		Section80C:       optionalDecimal(d.Section80C),
		Section80D:       optionalDecimal(d.Section80D),
		HRA:              optionalDecimal(d.HRA),
		HomeLoanInterest: optionalDecimal(d.HomeLoanInterest),
		Other:            optionalDecimal(d.Other),
	}
}

type taxRequest struct {
	GrossIncome   *decimal.Decimal `json:"grossIncome"`
	Deductions    deductionsJSON   `json:"deductions"`
	FinancialYear string           `json:"financialYear"`
}

type deductionsDTO struct {
	Section80C       float64 `json:"section80C"`
	Section80D       float64 `json:"section80D"`
	HRA              float64 `json:"hra"`
	HomeLoanInterest float64 `json:"homeLoanInterest"`
	Other            float64 `json:"other"`
}

type taxProfileDTO struct {
	GrossIncome   float64       `json:"grossIncome"`
	Deductions    deductionsDTO `json:"deductions"`
	FinancialYear string        `json:"financialYear"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

func newTaxProfileDTO(p core.TaxProfile) taxProfileDTO {
	dto := taxProfileDTO{
		GrossIncome: num(p.GrossIncome),
		Deductions: deductionsDTO{
			Section80C:       num(p.Deductions.Section80C),
			Section80D:       num(p.Deductions.Section80D),
			HRA:              num(p.Deductions.HRA),
			HomeLoanInterest: num(p.Deductions.HomeLoanInterest),
			Other:            num(p.Deductions.Other),
		},
		FinancialYear: p.FinancialYear,
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		dto.UpdatedAt = &updated
	}
	return dto
}

type regimeDTO struct {
	Tax           float64 `json:"tax"`
	TaxableIncome float64 `json:"taxableIncome"`
}

type taxResultDTO struct {
	GrossIncome     float64   `json:"grossIncome"`
	TotalDeductions float64   `json:"totalDeductions"`
	OldRegime       regimeDTO `json:"oldRegime"`
	NewRegime       regimeDTO `json:"newRegime"`
	Recommendation  string    `json:"recommendation"`
	Savings         float64   `json:"savings"`
}

func newTaxResultDTO(r tax.Result) taxResultDTO {
	return taxResultDTO{
		GrossIncome:     num(r.GrossIncome),
		TotalDeductions: num(r.TotalDeductions),
		OldRegime:       regimeDTO{Tax: num(r.Old.Tax), TaxableIncome: num(r.Old.TaxableIncome)},
		NewRegime:       regimeDTO{Tax: num(r.New.Tax), TaxableIncome: num(r.New.TaxableIncome)},
		Recommendation:  string(r.Recommended),
		Savings:         num(r.Savings),
	}
}

type patternDTO struct {
	Kind         string  `json:"kind"`
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	Trend        string  `json:"trendText"`
	Amount       float64 `json:"amount"`
	Count        int     `json:"count"`
	TrendPercent float64 `json:"trendPercent"`
}

type patternsResponse struct {
	Patterns []patternDTO `json:"patterns"`
	HasData  bool         `json:"hasData"`
}

func newPatternsResponse(rep insights.PatternReport) patternsResponse {
	out := patternsResponse{Patterns: make([]patternDTO, 0, len(rep.Patterns)), HasData: rep.HasData}
	for _, p := range rep.Patterns {
		value, trend := report.PresentPattern(p)
		out.Patterns = append(out.Patterns, patternDTO{
			Kind:         string(p.Kind),
			Label:        p.Label,
			Value:        value,
			Trend:        trend,
			Amount:       num(p.Amount),
			Count:        p.Count,
			TrendPercent: num(p.TrendPercent),
		})
	}
	return out
}

type predictionDTO struct {
	Month     string   `json:"month"`
	Year      int      `json:"year"`
	Actual    *float64 `json:"actual"`
	Predicted *float64 `json:"predicted"`
}

type predictionsResponse struct {
	Predictions []predictionDTO `json:"predictions"`
	HasData     bool            `json:"hasData"`
}

func optionalNum(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := num(*d)
	return &v
}

func newPredictionsResponse(rep insights.ForecastReport) predictionsResponse {
	out := predictionsResponse{Predictions: make([]predictionDTO, 0, len(rep.Predictions)), HasData: rep.HasData}
	for _, p := range rep.Predictions {
		out.Predictions = append(out.Predictions, predictionDTO{
			Month:     p.Label(),
			Year:      p.Year,
			Actual:    optionalNum(p.Actual),
			Predicted: optionalNum(p.Predicted),
		})
	}
	return out
}

type recommendationDTO struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type recommendationsResponse struct {
	Recommendations []recommendationDTO `json:"recommendations"`
	HasData         bool                `json:"hasData"`
}

func newRecommendationsResponse(rep insights.RecommendationReport) recommendationsResponse {
	out := recommendationsResponse{Recommendations: make([]recommendationDTO, 0, len(rep.Recommendations)), HasData: rep.HasData}
	for _, r := range rep.Recommendations {
		out.Recommendations = append(out.Recommendations, recommendationDTO{
			Kind:        string(r.Kind),
			Title:       r.Title,
			Description: r.Description,
			Severity:    string(r.Severity),
		})
	}
	return out
}

type overviewResponse struct {
	Patterns        patternsResponse        `json:"patterns"`
	Predictions     predictionsResponse     `json:"predictions"`
	Recommendations recommendationsResponse `json:"recommendations"`
}
