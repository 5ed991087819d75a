package http

import (
	"net/http"

	"finvault/internal/core"
)

const taxProfileNotFound = "Tax data not found"

func (s *Server) handleGetTaxData(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Tax.Get(r.Context(), userIDFrom(r.Context()), financialYear(r))
	if err != nil {
		writeError(w, r, err, taxProfileNotFound)
		return
	}
	NewJSONResponse().Body(newTaxProfileDTO(p)).Write(w)
}

func (s *Server) handlePutTaxData(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	saved, err := s.deps.Tax.Put(r.Context(), core.TaxProfile{
		UserID:        userIDFrom(r.Context()),
		GrossIncome:   optionalDecimal(req.GrossIncome),
		Deductions:    req.Deductions.toDomain(),
		FinancialYear: sanitizeInput(req.FinancialYear),
	})
	if err != nil {
		writeError(w, r, err, taxProfileNotFound)
		return
	}
	NewJSONResponse().Body(newTaxProfileDTO(saved)).Write(w)
}

func (s *Server) handleCalculateTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	gross, err := requiredDecimal(req.GrossIncome)
	if err != nil {
		BadRequestError("grossIncome is required").Write(w)
		return
	}

	res, err := s.deps.Tax.Calculate(gross, req.Deductions.toDomain())
	if err != nil {
		writeError(w, r, err, taxProfileNotFound)
		return
	}
	NewJSONResponse().Body(newTaxResultDTO(res)).Write(w)
}

func (s *Server) handleCalculateStoredTax(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Tax.CalculateStored(r.Context(), userIDFrom(r.Context()), financialYear(r))
	if err != nil {
		writeError(w, r, err, taxProfileNotFound)
		return
	}
	NewJSONResponse().Body(newTaxResultDTO(res)).Write(w)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	rep, err := s.deps.Insights.Patterns(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	NewJSONResponse().Body(newPatternsResponse(rep)).Write(w)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	rep, err := s.deps.Insights.Predictions(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	NewJSONResponse().Body(newPredictionsResponse(rep)).Write(w)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	rep, err := s.deps.Insights.Recommendations(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	NewJSONResponse().Body(newRecommendationsResponse(rep)).Write(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.deps.Insights.Overview(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	NewJSONResponse().Body(overviewResponse{
		Patterns:        newPatternsResponse(ov.Patterns),
		Predictions:     newPredictionsResponse(ov.Predictions),
		Recommendations: newRecommendationsResponse(ov.Recommendations),
	}).Write(w)
}
