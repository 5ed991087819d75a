package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

const (
	transactionNotFound = "Transaction not found"
	goalNotFound        = "Goal not found"
	investmentNotFound  = "Investment not found"
)

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func deleted(w http.ResponseWriter, what string) {
	NewJSONResponse().Message(what + " deleted successfully").Write(w)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.deps.Ledger.ListTransactions(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}
	out := make([]transactionDTO, 0, len(txns))
	for _, t := range txns {
		out = append(out, newTransactionDTO(t))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	t, err := req.toDomain(userIDFrom(r.Context()), "")
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	created, err := s.deps.Ledger.CreateTransaction(r.Context(), t)
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(newTransactionDTO(created)).Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	t, err := req.toDomain(userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	updated, err := s.deps.Ledger.UpdateTransaction(r.Context(), t)
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}
	NewJSONResponse().Body(newTransactionDTO(updated)).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Ledger.DeleteTransaction(r.Context(), userIDFrom(r.Context()), pathID(r)); err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}
	deleted(w, "Transaction")
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.deps.Ledger.ListGoals(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}
	out := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		out = append(out, newGoalDTO(g))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	g, err := req.toDomain(userIDFrom(r.Context()), "")
	if err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}

	created, err := s.deps.Ledger.CreateGoal(r.Context(), g)
	if err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(newGoalDTO(created)).Write(w)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	g, err := req.toDomain(userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}

	updated, err := s.deps.Ledger.UpdateGoal(r.Context(), g)
	if err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}
	NewJSONResponse().Body(newGoalDTO(updated)).Write(w)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Ledger.DeleteGoal(r.Context(), userIDFrom(r.Context()), pathID(r)); err != nil {
		writeError(w, r, err, goalNotFound)
		return
	}
	deleted(w, "Goal")
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	invs, err := s.deps.Ledger.ListInvestments(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}
	out := make([]investmentDTO, 0, len(invs))
	for _, i := range invs {
		out = append(out, newInvestmentDTO(i))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	inv, err := req.toDomain(userIDFrom(r.Context()), "")
	if err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}

	created, err := s.deps.Ledger.CreateInvestment(r.Context(), inv)
	if err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(newInvestmentDTO(created)).Write(w)
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	inv, err := req.toDomain(userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}

	updated, err := s.deps.Ledger.UpdateInvestment(r.Context(), inv)
	if err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}
	NewJSONResponse().Body(newInvestmentDTO(updated)).Write(w)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Ledger.DeleteInvestment(r.Context(), userIDFrom(r.Context()), pathID(r)); err != nil {
		writeError(w, r, err, investmentNotFound)
		return
	}
	deleted(w, "Investment")
}
