package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/AnirbanSinha27/Spendly/internal/core"
)

// handleListBudgets returns every budget, month descending then category
// ascending. Read failures degrade to an empty list.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.ledger.ListBudgets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list budgets", "error", err)
		writeJSON(w, http.StatusOK, []core.Budget{})
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

type setBudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Month    string          `json:"month"`
}

// handleSetBudget creates or replaces the budget for (category, month).
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.ledger.SetBudget(r.Context(), req.Category, req.Limit, req.Month)
	if err != nil {
		if isValidationErr(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to set budget", "error", err, "category", req.Category, "month", req.Month)
		writeError(w, http.StatusServiceUnavailable, "failed to save budget")
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, saved)
}
