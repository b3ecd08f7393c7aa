package http

import (
	"log/slog"
	"net/http"

	"github.com/AnirbanSinha27/Spendly/internal/core"
)

// loadTransactions fetches the ledger for a derived view. Read failures
// degrade to an empty ledger so dashboards render zeros instead of errors.
func (s *Server) loadTransactions(r *http.Request) []core.Transaction {
	txs, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for dashboard", "error", err)
		return nil
	}
	return txs
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)

	if summary, found := s.summaryCache.Get(month); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "month", month)
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary := core.Summarize(s.loadTransactions(r), month)
	s.summaryCache.Set(month, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)

	if rows, found := s.breakdownCache.Get(month); found {
		slog.DebugContext(r.Context(), "Breakdown cache hit", "month", month)
		writeJSON(w, http.StatusOK, rows)
		return
	}

	rows := core.BreakdownByCategory(s.loadTransactions(r), month)
	if rows == nil {
		rows = []core.CategorySpend{}
	}
	s.breakdownCache.Set(month, rows)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	series := core.ExpenseSeries(s.loadTransactions(r))
	if series == nil {
		series = []core.MonthTotal{}
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleBudgetStatuses(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)

	budgets, err := s.ledger.ListBudgets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load budgets for dashboard", "error", err)
		writeJSON(w, http.StatusOK, []core.BudgetStatus{})
		return
	}

	statuses := core.EvaluateBudgets(budgets, s.loadTransactions(r), month)
	if statuses == nil {
		statuses = []core.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleVariance(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)

	budgets, err := s.ledger.ListBudgets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load budgets for dashboard", "error", err)
		writeJSON(w, http.StatusOK, []core.BudgetVariance{})
		return
	}

	rows := core.CompareBudgets(budgets, s.loadTransactions(r), month)
	if rows == nil {
		rows = []core.BudgetVariance{}
	}
	writeJSON(w, http.StatusOK, rows)
}
