package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
)

// handleListTransactions returns the full collection, newest first. An
// optional q parameter filters by description substring. Read failures
// degrade to an empty list so the client keeps rendering.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeJSON(w, http.StatusOK, []core.Transaction{})
		return
	}

	txs = core.FilterByDescription(txs, r.URL.Query().Get("q"))
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), t)
	if err != nil {
		if isValidationErr(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to create transaction", "error", err)
		writeError(w, http.StatusServiceUnavailable, "failed to save transaction")
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var t core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.ledger.UpdateTransaction(r.Context(), id, t)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "transaction not found")
		case isValidationErr(err):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Failed to update transaction", "error", err, "id", id)
			writeError(w, http.StatusServiceUnavailable, "failed to save transaction")
		}
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "id", id)
		writeError(w, http.StatusServiceUnavailable, "failed to delete transaction")
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
