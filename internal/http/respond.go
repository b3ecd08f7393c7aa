package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AnirbanSinha27/Spendly/internal/core"
)

// writeJSON serializes v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isValidationErr reports whether err is one of the domain validation
// failures that map to 422.
func isValidationErr(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount,
		core.ErrDescriptionLong,
		core.ErrInvalidLimit,
		core.ErrInvalidDate,
		core.ErrInvalidMonth,
		core.ErrInvalidType,
		core.ErrEmptyDescription,
		core.ErrEmptyCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// parseMonth returns the requested month key, falling back to the current
// month when the parameter is absent or malformed.
func parseMonth(r *http.Request) string {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month != "" {
		if err := core.ValidateMonth(month); err == nil {
			return month
		}
		slog.WarnContext(r.Context(), "Invalid month parameter", "month", month)
	}
	return time.Now().Format("2006-01")
}
