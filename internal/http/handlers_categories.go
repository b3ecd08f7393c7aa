package http

import (
	"net/http"

	"github.com/AnirbanSinha27/Spendly/internal/core"
)

// handleListCategories exposes the fixed category registry for form widgets.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.Categories)
}
