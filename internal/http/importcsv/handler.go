package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmulders/veridose/internal/importer"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/mappings", h.importMappings)
}

type importResponse struct {
	Imported          int      `json:"imported"`
	Duplicates        int      `json:"duplicates"`
	UnknownSubstances []string `json:"unknown_substances,omitempty"`
	UnknownLicences   []string `json:"unknown_licences,omitempty"`
}

func (h *Handler) importMappings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported:          summary.Imported,
		Duplicates:        summary.Duplicates,
		UnknownSubstances: summary.UnknownSubstances,
		UnknownLicences:   summary.UnknownLicences,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
