package override

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/http/middleware"
	"github.com/jmulders/veridose/internal/override"
	"github.com/jmulders/veridose/internal/transaction"
)

type Handler struct {
	svc *override.Service
}

func NewHandler(svc *override.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/pending", h.listPending)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListPending(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type approveRequest struct {
	Actor         string `json:"actor,omitempty"`
	Justification string `json:"justification"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Approve(r.Context(), id, actor(r, req.Actor), req.Justification)
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type rejectRequest struct {
	Actor  string `json:"actor,omitempty"`
	Reason string `json:"reason"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Reject(r.Context(), id, actor(r, req.Actor), req.Reason)
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// actor prefers the authenticated subject over whatever the request body
// claims.
func actor(r *http.Request, requested string) string {
	if subject := middleware.Actor(r.Context()); subject != "" {
		return subject
	}

	return requested
}

func writeDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, override.ErrJustificationRequired),
		errors.Is(err, override.ErrReasonRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, override.ErrNotRequired),
		errors.Is(err, override.ErrNotPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, transaction.ErrVersionConflict):
		http.Error(w, "transaction was modified concurrently, retry", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
