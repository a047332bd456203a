package reclass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/reclass"
	"github.com/jmulders/veridose/internal/report"
	"github.com/jmulders/veridose/internal/substance"
)

type Handler struct {
	svc      *reclass.Service
	resolver *reclass.Resolver
	reports  *report.Service
}

func NewHandler(svc *reclass.Service, resolver *reclass.Resolver, reports *report.Service) *Handler {
	return &Handler{svc: svc, resolver: resolver, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.listByCode)
	r.Get("/requalifications/pending", h.pendingReQualification)
	r.Get("/{id}", h.get)
	r.Post("/{id}/analyze", h.analyze)
	r.Post("/{id}/process", h.process)
	r.Post("/{id}/cancel", h.cancel)
	r.Get("/{id}/impacts", h.listImpacts)
	r.Get("/{id}/impacts/export", h.exportImpacts)
	r.Post("/{id}/impacts/{account}/{jurisdiction}/requalify", h.requalify)
}

// CustomerRoutes exposes the blocked-substance check, mounted under
// /customers.
func (h *Handler) CustomerRoutes(r chi.Router) {
	r.Get("/{account}/{jurisdiction}/blocked", h.customerBlocked)
}

// SubstanceRoutes exposes the effective classification lookup, mounted under
// /substances.
func (h *Handler) SubstanceRoutes(r chi.Router) {
	r.Get("/{code}/classification", h.effectiveClassification)
}

type classificationDTO struct {
	OpiumList substance.OpiumList         `json:"opium_list"`
	Precursor substance.PrecursorCategory `json:"precursor_category"`
}

type createRequest struct {
	SubstanceCode       string            `json:"substance_code"`
	Previous            classificationDTO `json:"previous"`
	New                 classificationDTO `json:"new"`
	EffectiveDate       time.Time         `json:"effective_date"`
	RegulatoryReference string            `json:"regulatory_reference"`
	Authority           string            `json:"authority"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), reclass.CreateParams{
		SubstanceCode:       req.SubstanceCode,
		Previous:            substance.Classification{OpiumList: req.Previous.OpiumList, Precursor: req.Previous.Precursor},
		New:                 substance.Classification{OpiumList: req.New.OpiumList, Precursor: req.New.Precursor},
		EffectiveDate:       req.EffectiveDate,
		RegulatoryReference: req.RegulatoryReference,
		Authority:           req.Authority,
	})
	if err != nil {
		switch {
		case errors.Is(err, substance.ErrNotFound):
			http.Error(w, "substance not found", http.StatusNotFound)
		case errors.Is(err, reclass.ErrClassificationDrift):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, reclass.ErrNoChange):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listByCode(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("substance_code")
	if code == "" {
		http.Error(w, "substance_code query parameter is required", http.StatusBadRequest)
		return
	}

	recs, err := h.svc.ListByCode(r.Context(), code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(recs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, reclass.ErrNotFound) {
			http.Error(w, "reclassification not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	impacts, err := h.svc.AnalyzeImpact(r.Context(), id)
	if err != nil {
		if errors.Is(err, reclass.ErrNotFound) {
			http.Error(w, "reclassification not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImpactResponseList(impacts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Process)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (*reclass.Reclassification, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := fn(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, reclass.ErrNotFound):
			http.Error(w, "reclassification not found", http.StatusNotFound)
		case errors.Is(err, reclass.ErrNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listImpacts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	impacts, err := h.svc.ListImpacts(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImpactResponseList(impacts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportImpacts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"impacts_%s.csv\"", id))

	if err := h.reports.WriteImpactLedger(r.Context(), w, id); err != nil {
		slog.Error("failed to write impact ledger", "error", err)
	}
}

func (h *Handler) requalify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	holder := customer.HolderKey{
		Account:      chi.URLParam(r, "account"),
		Jurisdiction: chi.URLParam(r, "jurisdiction"),
	}

	impact, err := h.svc.MarkReQualified(r.Context(), id, holder)
	if err != nil {
		if errors.Is(err, reclass.ErrImpactNotFound) {
			http.Error(w, "impact not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImpactResponse(impact)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) pendingReQualification(w http.ResponseWriter, r *http.Request) {
	impacts, err := h.svc.PendingReQualification(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImpactResponseList(impacts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type blockedResponse struct {
	Blocked bool             `json:"blocked"`
	Impacts []impactResponse `json:"impacts,omitempty"`
}

func (h *Handler) customerBlocked(w http.ResponseWriter, r *http.Request) {
	holder := customer.HolderKey{
		Account:      chi.URLParam(r, "account"),
		Jurisdiction: chi.URLParam(r, "jurisdiction"),
	}

	blocked, impacts, err := h.svc.CheckCustomerBlocked(r.Context(), holder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := blockedResponse{Blocked: blocked}
	for _, i := range impacts {
		resp.Impacts = append(resp.Impacts, toImpactResponse(i))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type effectiveClassificationResponse struct {
	SubstanceCode      string            `json:"substance_code"`
	AsOf               time.Time         `json:"as_of"`
	Classification     classificationDTO `json:"classification"`
	ReclassificationID *uuid.UUID        `json:"reclassification_id,omitempty"`
}

func (h *Handler) effectiveClassification(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	asOf := time.Now()

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid as_of date", http.StatusBadRequest)
			return
		}

		asOf = t
	}

	cls, sourceID, err := h.resolver.EffectiveClassification(r.Context(), code, asOf)
	if err != nil {
		if errors.Is(err, substance.ErrNotFound) {
			http.Error(w, "substance not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(effectiveClassificationResponse{
		SubstanceCode:      code,
		AsOf:               asOf,
		Classification:     classificationDTO{OpiumList: cls.OpiumList, Precursor: cls.Precursor},
		ReclassificationID: sourceID,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
