package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/transaction"
	"github.com/jmulders/veridose/internal/validation"
)

type Handler struct {
	svc       *transaction.Service
	validator *validation.Service
}

func NewHandler(svc *transaction.Service, validator *validation.Service) *Handler {
	return &Handler{svc: svc, validator: validator}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/validate", h.validate)
}

type lineRequest struct {
	SubstanceCode string          `json:"substance_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

type createTransactionRequest struct {
	Reference       string                `json:"reference"`
	CustomerAccount string                `json:"customer_account"`
	Jurisdiction    string                `json:"jurisdiction"`
	Direction       transaction.Direction `json:"direction"`
	Lines           []lineRequest         `json:"lines"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]transaction.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, transaction.Line{
			SubstanceCode: l.SubstanceCode,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
		})
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Reference: req.Reference,
		Holder: customer.HolderKey{
			Account:      req.CustomerAccount,
			Jurisdiction: req.Jurisdiction,
		},
		Direction: req.Direction,
		Lines:     lines,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrNoLines) {
			http.Error(w, "transaction requires at least one line", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := transaction.ValidationStatus(s)
		filter.Status = &status
	}

	account := r.URL.Query().Get("customer_account")
	jurisdiction := r.URL.Query().Get("jurisdiction")

	if account != "" && jurisdiction != "" {
		filter.Holder = &customer.HolderKey{Account: account, Jurisdiction: jurisdiction}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type validationResponse struct {
	Transaction      transactionResponse `json:"transaction"`
	Warnings         []violationResponse `json:"warnings,omitempty"`
	RequiresOverride bool                `json:"requires_override"`
	CanProceed       bool                `json:"can_proceed"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	result, err := h.validator.Validate(r.Context(), tx)
	if err != nil {
		if errors.Is(err, transaction.ErrVersionConflict) {
			http.Error(w, "transaction was modified concurrently, retry", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	resp := validationResponse{
		Transaction:      toResponse(tx),
		RequiresOverride: result.RequiresOverride,
		CanProceed:       result.CanProceed,
	}

	for _, warning := range result.Warnings {
		resp.Warnings = append(resp.Warnings, toViolationResponse(warning))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
