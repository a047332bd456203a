package licence

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
)

type Handler struct {
	svc *licence.CoverageService
}

func NewHandler(svc *licence.CoverageService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/{id}/mappings", h.addMapping)
	r.Get("/{id}/authorized", h.authorized)
	r.Get("/coverage", h.coverage)
}

type createLicenceRequest struct {
	Number           string     `json:"number"`
	TypeID           uuid.UUID  `json:"type_id"`
	CustomerAccount  string     `json:"customer_account"`
	Jurisdiction     string     `json:"jurisdiction"`
	IssuingAuthority string     `json:"issuing_authority"`
	IssueDate        time.Time  `json:"issue_date"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	Scope            string     `json:"scope,omitempty"`
}

type licenceResponse struct {
	ID               uuid.UUID      `json:"id"`
	Number           string         `json:"number"`
	TypeID           uuid.UUID      `json:"type_id"`
	CustomerAccount  string         `json:"customer_account"`
	Jurisdiction     string         `json:"jurisdiction"`
	IssuingAuthority string         `json:"issuing_authority"`
	IssueDate        time.Time      `json:"issue_date"`
	ExpiryDate       *time.Time     `json:"expiry_date,omitempty"`
	Status           licence.Status `json:"status"`
	Scope            string         `json:"scope,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func toResponse(l *licence.Licence) licenceResponse {
	return licenceResponse{
		ID:               l.ID,
		Number:           l.Number,
		TypeID:           l.TypeID,
		CustomerAccount:  l.Holder.Account,
		Jurisdiction:     l.Holder.Jurisdiction,
		IssuingAuthority: l.IssuingAuthority,
		IssueDate:        l.IssueDate,
		ExpiryDate:       l.ExpiryDate,
		Status:           l.Status,
		Scope:            l.Scope,
		CreatedAt:        l.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLicenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.CreateLicence(r.Context(), licence.CreateLicenceParams{
		Number: req.Number,
		TypeID: req.TypeID,
		Holder: customer.HolderKey{
			Account:      req.CustomerAccount,
			Jurisdiction: req.Jurisdiction,
		},
		IssuingAuthority: req.IssuingAuthority,
		IssueDate:        req.IssueDate,
		ExpiryDate:       req.ExpiryDate,
		Scope:            req.Scope,
	})
	if err != nil {
		switch {
		case errors.Is(err, licence.ErrInvalidWindow):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, licence.ErrDuplicateNumber):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addMappingRequest struct {
	SubstanceCode     string             `json:"substance_code"`
	EffectiveDate     time.Time          `json:"effective_date"`
	ExpiryDate        *time.Time         `json:"expiry_date,omitempty"`
	MaxPerTransaction *decimal.Decimal   `json:"max_per_transaction,omitempty"`
	MaxPerPeriod      *decimal.Decimal   `json:"max_per_period,omitempty"`
	Period            licence.PeriodType `json:"period,omitempty"`
}

type mappingResponse struct {
	ID                uuid.UUID          `json:"id"`
	LicenceID         uuid.UUID          `json:"licence_id"`
	SubstanceCode     string             `json:"substance_code"`
	EffectiveDate     time.Time          `json:"effective_date"`
	ExpiryDate        *time.Time         `json:"expiry_date,omitempty"`
	MaxPerTransaction *decimal.Decimal   `json:"max_per_transaction,omitempty"`
	MaxPerPeriod      *decimal.Decimal   `json:"max_per_period,omitempty"`
	Period            licence.PeriodType `json:"period,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

func (h *Handler) addMapping(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.AddMapping(r.Context(), licence.MappingParams{
		LicenceID:         id,
		SubstanceCode:     req.SubstanceCode,
		EffectiveDate:     req.EffectiveDate,
		ExpiryDate:        req.ExpiryDate,
		MaxPerTransaction: req.MaxPerTransaction,
		MaxPerPeriod:      req.MaxPerPeriod,
		Period:            req.Period,
	})
	if err != nil {
		switch {
		case errors.Is(err, licence.ErrNotFound):
			http.Error(w, "licence not found", http.StatusNotFound)
		case errors.Is(err, licence.ErrInvalidWindow):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, licence.ErrDuplicateMapping):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(mappingResponse{
		ID:                m.ID,
		LicenceID:         m.LicenceID,
		SubstanceCode:     m.SubstanceCode,
		EffectiveDate:     m.EffectiveDate,
		ExpiryDate:        m.ExpiryDate,
		MaxPerTransaction: m.MaxPerTransaction,
		MaxPerPeriod:      m.MaxPerPeriod,
		Period:            m.Period,
		CreatedAt:         m.CreatedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type authorizedResponse struct {
	LicenceID     uuid.UUID `json:"licence_id"`
	SubstanceCode string    `json:"substance_code"`
	Authorized    bool      `json:"authorized"`
}

func (h *Handler) authorized(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("substance_code")
	if code == "" {
		http.Error(w, "substance_code query parameter is required", http.StatusBadRequest)
		return
	}

	ok, err := h.svc.IsSubstanceAuthorized(r.Context(), id, code, time.Now())
	if err != nil {
		if errors.Is(err, licence.ErrNotFound) {
			http.Error(w, "licence not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(authorizedResponse{
		LicenceID:     id,
		SubstanceCode: code,
		Authorized:    ok,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type coverageResponse struct {
	Licence  licenceResponse `json:"licence"`
	TypeCode string          `json:"type_code"`
	Valid    bool            `json:"valid"`
}

func (h *Handler) coverage(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("customer_account")
	jurisdiction := r.URL.Query().Get("jurisdiction")
	code := r.URL.Query().Get("substance_code")

	if account == "" || jurisdiction == "" || code == "" {
		http.Error(w, "customer_account, jurisdiction and substance_code are required", http.StatusBadRequest)
		return
	}

	now := time.Now()

	covers, err := h.svc.FindCoveringLicences(r.Context(), customer.HolderKey{
		Account:      account,
		Jurisdiction: jurisdiction,
	}, code, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]coverageResponse, 0, len(covers))
	for _, c := range covers {
		resp = append(resp, coverageResponse{
			Licence:  toResponse(c.Licence),
			TypeCode: c.Type.Code,
			Valid:    c.Licence.ValidAt(now),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
