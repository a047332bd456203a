package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/transaction"
)

type lineResponse struct {
	SubstanceCode string          `json:"substance_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

type violationResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Overridable bool   `json:"overridable"`
}

type licenceUsageResponse struct {
	SubstanceCode string    `json:"substance_code"`
	LicenceID     uuid.UUID `json:"licence_id"`
	LicenceNumber string    `json:"licence_number"`
}

type transactionResponse struct {
	ID               uuid.UUID                      `json:"id"`
	Reference        string                         `json:"reference"`
	CustomerAccount  string                         `json:"customer_account"`
	Jurisdiction     string                         `json:"jurisdiction"`
	Direction        transaction.Direction          `json:"direction"`
	Lines            []lineResponse                 `json:"lines"`
	ValidationStatus transaction.ValidationStatus   `json:"validation_status"`
	RequiresOverride bool                           `json:"requires_override"`
	OverrideStatus   transaction.OverrideStatus     `json:"override_status"`
	OverrideActor    string                         `json:"override_actor,omitempty"`
	OverrideReason   string                         `json:"override_reason,omitempty"`
	OverrideAt       *time.Time                     `json:"override_at,omitempty"`
	Violations       []violationResponse            `json:"violations,omitempty"`
	LicenceUsages    []licenceUsageResponse         `json:"licence_usages,omitempty"`
	Version          int64                          `json:"version"`
	ValidatedAt      *time.Time                     `json:"validated_at,omitempty"`
	CreatedAt        time.Time                      `json:"created_at"`
	UpdatedAt        *time.Time                     `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:               tx.ID,
		Reference:        tx.Reference,
		CustomerAccount:  tx.Holder.Account,
		Jurisdiction:     tx.Holder.Jurisdiction,
		Direction:        tx.Direction,
		ValidationStatus: tx.ValidationStatus,
		RequiresOverride: tx.RequiresOverride,
		OverrideStatus:   tx.OverrideStatus,
		OverrideActor:    tx.OverrideActor,
		OverrideReason:   tx.OverrideReason,
		OverrideAt:       tx.OverrideAt,
		Version:          tx.Version,
		ValidatedAt:      tx.ValidatedAt,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}

	for _, l := range tx.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			SubstanceCode: l.SubstanceCode,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
		})
	}

	for _, v := range tx.Violations {
		resp.Violations = append(resp.Violations, toViolationResponse(v))
	}

	for _, u := range tx.LicenceUsages {
		resp.LicenceUsages = append(resp.LicenceUsages, licenceUsageResponse{
			SubstanceCode: u.SubstanceCode,
			LicenceID:     u.LicenceID,
			LicenceNumber: u.LicenceNumber,
		})
	}

	return resp
}

func toViolationResponse(v transaction.Violation) violationResponse {
	return violationResponse{
		Code:        v.Code,
		Message:     v.Message,
		Overridable: v.Overridable,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
