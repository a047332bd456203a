package override

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/transaction"
)

type violationResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Overridable bool   `json:"overridable"`
}

type pendingOverrideResponse struct {
	ID               uuid.UUID                    `json:"id"`
	Reference        string                       `json:"reference"`
	CustomerAccount  string                       `json:"customer_account"`
	Jurisdiction     string                       `json:"jurisdiction"`
	Direction        transaction.Direction        `json:"direction"`
	ValidationStatus transaction.ValidationStatus `json:"validation_status"`
	OverrideStatus   transaction.OverrideStatus   `json:"override_status"`
	OverrideActor    string                       `json:"override_actor,omitempty"`
	OverrideReason   string                       `json:"override_reason,omitempty"`
	OverrideAt       *time.Time                   `json:"override_at,omitempty"`
	Violations       []violationResponse          `json:"violations,omitempty"`
	ValidatedAt      *time.Time                   `json:"validated_at,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) pendingOverrideResponse {
	resp := pendingOverrideResponse{
		ID:               tx.ID,
		Reference:        tx.Reference,
		CustomerAccount:  tx.Holder.Account,
		Jurisdiction:     tx.Holder.Jurisdiction,
		Direction:        tx.Direction,
		ValidationStatus: tx.ValidationStatus,
		OverrideStatus:   tx.OverrideStatus,
		OverrideActor:    tx.OverrideActor,
		OverrideReason:   tx.OverrideReason,
		OverrideAt:       tx.OverrideAt,
		ValidatedAt:      tx.ValidatedAt,
		CreatedAt:        tx.CreatedAt,
	}

	for _, v := range tx.Violations {
		resp.Violations = append(resp.Violations, violationResponse{
			Code:        v.Code,
			Message:     v.Message,
			Overridable: v.Overridable,
		})
	}

	return resp
}

func toResponseList(txs []*transaction.Transaction) []pendingOverrideResponse {
	resp := make([]pendingOverrideResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
