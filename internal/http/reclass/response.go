package reclass

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/reclass"
)

type reclassificationResponse struct {
	ID                     uuid.UUID         `json:"id"`
	SubstanceCode          string            `json:"substance_code"`
	Previous               classificationDTO `json:"previous"`
	New                    classificationDTO `json:"new"`
	EffectiveDate          time.Time         `json:"effective_date"`
	RegulatoryReference    string            `json:"regulatory_reference,omitempty"`
	Authority              string            `json:"authority,omitempty"`
	Status                 reclass.Status    `json:"status"`
	TotalAffectedCustomers int               `json:"total_affected_customers"`
	CustomersFlagged       int               `json:"customers_flagged"`
	CustomersSufficient    int               `json:"customers_sufficient"`
	AnalyzedAt             *time.Time        `json:"analyzed_at,omitempty"`
	ProcessedAt            *time.Time        `json:"processed_at,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(rec *reclass.Reclassification) reclassificationResponse {
	return reclassificationResponse{
		ID:                     rec.ID,
		SubstanceCode:          rec.SubstanceCode,
		Previous:               classificationDTO{OpiumList: rec.Previous.OpiumList, Precursor: rec.Previous.Precursor},
		New:                    classificationDTO{OpiumList: rec.New.OpiumList, Precursor: rec.New.Precursor},
		EffectiveDate:          rec.EffectiveDate,
		RegulatoryReference:    rec.RegulatoryReference,
		Authority:              rec.Authority,
		Status:                 rec.Status,
		TotalAffectedCustomers: rec.TotalAffectedCustomers,
		CustomersFlagged:       rec.CustomersFlagged,
		CustomersSufficient:    rec.CustomersSufficient,
		AnalyzedAt:             rec.AnalyzedAt,
		ProcessedAt:            rec.ProcessedAt,
		CreatedAt:              rec.CreatedAt,
		UpdatedAt:              rec.UpdatedAt,
	}
}

func toResponseList(recs []*reclass.Reclassification) []reclassificationResponse {
	resp := make([]reclassificationResponse, len(recs))
	for i, rec := range recs {
		resp[i] = toResponse(rec)
	}

	return resp
}

type impactResponse struct {
	ID                      uuid.UUID  `json:"id"`
	ReclassificationID      uuid.UUID  `json:"reclassification_id"`
	SubstanceCode           string     `json:"substance_code"`
	CustomerAccount         string     `json:"customer_account"`
	Jurisdiction            string     `json:"jurisdiction"`
	HasSufficientLicence    bool       `json:"has_sufficient_licence"`
	RequiresReQualification bool       `json:"requires_requalification"`
	LicenceGapSummary       string     `json:"licence_gap_summary,omitempty"`
	ReQualificationDate     *time.Time `json:"requalification_date,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

func toImpactResponse(i *reclass.CustomerImpact) impactResponse {
	return impactResponse{
		ID:                      i.ID,
		ReclassificationID:      i.ReclassificationID,
		SubstanceCode:           i.SubstanceCode,
		CustomerAccount:         i.Holder.Account,
		Jurisdiction:            i.Holder.Jurisdiction,
		HasSufficientLicence:    i.HasSufficientLicence,
		RequiresReQualification: i.RequiresReQualification,
		LicenceGapSummary:       i.LicenceGapSummary,
		ReQualificationDate:     i.ReQualificationDate,
		CreatedAt:               i.CreatedAt,
		UpdatedAt:               i.UpdatedAt,
	}
}

func toImpactResponseList(impacts []*reclass.CustomerImpact) []impactResponse {
	resp := make([]impactResponse, len(impacts))
	for i, impact := range impacts {
		resp[i] = toImpactResponse(impact)
	}

	return resp
}
