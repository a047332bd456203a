package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/reclass"
)

// ImpactSource provides the reclassification and its impact ledger.
// Implemented by reclass.Service.
type ImpactSource interface {
	Get(ctx context.Context, id uuid.UUID) (*reclass.Reclassification, error)
	ListImpacts(ctx context.Context, id uuid.UUID) ([]*reclass.CustomerImpact, error)
}

// Service writes compliance reports for regulators and QA. Output is CSV,
// the format the authorities ask for.
type Service struct {
	impacts ImpactSource
}

func NewService(impacts ImpactSource) *Service {
	return &Service{impacts: impacts}
}

// WriteImpactLedger streams the customer impact ledger of one
// reclassification as CSV.
func (s *Service) WriteImpactLedger(ctx context.Context, w io.Writer, reclassificationID uuid.UUID) error {
	rec, err := s.impacts.Get(ctx, reclassificationID)
	if err != nil {
		return err
	}

	impacts, err := s.impacts.ListImpacts(ctx, reclassificationID)
	if err != nil {
		return fmt.Errorf("listing impacts: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{
		"substance_code", "previous_opium_list", "previous_precursor",
		"new_opium_list", "new_precursor", "effective_date",
		"customer_account", "jurisdiction", "has_sufficient_licence",
		"requires_requalification", "licence_gaps", "requalification_date",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, i := range impacts {
		row := []string{
			rec.SubstanceCode,
			string(rec.Previous.OpiumList),
			string(rec.Previous.Precursor),
			string(rec.New.OpiumList),
			string(rec.New.Precursor),
			rec.EffectiveDate.Format("2006-01-02"),
			i.Holder.Account,
			i.Holder.Jurisdiction,
			formatBool(i.HasSufficientLicence),
			formatBool(i.RequiresReQualification),
			i.LicenceGapSummary,
			formatDate(i.ReQualificationDate),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing impact row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-01-02")
}
