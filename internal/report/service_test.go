package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/reclass"
	"github.com/jmulders/veridose/internal/report"
	"github.com/jmulders/veridose/internal/substance"
)

type stubImpactSource struct {
	rec     *reclass.Reclassification
	impacts []*reclass.CustomerImpact
}

func (s *stubImpactSource) Get(_ context.Context, _ uuid.UUID) (*reclass.Reclassification, error) {
	return s.rec, nil
}

func (s *stubImpactSource) ListImpacts(_ context.Context, _ uuid.UUID) ([]*reclass.CustomerImpact, error) {
	return s.impacts, nil
}

func TestService_WriteImpactLedger(t *testing.T) {
	requalified := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	rec := &reclass.Reclassification{
		ID:            uuid.New(),
		SubstanceCode: "GHB",
		Previous:      substance.Classification{OpiumList: substance.OpiumListII, Precursor: substance.PrecursorNone},
		New:           substance.Classification{OpiumList: substance.OpiumListI, Precursor: substance.PrecursorNone},
		EffectiveDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	source := &stubImpactSource{
		rec: rec,
		impacts: []*reclass.CustomerImpact{
			{
				Holder:               customer.HolderKey{Account: "C1001", Jurisdiction: "NL"},
				HasSufficientLicence: true,
			},
			{
				Holder:                  customer.HolderKey{Account: "C2002", Jurisdiction: "NL"},
				RequiresReQualification: true,
				LicenceGapSummary:       "licence NL-002 (wda) does not permit possess",
				ReQualificationDate:     &requalified,
			},
		},
	}

	var buf bytes.Buffer
	svc := report.NewService(source)

	err := svc.WriteImpactLedger(context.Background(), &buf, rec.ID)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"substance_code", "previous_opium_list", "previous_precursor",
		"new_opium_list", "new_precursor", "effective_date",
		"customer_account", "jurisdiction", "has_sufficient_licence",
		"requires_requalification", "licence_gaps", "requalification_date",
	}, rows[0])

	assert.Equal(t, []string{
		"GHB", "list_ii", "none", "list_i", "none", "2025-03-01",
		"C1001", "NL", "yes", "no", "", "",
	}, rows[1])

	assert.Equal(t, []string{
		"GHB", "list_ii", "none", "list_i", "none", "2025-03-01",
		"C2002", "NL", "no", "yes",
		"licence NL-002 (wda) does not permit possess", "2025-04-02",
	}, rows[2])
}

func TestService_WriteImpactLedger_NoImpacts(t *testing.T) {
	rec := &reclass.Reclassification{
		SubstanceCode: "GHB",
		EffectiveDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	svc := report.NewService(&stubImpactSource{rec: rec})

	err := svc.WriteImpactLedger(context.Background(), &buf, uuid.New())
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
