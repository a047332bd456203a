package reclass_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/reclass"
	"github.com/jmulders/veridose/internal/substance"
)

var (
	listII = substance.Classification{OpiumList: substance.OpiumListII, Precursor: substance.PrecursorNone}
	listI  = substance.Classification{OpiumList: substance.OpiumListI, Precursor: substance.PrecursorNone}
	none   = substance.Classification{OpiumList: substance.OpiumListNone, Precursor: substance.PrecursorNone}
)

type reclassDeps struct {
	repo       *reclass.MockRepository
	substances *reclass.MockSubstanceRepository
	licences   *reclass.MockLicenceLookup
	coverage   *reclass.MockSufficiencyChecker
}

func newReclassService(ctrl *gomock.Controller) (*reclass.Service, reclassDeps) {
	d := reclassDeps{
		repo:       reclass.NewMockRepository(ctrl),
		substances: reclass.NewMockSubstanceRepository(ctrl),
		licences:   reclass.NewMockLicenceLookup(ctrl),
		coverage:   reclass.NewMockSufficiencyChecker(ctrl),
	}

	return reclass.NewService(d.repo, d.substances, d.licences, d.coverage, nil), d
}

func ghb() *substance.Substance {
	return &substance.Substance{Code: "GHB", Name: "GHB", Classification: listII, Active: true}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name     string
		previous substance.Classification
		next     substance.Classification
		create   bool
		wantErr  error
	}

	tests := []testCase{
		{name: "Success", previous: listII, next: listI, create: true},
		{name: "Drift", previous: listI, next: listII, wantErr: reclass.ErrClassificationDrift},
		{name: "NoChange", previous: listII, next: listII, wantErr: reclass.ErrNoChange},
		{name: "Declassification", previous: listII, next: none, wantErr: reclass.ErrNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, d := newReclassService(ctrl)

			d.substances.EXPECT().GetBySubstanceCode(gomock.Any(), "GHB").Return(ghb(), nil)
			if tt.create {
				d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec, err := svc.Create(context.Background(), reclass.CreateParams{
				SubstanceCode: "GHB",
				Previous:      tt.previous,
				New:           tt.next,
				Authority:     "VWS",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, reclass.StatusPending, rec.Status)
		})
	}
}

func TestService_AnalyzeImpact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)

	rec := &reclass.Reclassification{
		ID:            uuid.New(),
		SubstanceCode: "GHB",
		Previous:      listII,
		New:           listI,
		Status:        reclass.StatusPending,
	}

	sufficient := customer.HolderKey{Account: "C1001", Jurisdiction: "NL"}
	flagged := customer.HolderKey{Account: "C2002", Jurisdiction: "NL"}

	licences := []*licence.Licence{
		{ID: uuid.New(), Number: "NL-001", Holder: sufficient},
		{ID: uuid.New(), Number: "NL-002", Holder: flagged},
		// Second licence of an already seen holder must not double-count.
		{ID: uuid.New(), Number: "NL-003", Holder: sufficient},
	}

	required := []licence.Activity{licence.ActivityDistribute, licence.ActivityPossess}

	d.repo.EXPECT().GetByID(gomock.Any(), rec.ID).Return(rec, nil)
	d.licences.EXPECT().GetBySubstanceCode(gomock.Any(), "GHB").Return(licences, nil)
	d.coverage.EXPECT().HasSufficientLicence(gomock.Any(), sufficient, "GHB", gomock.Any(), required).
		Return(true, nil, nil)
	d.coverage.EXPECT().HasSufficientLicence(gomock.Any(), flagged, "GHB", gomock.Any(), required).
		Return(false, []string{"licence NL-002 (wda) does not permit possess"}, nil)
	d.repo.EXPECT().CreateImpacts(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Update(gomock.Any(), rec).Return(nil)

	impacts, err := svc.AnalyzeImpact(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, impacts, 2)

	assert.Equal(t, 2, rec.TotalAffectedCustomers)
	assert.Equal(t, 1, rec.CustomersFlagged)
	assert.Equal(t, 1, rec.CustomersSufficient)
	assert.NotNil(t, rec.AnalyzedAt)

	for _, impact := range impacts {
		if impact.Holder == flagged {
			assert.True(t, impact.RequiresReQualification)
			assert.Contains(t, impact.LicenceGapSummary, "does not permit possess")
		} else {
			assert.False(t, impact.RequiresReQualification)
		}
	}
}

func TestService_AnalyzeImpact_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)

	analyzed := time.Now()
	rec := &reclass.Reclassification{ID: uuid.New(), SubstanceCode: "GHB", AnalyzedAt: &analyzed}
	existing := []*reclass.CustomerImpact{{ID: uuid.New(), ReclassificationID: rec.ID}}

	d.repo.EXPECT().GetByID(gomock.Any(), rec.ID).Return(rec, nil)
	d.repo.EXPECT().ListImpacts(gomock.Any(), rec.ID).Return(existing, nil)

	impacts, err := svc.AnalyzeImpact(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, impacts)
}

func TestService_Process(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)

	analyzed := time.Now()
	rec := &reclass.Reclassification{
		ID:            uuid.New(),
		SubstanceCode: "GHB",
		Previous:      listII,
		New:           listI,
		Status:        reclass.StatusPending,
		AnalyzedAt:    &analyzed,
	}

	d.repo.EXPECT().GetByID(gomock.Any(), rec.ID).Return(rec, nil)
	d.repo.EXPECT().Update(gomock.Any(), rec).Return(nil).Times(2)
	d.substances.EXPECT().UpdateClassification(gomock.Any(), "GHB", listI).Return(nil)

	got, err := svc.Process(context.Background(), rec.ID)
	require.NoError(t, err)

	assert.Equal(t, reclass.StatusCompleted, got.Status)
	assert.NotNil(t, got.ProcessedAt)
}

func TestService_Process_NotPending(t *testing.T) {
	type testCase struct {
		name   string
		status reclass.Status
	}

	tests := []testCase{
		{name: "Completed", status: reclass.StatusCompleted},
		{name: "Cancelled", status: reclass.StatusCancelled},
		{name: "Processing", status: reclass.StatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, d := newReclassService(ctrl)

			rec := &reclass.Reclassification{ID: uuid.New(), Status: tt.status}
			d.repo.EXPECT().GetByID(gomock.Any(), rec.ID).Return(rec, nil)

			_, err := svc.Process(context.Background(), rec.ID)
			assert.ErrorIs(t, err, reclass.ErrNotPending)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)

	rec := &reclass.Reclassification{ID: uuid.New(), Status: reclass.StatusPending}
	d.repo.EXPECT().GetByID(gomock.Any(), rec.ID).Return(rec, nil)
	d.repo.EXPECT().Update(gomock.Any(), rec).Return(nil)

	got, err := svc.Cancel(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, reclass.StatusCancelled, got.Status)
}

func TestService_BlockedSubstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)
	holder := customer.HolderKey{Account: "C2002", Jurisdiction: "NL"}

	d.repo.EXPECT().ListBlockingImpactsByHolder(gomock.Any(), holder).
		Return([]*reclass.CustomerImpact{
			{SubstanceCode: "GHB", RequiresReQualification: true},
			{SubstanceCode: "MORPHINE", RequiresReQualification: true},
		}, nil)

	blocked, err := svc.BlockedSubstances(context.Background(), holder)
	require.NoError(t, err)

	assert.Len(t, blocked, 2)
	assert.Contains(t, blocked, "GHB")
	assert.Contains(t, blocked, "MORPHINE")
}

func TestService_MarkReQualified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)
	holder := customer.HolderKey{Account: "C2002", Jurisdiction: "NL"}
	recID := uuid.New()

	impact := &reclass.CustomerImpact{
		ID:                      uuid.New(),
		ReclassificationID:      recID,
		Holder:                  holder,
		RequiresReQualification: true,
	}

	d.repo.EXPECT().GetImpact(gomock.Any(), recID, holder).Return(impact, nil)
	d.repo.EXPECT().UpdateImpact(gomock.Any(), impact).Return(nil)

	got, err := svc.MarkReQualified(context.Background(), recID, holder)
	require.NoError(t, err)

	assert.False(t, got.RequiresReQualification)
	assert.True(t, got.HasSufficientLicence)
	assert.NotNil(t, got.ReQualificationDate)
}

func TestService_CheckCustomerBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, d := newReclassService(ctrl)
	holder := customer.HolderKey{Account: "C1001", Jurisdiction: "NL"}

	d.repo.EXPECT().ListBlockingImpactsByHolder(gomock.Any(), holder).Return(nil, nil)

	blocked, impacts, err := svc.CheckCustomerBlocked(context.Background(), holder)
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Empty(t, impacts)
}
