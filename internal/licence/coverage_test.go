package licence_test

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
	"github.com/jmulders/veridose/internal/substance"
)

var (
	holder = customer.HolderKey{Account: "C1001", Jurisdiction: "NL"}
	asOf   = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
)

func newLicence(number string, status licence.Status, expiry *time.Time) *licence.Licence {
	return &licence.Licence{
		ID:         uuid.New(),
		Number:     number,
		TypeID:     uuid.New(),
		Holder:     holder,
		IssueDate:  asOf.AddDate(-1, 0, 0),
		ExpiryDate: expiry,
		Status:     status,
	}
}

func activeMapping(licenceID uuid.UUID, code string) *licence.SubstanceMapping {
	return &licence.SubstanceMapping{
		ID:            uuid.New(),
		LicenceID:     licenceID,
		SubstanceCode: code,
		EffectiveDate: asOf.AddDate(0, -6, 0),
	}
}

func TestCoverageService_IsSubstanceAuthorized(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *licence.MockRepository, id uuid.UUID)
		want      bool
	}

	tests := []testCase{
		{
			name: "ValidWithActiveMapping",
			setupMock: func(m *licence.MockRepository, id uuid.UUID) {
				lic := newLicence("NL-001", licence.StatusValid, nil)
				lic.ID = id
				m.EXPECT().GetByID(gomock.Any(), id).Return(lic, nil)
				m.EXPECT().MappingsForSubstance(gomock.Any(), id, "MORPHINE").
					Return([]*licence.SubstanceMapping{activeMapping(id, "MORPHINE")}, nil)
			},
			want: true,
		},
		{
			name: "SuspendedLicence",
			setupMock: func(m *licence.MockRepository, id uuid.UUID) {
				lic := newLicence("NL-001", licence.StatusSuspended, nil)
				lic.ID = id
				m.EXPECT().GetByID(gomock.Any(), id).Return(lic, nil)
			},
			want: false,
		},
		{
			name: "MappingWindowClosed",
			setupMock: func(m *licence.MockRepository, id uuid.UUID) {
				lic := newLicence("NL-001", licence.StatusValid, nil)
				lic.ID = id
				closed := activeMapping(id, "MORPHINE")
				past := asOf.AddDate(0, -1, 0)
				closed.ExpiryDate = &past
				m.EXPECT().GetByID(gomock.Any(), id).Return(lic, nil)
				m.EXPECT().MappingsForSubstance(gomock.Any(), id, "MORPHINE").
					Return([]*licence.SubstanceMapping{closed}, nil)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := licence.NewMockRepository(ctrl)
			id := uuid.New()
			tt.setupMock(repo, id)

			svc := licence.NewCoverageService(repo)
			got, err := svc.IsSubstanceAuthorized(context.Background(), id, "MORPHINE", asOf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoverageService_FindCoveringLicences_SortsValidFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := licence.NewMockRepository(ctrl)
	svc := licence.NewCoverageService(repo)

	expired := asOf.AddDate(0, -1, 0)
	later := asOf.AddDate(1, 0, 0)
	sooner := asOf.AddDate(0, 1, 0)

	expiredLic := newLicence("NL-EXP", licence.StatusValid, &expired)
	soonerLic := newLicence("NL-SOON", licence.StatusValid, &sooner)
	laterLic := newLicence("NL-LATE", licence.StatusValid, &later)

	typ := &licence.Type{ID: uuid.New(), Code: "wda", Activities: []licence.Activity{licence.ActivityDistribute}}

	repo.EXPECT().GetByHolder(gomock.Any(), holder).
		Return([]*licence.Licence{expiredLic, soonerLic, laterLic}, nil)

	for _, lic := range []*licence.Licence{expiredLic, soonerLic, laterLic} {
		repo.EXPECT().MappingsForSubstance(gomock.Any(), lic.ID, "MORPHINE").
			Return([]*licence.SubstanceMapping{activeMapping(lic.ID, "MORPHINE")}, nil)
		repo.EXPECT().GetType(gomock.Any(), lic.TypeID).Return(typ, nil)
	}

	covers, err := svc.FindCoveringLicences(context.Background(), holder, "MORPHINE", asOf)
	require.NoError(t, err)
	require.Len(t, covers, 3)

	// Valid covers first, later expiry preferred, expired cover last.
	assert.Equal(t, "NL-LATE", covers[0].Licence.Number)
	assert.Equal(t, "NL-SOON", covers[1].Licence.Number)
	assert.Equal(t, "NL-EXP", covers[2].Licence.Number)
}

func TestCoverageService_FindCoveringLicences_SkipsInactiveMappings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := licence.NewMockRepository(ctrl)
	svc := licence.NewCoverageService(repo)

	lic := newLicence("NL-001", licence.StatusValid, nil)
	future := activeMapping(lic.ID, "MORPHINE")
	future.EffectiveDate = asOf.AddDate(0, 1, 0)

	repo.EXPECT().GetByHolder(gomock.Any(), holder).Return([]*licence.Licence{lic}, nil)
	repo.EXPECT().MappingsForSubstance(gomock.Any(), lic.ID, "MORPHINE").
		Return([]*licence.SubstanceMapping{future}, nil)

	covers, err := svc.FindCoveringLicences(context.Background(), holder, "MORPHINE", asOf)
	require.NoError(t, err)
	assert.Empty(t, covers)
}

func TestCoverageService_HasSufficientLicence(t *testing.T) {
	required := []licence.Activity{licence.ActivityDistribute, licence.ActivityPossess}

	type testCase struct {
		name      string
		setupMock func(m *licence.MockRepository)
		want      bool
		wantGaps  int
	}

	tests := []testCase{
		{
			name: "NoCoverAtAll",
			setupMock: func(m *licence.MockRepository) {
				m.EXPECT().GetByHolder(gomock.Any(), holder).Return(nil, nil)
			},
			want:     false,
			wantGaps: 1,
		},
		{
			name: "ActivityGap",
			setupMock: func(m *licence.MockRepository) {
				lic := newLicence("NL-001", licence.StatusValid, nil)
				typ := &licence.Type{ID: lic.TypeID, Code: "wda", Activities: []licence.Activity{licence.ActivityDistribute}}
				m.EXPECT().GetByHolder(gomock.Any(), holder).Return([]*licence.Licence{lic}, nil)
				m.EXPECT().MappingsForSubstance(gomock.Any(), lic.ID, "MORPHINE").
					Return([]*licence.SubstanceMapping{activeMapping(lic.ID, "MORPHINE")}, nil)
				m.EXPECT().GetType(gomock.Any(), lic.TypeID).Return(typ, nil)
			},
			want:     false,
			wantGaps: 1,
		},
		{
			name: "Sufficient",
			setupMock: func(m *licence.MockRepository) {
				lic := newLicence("NL-001", licence.StatusValid, nil)
				typ := &licence.Type{ID: lic.TypeID, Code: "opium_exemption", Activities: required}
				m.EXPECT().GetByHolder(gomock.Any(), holder).Return([]*licence.Licence{lic}, nil)
				m.EXPECT().MappingsForSubstance(gomock.Any(), lic.ID, "MORPHINE").
					Return([]*licence.SubstanceMapping{activeMapping(lic.ID, "MORPHINE")}, nil)
				m.EXPECT().GetType(gomock.Any(), lic.TypeID).Return(typ, nil)
			},
			want:     true,
			wantGaps: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := licence.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := licence.NewCoverageService(repo)
			ok, gaps, err := svc.HasSufficientLicence(context.Background(), holder, "MORPHINE", asOf, required)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Len(t, gaps, tt.wantGaps)
		})
	}
}

func TestCoverageService_CreateLicence(t *testing.T) {
	t.Run("InvalidWindow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := licence.NewCoverageService(licence.NewMockRepository(ctrl))

		expiry := asOf.AddDate(-2, 0, 0)
		_, err := svc.CreateLicence(context.Background(), licence.CreateLicenceParams{
			Number:     "NL-001",
			IssueDate:  asOf,
			ExpiryDate: &expiry,
		})
		assert.ErrorIs(t, err, licence.ErrInvalidWindow)
	})

	t.Run("DuplicateNumber", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := licence.NewMockRepository(ctrl)
		repo.EXPECT().GetByNumber(gomock.Any(), "NL-001").
			Return(newLicence("NL-001", licence.StatusValid, nil), nil)

		svc := licence.NewCoverageService(repo)
		_, err := svc.CreateLicence(context.Background(), licence.CreateLicenceParams{
			Number:    "NL-001",
			IssueDate: asOf,
		})
		assert.ErrorIs(t, err, licence.ErrDuplicateNumber)
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := licence.NewMockRepository(ctrl)
		repo.EXPECT().GetByNumber(gomock.Any(), "NL-001").Return(nil, licence.ErrNotFound)
		repo.EXPECT().CreateLicence(gomock.Any(), gomock.Any()).Return(nil)

		svc := licence.NewCoverageService(repo)
		lic, err := svc.CreateLicence(context.Background(), licence.CreateLicenceParams{
			Number:    "NL-001",
			Holder:    holder,
			IssueDate: asOf,
		})
		require.NoError(t, err)
		assert.Equal(t, licence.StatusValid, lic.Status)
	})
}

func TestCoverageService_AddMapping_DuplicateEffectiveDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := licence.NewMockRepository(ctrl)
	lic := newLicence("NL-001", licence.StatusValid, nil)
	existing := activeMapping(lic.ID, "MORPHINE")

	repo.EXPECT().GetByID(gomock.Any(), lic.ID).Return(lic, nil)
	repo.EXPECT().MappingsForSubstance(gomock.Any(), lic.ID, "MORPHINE").
		Return([]*licence.SubstanceMapping{existing}, nil)

	svc := licence.NewCoverageService(repo)
	_, err := svc.AddMapping(context.Background(), licence.MappingParams{
		LicenceID:     lic.ID,
		SubstanceCode: "MORPHINE",
		EffectiveDate: existing.EffectiveDate,
	})
	assert.ErrorIs(t, err, licence.ErrDuplicateMapping)
}

func TestLicence_ValidAt_BoundaryInclusive(t *testing.T) {
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	lic := newLicence("NL-001", licence.StatusValid, &expiry)

	assert.True(t, lic.ValidAt(expiry))
	assert.False(t, lic.ValidAt(expiry.Add(time.Second)))
}

func TestSubstanceMapping_ActiveAt_BoundaryInclusive(t *testing.T) {
	expiry := asOf.AddDate(0, 1, 0)
	m := activeMapping(uuid.New(), "MORPHINE")
	m.ExpiryDate = &expiry

	assert.True(t, m.ActiveAt(m.EffectiveDate))
	assert.True(t, m.ActiveAt(expiry))
	assert.False(t, m.ActiveAt(m.EffectiveDate.Add(-time.Second)))
	assert.False(t, m.ActiveAt(expiry.Add(time.Second)))
}

func TestRequiredActivities(t *testing.T) {
	type testCase struct {
		name string
		cls  substance.Classification
		want []licence.Activity
	}

	tests := []testCase{
		{
			name: "Unclassified",
			cls:  substance.Classification{OpiumList: substance.OpiumListNone, Precursor: substance.PrecursorNone},
			want: nil,
		},
		{
			name: "ListII",
			cls:  substance.Classification{OpiumList: substance.OpiumListII, Precursor: substance.PrecursorNone},
			want: []licence.Activity{licence.ActivityDistribute},
		},
		{
			name: "ListI",
			cls:  substance.Classification{OpiumList: substance.OpiumListI, Precursor: substance.PrecursorNone},
			want: []licence.Activity{licence.ActivityDistribute, licence.ActivityPossess},
		},
		{
			name: "PrecursorCat1",
			cls:  substance.Classification{OpiumList: substance.OpiumListNone, Precursor: substance.PrecursorCat1},
			want: []licence.Activity{licence.ActivityDistribute, licence.ActivityPossess},
		},
		{
			name: "PrecursorCat2",
			cls:  substance.Classification{OpiumList: substance.OpiumListNone, Precursor: substance.PrecursorCat2},
			want: []licence.Activity{licence.ActivityDistribute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, licence.RequiredActivities(tt.cls))
		})
	}
}
