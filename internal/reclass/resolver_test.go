package reclass_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmulders/veridose/internal/reclass"
	"github.com/jmulders/veridose/internal/substance"
)

func TestResolver_EffectiveClassification(t *testing.T) {
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	listII := substance.Classification{OpiumList: substance.OpiumListII, Precursor: substance.PrecursorNone}
	listI := substance.Classification{OpiumList: substance.OpiumListI, Precursor: substance.PrecursorNone}

	t.Run("CompletedReclassificationWins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lookup := reclass.NewMockEffectiveLookup(ctrl)
		substances := reclass.NewMockSubstanceLookup(ctrl)
		resolver := reclass.NewResolver(lookup, substances)

		rec := &reclass.Reclassification{
			ID:            uuid.New(),
			SubstanceCode: "GHB",
			Previous:      listII,
			New:           listI,
			Status:        reclass.StatusCompleted,
		}
		lookup.EXPECT().EffectiveAt(gomock.Any(), "GHB", asOf).Return(rec, nil)

		cls, recID, err := resolver.EffectiveClassification(context.Background(), "GHB", asOf)
		require.NoError(t, err)
		assert.Equal(t, listI, cls)
		require.NotNil(t, recID)
		assert.Equal(t, rec.ID, *recID)
	})

	t.Run("FallsBackToCatalogue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lookup := reclass.NewMockEffectiveLookup(ctrl)
		substances := reclass.NewMockSubstanceLookup(ctrl)
		resolver := reclass.NewResolver(lookup, substances)

		lookup.EXPECT().EffectiveAt(gomock.Any(), "GHB", asOf).Return(nil, reclass.ErrNotFound)
		substances.EXPECT().GetBySubstanceCode(gomock.Any(), "GHB").
			Return(&substance.Substance{Code: "GHB", Classification: listII, Active: true}, nil)

		cls, recID, err := resolver.EffectiveClassification(context.Background(), "GHB", asOf)
		require.NoError(t, err)
		assert.Equal(t, listII, cls)
		assert.Nil(t, recID)
	})

	t.Run("LookupError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lookup := reclass.NewMockEffectiveLookup(ctrl)
		substances := reclass.NewMockSubstanceLookup(ctrl)
		resolver := reclass.NewResolver(lookup, substances)

		lookup.EXPECT().EffectiveAt(gomock.Any(), "GHB", asOf).Return(nil, errors.New("db error"))

		_, _, err := resolver.EffectiveClassification(context.Background(), "GHB", asOf)
		assert.Error(t, err)
	})

	t.Run("UnknownSubstance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lookup := reclass.NewMockEffectiveLookup(ctrl)
		substances := reclass.NewMockSubstanceLookup(ctrl)
		resolver := reclass.NewResolver(lookup, substances)

		lookup.EXPECT().EffectiveAt(gomock.Any(), "UNKNOWN", asOf).Return(nil, reclass.ErrNotFound)
		substances.EXPECT().GetBySubstanceCode(gomock.Any(), "UNKNOWN").Return(nil, substance.ErrNotFound)

		_, _, err := resolver.EffectiveClassification(context.Background(), "UNKNOWN", asOf)
		assert.ErrorIs(t, err, substance.ErrNotFound)
	})
}
