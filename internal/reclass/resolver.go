package reclass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/substance"
)

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=reclass

// EffectiveLookup finds completed reclassifications by effective date.
type EffectiveLookup interface {
	// EffectiveAt returns the completed reclassification of the substance
	// with the latest effective date on or before asOf, ties broken by latest
	// creation time. ErrNotFound when there is none.
	EffectiveAt(ctx context.Context, substanceCode string, asOf time.Time) (*Reclassification, error)
}

// SubstanceLookup reads the substance catalogue.
type SubstanceLookup interface {
	GetBySubstanceCode(ctx context.Context, code string) (*substance.Substance, error)
}

// Resolver projects a substance's effective classification at a point in
// time. Read-only; never mutates state.
type Resolver struct {
	reclassifications EffectiveLookup
	substances        SubstanceLookup
}

func NewResolver(reclassifications EffectiveLookup, substances SubstanceLookup) *Resolver {
	return &Resolver{reclassifications: reclassifications, substances: substances}
}

// EffectiveClassification returns the classification in force at asOf and,
// when it stems from a completed reclassification, that record's id. With no
// completed reclassification on or before asOf it falls back to the stored
// classification.
func (r *Resolver) EffectiveClassification(ctx context.Context, code string, asOf time.Time) (substance.Classification, *uuid.UUID, error) {
	rec, err := r.reclassifications.EffectiveAt(ctx, code, asOf)
	if err == nil {
		return rec.New, &rec.ID, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return substance.Classification{}, nil, fmt.Errorf("looking up effective reclassification: %w", err)
	}

	sub, err := r.substances.GetBySubstanceCode(ctx, code)
	if err != nil {
		return substance.Classification{}, nil, err
	}

	return sub.Classification, nil, nil
}
