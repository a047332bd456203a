package substance

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("substance not found")

// OpiumList is the Opium Act schedule a substance falls under.
// List I is the strictest tier.
type OpiumList string

const (
	OpiumListNone OpiumList = "none"
	OpiumListII   OpiumList = "list_ii"
	OpiumListI    OpiumList = "list_i"
)

// PrecursorCategory is the drug-precursor tier. Category 1 is the strictest.
type PrecursorCategory string

const (
	PrecursorNone PrecursorCategory = "none"
	PrecursorCat3 PrecursorCategory = "cat_3"
	PrecursorCat2 PrecursorCategory = "cat_2"
	PrecursorCat1 PrecursorCategory = "cat_1"
)

var opiumRank = map[OpiumList]int{
	OpiumListNone: 0,
	OpiumListII:   1,
	OpiumListI:    2,
}

var precursorRank = map[PrecursorCategory]int{
	PrecursorNone: 0,
	PrecursorCat3: 1,
	PrecursorCat2: 2,
	PrecursorCat1: 3,
}

// Classification combines both regulatory dimensions of a substance.
type Classification struct {
	OpiumList OpiumList
	Precursor PrecursorCategory
}

// Valid reports whether at least one dimension is set. A controlled
// substance with neither dimension is not a controlled substance.
func (c Classification) Valid() bool {
	return c.OpiumList != OpiumListNone || c.Precursor != PrecursorNone
}

func (c Classification) Equal(o Classification) bool {
	return c.OpiumList == o.OpiumList && c.Precursor == o.Precursor
}

// OpiumRank returns the ordering of the Opium Act tier, higher is stricter.
func (c Classification) OpiumRank() int { return opiumRank[c.OpiumList] }

// PrecursorRank returns the ordering of the precursor tier, higher is stricter.
func (c Classification) PrecursorRank() int { return precursorRank[c.Precursor] }

// Substance is a controlled substance in the compliance catalogue, keyed by
// its canonical substance code.
type Substance struct {
	Code           string
	Name           string
	Classification Classification
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
