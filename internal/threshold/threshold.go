package threshold

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind orders thresholds by specificity: a substance threshold beats a
// category threshold, which beats the global one. Only the most specific
// applicable threshold is evaluated per line.
type Kind string

const (
	KindSubstance Kind = "substance"
	KindCategory  Kind = "category"
	KindGlobal    Kind = "global"
)

// Period is the rolling window of a per-period cap.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Threshold caps quantities per transaction and/or per rolling period.
// Scope depends on the kind: SubstanceCode for substance thresholds,
// CustomerCategory for category thresholds, neither for the global one.
type Threshold struct {
	ID                uuid.UUID
	Kind              Kind
	SubstanceCode     string
	CustomerCategory  string
	MaxPerTransaction *decimal.Decimal
	MaxPerPeriod      *decimal.Decimal
	Period            Period
	Active            bool
	CreatedAt         time.Time
}

// AppliesTo reports whether the threshold's scope matches a line.
func (t *Threshold) AppliesTo(substanceCode, customerCategory string) bool {
	if !t.Active {
		return false
	}

	switch t.Kind {
	case KindSubstance:
		return t.SubstanceCode == substanceCode
	case KindCategory:
		return t.CustomerCategory == customerCategory
	case KindGlobal:
		return true
	}

	return false
}

// windowStart returns the inclusive start of the rolling window ending at
// asOf.
func windowStart(p Period, asOf time.Time) time.Time {
	switch p {
	case PeriodDay:
		return asOf.AddDate(0, 0, -1)
	case PeriodWeek:
		return asOf.AddDate(0, 0, -7)
	case PeriodMonth:
		return asOf.AddDate(0, -1, 0)
	}

	return asOf.AddDate(0, 0, -1)
}
