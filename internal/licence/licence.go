package licence

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/substance"
)

var (
	ErrNotFound         = errors.New("licence not found")
	ErrTypeNotFound     = errors.New("licence type not found")
	ErrDuplicateNumber  = errors.New("licence number already exists")
	ErrDuplicateMapping = errors.New("active mapping already exists for licence and substance")
	ErrInvalidWindow    = errors.New("expiry date before effective date")
)

// Activity is an action a licence type permits.
type Activity string

const (
	ActivityPossess     Activity = "possess"
	ActivityDistribute  Activity = "distribute"
	ActivityImport      Activity = "import"
	ActivityExport      Activity = "export"
	ActivityManufacture Activity = "manufacture"
)

// Status is the administrative state of a licence.
type Status string

const (
	StatusValid     Status = "valid"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
	StatusRevoked   Status = "revoked"
)

// PeriodType declares the rolling window of a per-period quantity cap.
type PeriodType string

const (
	PeriodDay   PeriodType = "day"
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

// Type is a licence type, e.g. a WDA or an Opium Act exemption.
type Type struct {
	ID         uuid.UUID
	Code       string
	Name       string
	Activities []Activity
}

// Permits reports whether the type allows the given activity.
func (t *Type) Permits(a Activity) bool {
	for _, act := range t.Activities {
		if act == a {
			return true
		}
	}

	return false
}

// PermitsAll reports whether the type allows every listed activity.
func (t *Type) PermitsAll(acts []Activity) bool {
	for _, a := range acts {
		if !t.Permits(a) {
			return false
		}
	}

	return true
}

// Licence is a holder's authorisation issued by a regulator.
type Licence struct {
	ID               uuid.UUID
	Number           string
	TypeID           uuid.UUID
	Holder           customer.HolderKey
	IssuingAuthority string
	IssueDate        time.Time
	ExpiryDate       *time.Time
	Status           Status
	Scope            string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// ValidAt reports whether the licence itself can cover anything at asOf:
// administratively valid and not past its expiry date. Boundary dates are
// inclusive.
func (l *Licence) ValidAt(asOf time.Time) bool {
	if l.Status != StatusValid {
		return false
	}

	if l.ExpiryDate != nil && asOf.After(*l.ExpiryDate) {
		return false
	}

	return true
}

// Expired reports whether the licence is unusable purely because of dates,
// either by status or by a passed expiry.
func (l *Licence) Expired(asOf time.Time) bool {
	if l.Status == StatusExpired {
		return true
	}

	return l.Status == StatusValid && l.ExpiryDate != nil && asOf.After(*l.ExpiryDate)
}

// SubstanceMapping links a licence to a substance for a date window, with
// optional quantity caps.
type SubstanceMapping struct {
	ID                uuid.UUID
	LicenceID         uuid.UUID
	SubstanceCode     string
	EffectiveDate     time.Time
	ExpiryDate        *time.Time
	MaxPerTransaction *decimal.Decimal
	MaxPerPeriod      *decimal.Decimal
	Period            PeriodType
	CreatedAt         time.Time
}

// ActiveAt reports whether the mapping window includes asOf, inclusive on
// both ends.
func (m *SubstanceMapping) ActiveAt(asOf time.Time) bool {
	if asOf.Before(m.EffectiveDate) {
		return false
	}

	if m.ExpiryDate != nil && asOf.After(*m.ExpiryDate) {
		return false
	}

	return true
}

// RequiredActivities returns the licence activities a holder must be
// permitted for a substance of the given classification. The strictest tiers
// (Opium Act list I, precursor category 1) additionally require possession
// authorisation on top of distribution.
func RequiredActivities(c substance.Classification) []Activity {
	if !c.Valid() {
		return nil
	}

	if c.OpiumList == substance.OpiumListI || c.Precursor == substance.PrecursorCat1 {
		return []Activity{ActivityDistribute, ActivityPossess}
	}

	return []Activity{ActivityDistribute}
}
