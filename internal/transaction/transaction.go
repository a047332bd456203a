package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrNoLines         = errors.New("transaction has no lines")
	ErrVersionConflict = errors.New("transaction was modified concurrently")
)

// Direction distinguishes goods coming in from goods going out.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ValidationStatus is the verdict state of a transaction.
type ValidationStatus string

const (
	ValidationPending ValidationStatus = "pending"
	ValidationPassed  ValidationStatus = "passed"
	ValidationFailed  ValidationStatus = "failed"
)

// OverrideStatus tracks the exception workflow for overridable failures.
// None -> Pending happens only as a side effect of validation; Approved and
// Rejected are terminal.
type OverrideStatus string

const (
	OverrideNone     OverrideStatus = "none"
	OverridePending  OverrideStatus = "pending"
	OverrideApproved OverrideStatus = "approved"
	OverrideRejected OverrideStatus = "rejected"
)

// Line is a single substance position on a transaction.
type Line struct {
	SubstanceCode string          `json:"substance_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// Violation is a single failed compliance check. Overridable violations can
// be cleared through the override workflow; non-overridable ones are
// terminal.
type Violation struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Overridable bool   `json:"overridable"`
}

// LicenceUsage records which licence covered which line during validation.
type LicenceUsage struct {
	SubstanceCode string    `json:"substance_code"`
	LicenceID     uuid.UUID `json:"licence_id"`
	LicenceNumber string    `json:"licence_number"`
}

// Transaction is a controlled-substance order under compliance review.
type Transaction struct {
	ID               uuid.UUID
	Reference        string
	Holder           customer.HolderKey
	Direction        Direction
	Lines            []Line
	ValidationStatus ValidationStatus
	RequiresOverride bool
	OverrideStatus   OverrideStatus
	OverrideActor    string
	OverrideReason   string
	OverrideAt       *time.Time
	Violations       []Violation
	LicenceUsages    []LicenceUsage
	Version          int64
	ValidatedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// HasNonOverridableViolation reports whether any recorded violation is a hard
// stop.
func (t *Transaction) HasNonOverridableViolation() bool {
	for _, v := range t.Violations {
		if !v.Overridable {
			return true
		}
	}

	return false
}
