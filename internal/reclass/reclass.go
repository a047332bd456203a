package reclass

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/substance"
)

var (
	ErrNotFound            = errors.New("reclassification not found")
	ErrImpactNotFound      = errors.New("customer impact not found")
	ErrNotPending          = errors.New("reclassification is not pending")
	ErrNoChange            = errors.New("reclassification changes nothing")
	ErrClassificationDrift = errors.New("previous values do not match current classification")
)

// Status is the lifecycle of a reclassification. Completed and Cancelled are
// terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Reclassification is a regulatory change of a substance's classification.
// The substance's stored classification is only ever changed by processing
// one of these.
type Reclassification struct {
	ID                  uuid.UUID
	SubstanceCode       string
	Previous            substance.Classification
	New                 substance.Classification
	EffectiveDate       time.Time
	RegulatoryReference string
	Authority           string
	Status              Status

	TotalAffectedCustomers int
	CustomersFlagged       int
	CustomersSufficient    int

	AnalyzedAt  *time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// CustomerImpact is one holder's licence-sufficiency verdict under the new
// classification. RequiresReQualification stays set until the holder is
// explicitly re-qualified, which also stamps ReQualificationDate.
type CustomerImpact struct {
	ID                      uuid.UUID
	ReclassificationID      uuid.UUID
	SubstanceCode           string
	Holder                  customer.HolderKey
	HasSufficientLicence    bool
	RequiresReQualification bool
	LicenceGapSummary       string
	ReQualificationDate     *time.Time
	CreatedAt               time.Time
	UpdatedAt               *time.Time
}

// Blocking reports whether this impact row currently blocks the holder from
// transacting in the substance.
func (i *CustomerImpact) Blocking() bool {
	return i.RequiresReQualification && i.ReQualificationDate == nil
}
