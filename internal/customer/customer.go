package customer

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("customer not found")

// HolderKey identifies a customer across master-data and compliance storage.
// There is no surrogate id that is authoritative in both systems, so the
// account/jurisdiction tuple is the key everywhere.
type HolderKey struct {
	Account      string
	Jurisdiction string
}

func (k HolderKey) String() string {
	return fmt.Sprintf("%s/%s", k.Account, k.Jurisdiction)
}

func (k HolderKey) IsZero() bool {
	return k.Account == "" && k.Jurisdiction == ""
}

// ApprovalStatus represents the onboarding state of a customer.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Customer is the compliance view of a trading partner.
type Customer struct {
	Holder           HolderKey
	Name             string
	ApprovalStatus   ApprovalStatus
	Suspended        bool
	SuspensionReason string
	BusinessCategory string
	GDPQualified     bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
