package validation

// Violation codes raised by the validator. Threshold breach codes live in
// the threshold package since the evaluator constructs those violations
// itself.
const (
	CodeCustomerNotFound        = "CUSTOMER_NOT_FOUND"
	CodeCustomerSuspended       = "CUSTOMER_SUSPENDED"
	CodeCustomerNotApproved     = "CUSTOMER_NOT_APPROVED"
	CodeReQualificationRequired = "CUSTOMER_REQUALIFICATION_REQUIRED"

	CodeSubstanceNotFound = "SUBSTANCE_NOT_FOUND"
	CodeSubstanceInactive = "SUBSTANCE_INACTIVE"

	CodeLicenceMissing          = "LICENCE_MISSING"
	CodeLicenceExpired          = "LICENCE_EXPIRED"
	CodeLicenceSuspended        = "LICENCE_SUSPENDED"
	CodeLicenceRevoked          = "LICENCE_REVOKED"
	CodeLicenceActivityMismatch = "LICENCE_ACTIVITY_MISMATCH"
)
