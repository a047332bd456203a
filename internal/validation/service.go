package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/metrics"
	"github.com/jmulders/veridose/internal/substance"
	"github.com/jmulders/veridose/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=deps_mock.go -package=validation
type CustomerLookup interface {
	GetByHolderKey(ctx context.Context, holder customer.HolderKey) (*customer.Customer, error)
}

type SubstanceLookup interface {
	GetBySubstanceCode(ctx context.Context, code string) (*substance.Substance, error)
}

// ClassificationResolver projects the effective classification of a substance
// at a point in time. Implemented by reclass.Resolver.
type ClassificationResolver interface {
	EffectiveClassification(ctx context.Context, code string, asOf time.Time) (substance.Classification, *uuid.UUID, error)
}

// CoverageResolver finds licences covering a holder for a substance.
// Implemented by licence.CoverageService.
type CoverageResolver interface {
	FindCoveringLicences(ctx context.Context, holder customer.HolderKey, substanceCode string, asOf time.Time) ([]licence.Coverage, error)
}

// ThresholdEvaluator flags quantity-limit breaches. Implemented by
// threshold.Evaluator.
type ThresholdEvaluator interface {
	Evaluate(ctx context.Context, tx *transaction.Transaction, customerCategory string, asOf time.Time) ([]transaction.Violation, error)
}

// BlockChecker reports substances a holder may not transact in because of an
// unresolved reclassification re-qualification. Implemented by
// reclass.Service.
type BlockChecker interface {
	BlockedSubstances(ctx context.Context, holder customer.HolderKey) (map[string]struct{}, error)
}

type Repository interface {
	Update(ctx context.Context, tx *transaction.Transaction) error
}

// Policy holds the configurable validation behaviour.
type Policy struct {
	// StrictActivityCheck turns a licence-type activity mismatch into an
	// overridable violation instead of a warning.
	StrictActivityCheck bool
}

// Result is the verdict of one validation pass.
type Result struct {
	Status           transaction.ValidationStatus
	Violations       []transaction.Violation
	Warnings         []transaction.Violation
	RequiresOverride bool
	CanProceed       bool
	LicenceUsages    []transaction.LicenceUsage
}

// Service runs the full compliance check pass over a transaction. Checks do
// not short-circuit: every applicable check runs and violations accumulate,
// so a caller sees the complete picture in one verdict.
type Service struct {
	customers  CustomerLookup
	substances SubstanceLookup
	resolver   ClassificationResolver
	coverage   CoverageResolver
	thresholds ThresholdEvaluator
	blocks     BlockChecker
	repo       Repository
	policy     Policy
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(
	customers CustomerLookup,
	substances SubstanceLookup,
	resolver ClassificationResolver,
	coverage CoverageResolver,
	thresholds ThresholdEvaluator,
	blocks BlockChecker,
	repo Repository,
	policy Policy,
	m *metrics.Metrics,
) *Service {
	return &Service{
		customers:  customers,
		substances: substances,
		resolver:   resolver,
		coverage:   coverage,
		thresholds: thresholds,
		blocks:     blocks,
		repo:       repo,
		policy:     policy,
		metrics:    m,
		now:        time.Now,
	}
}

// Validate produces a fresh verdict for the transaction and persists it.
// Re-validating is allowed and idempotent for unchanged inputs. Expected
// rule failures are reported in the Result, never as an error.
func (s *Service) Validate(ctx context.Context, tx *transaction.Transaction) (*Result, error) {
	if len(tx.Lines) == 0 {
		return nil, transaction.ErrNoLines
	}

	start := s.now()
	asOf := start

	var (
		violations []transaction.Violation
		warnings   []transaction.Violation
		usages     []transaction.LicenceUsage
	)

	cust, err := s.customers.GetByHolderKey(ctx, tx.Holder)
	if err != nil {
		if !errors.Is(err, customer.ErrNotFound) {
			return nil, fmt.Errorf("looking up customer %s: %w", tx.Holder, err)
		}

		violations = append(violations, transaction.Violation{
			Code:        CodeCustomerNotFound,
			Message:     fmt.Sprintf("customer %s is not registered", tx.Holder),
			Overridable: false,
		})
	}

	blocked := map[string]struct{}{}

	if cust != nil {
		if cust.Suspended {
			msg := fmt.Sprintf("customer %s is suspended", tx.Holder)
			if cust.SuspensionReason != "" {
				msg += ": " + cust.SuspensionReason
			}

			violations = append(violations, transaction.Violation{
				Code:        CodeCustomerSuspended,
				Message:     msg,
				Overridable: false,
			})
		}

		if cust.ApprovalStatus != customer.ApprovalApproved {
			violations = append(violations, transaction.Violation{
				Code:        CodeCustomerNotApproved,
				Message:     fmt.Sprintf("customer %s has approval status %s", tx.Holder, cust.ApprovalStatus),
				Overridable: true,
			})
		}

		blocked, err = s.blocks.BlockedSubstances(ctx, tx.Holder)
		if err != nil {
			return nil, fmt.Errorf("checking reclassification blocks for %s: %w", tx.Holder, err)
		}
	}

	for _, line := range tx.Lines {
		lineViolations, lineWarnings, usage, err := s.checkLine(ctx, tx, line, blocked, asOf)
		if err != nil {
			return nil, err
		}

		violations = append(violations, lineViolations...)
		warnings = append(warnings, lineWarnings...)

		if usage != nil {
			usages = append(usages, *usage)
		}
	}

	category := ""
	if cust != nil {
		category = cust.BusinessCategory
	}

	breaches, err := s.thresholds.Evaluate(ctx, tx, category, asOf)
	if err != nil {
		return nil, fmt.Errorf("evaluating thresholds: %w", err)
	}

	violations = append(violations, breaches...)

	result := s.applyVerdict(tx, violations, warnings, usages, asOf)

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.metrics.ObserveVerdict(string(result.Status))
	s.metrics.ObserveValidationDuration(s.now().Sub(start))

	for _, v := range violations {
		s.metrics.ObserveViolation(v.Code)
	}

	return result, nil
}

func (s *Service) checkLine(ctx context.Context, tx *transaction.Transaction, line transaction.Line, blocked map[string]struct{}, asOf time.Time) ([]transaction.Violation, []transaction.Violation, *transaction.LicenceUsage, error) {
	var violations, warnings []transaction.Violation

	sub, err := s.substances.GetBySubstanceCode(ctx, line.SubstanceCode)
	if err != nil {
		if !errors.Is(err, substance.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("looking up substance %s: %w", line.SubstanceCode, err)
		}

		// Without the substance the classification is unknowable, so no
		// further line checks make sense.
		violations = append(violations, transaction.Violation{
			Code:        CodeSubstanceNotFound,
			Message:     fmt.Sprintf("substance %s is not in the catalogue", line.SubstanceCode),
			Overridable: false,
		})

		return violations, nil, nil, nil
	}

	if !sub.Active {
		violations = append(violations, transaction.Violation{
			Code:        CodeSubstanceInactive,
			Message:     fmt.Sprintf("substance %s is no longer traded", sub.Code),
			Overridable: false,
		})
	}

	if _, isBlocked := blocked[line.SubstanceCode]; isBlocked {
		violations = append(violations, transaction.Violation{
			Code:        CodeReQualificationRequired,
			Message:     fmt.Sprintf("customer requires re-qualification for %s after reclassification", line.SubstanceCode),
			Overridable: true,
		})
	}

	// The activity requirement follows the classification in force right now,
	// which a completed reclassification may have moved away from the stored
	// catalogue value.
	cls, _, err := s.resolver.EffectiveClassification(ctx, line.SubstanceCode, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving classification for %s: %w", line.SubstanceCode, err)
	}

	required := requiredActivities(cls, tx.Direction)

	covers, err := s.coverage.FindCoveringLicences(ctx, tx.Holder, line.SubstanceCode, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving coverage for %s: %w", line.SubstanceCode, err)
	}

	if len(covers) == 0 {
		violations = append(violations, transaction.Violation{
			Code:        CodeLicenceMissing,
			Message:     fmt.Sprintf("no licence covers substance %s", line.SubstanceCode),
			Overridable: true,
		})

		return violations, warnings, nil, nil
	}

	for _, c := range covers {
		if !c.Licence.ValidAt(asOf) {
			continue
		}

		usage := &transaction.LicenceUsage{
			SubstanceCode: line.SubstanceCode,
			LicenceID:     c.Licence.ID,
			LicenceNumber: c.Licence.Number,
		}

		if mismatch := activityMismatch(c, required); mismatch != nil {
			if s.policy.StrictActivityCheck {
				violations = append(violations, *mismatch)
			} else {
				warnings = append(warnings, *mismatch)
			}
		}

		return violations, warnings, usage, nil
	}

	// Covering licences exist but none is valid. Report the most severe
	// condition among them; suspension and revocation are hard stops.
	violations = append(violations, coverFailure(covers, line.SubstanceCode))

	return violations, warnings, nil, nil
}

// requiredActivities is the union of what the classification demands and what
// the transaction direction implies.
func requiredActivities(cls substance.Classification, dir transaction.Direction) []licence.Activity {
	required := licence.RequiredActivities(cls)

	directional := licence.ActivityDistribute
	if dir == transaction.DirectionInbound {
		directional = licence.ActivityPossess
	}

	for _, a := range required {
		if a == directional {
			return required
		}
	}

	return append(required, directional)
}

func activityMismatch(c licence.Coverage, required []licence.Activity) *transaction.Violation {
	for _, a := range required {
		if !c.Type.Permits(a) {
			return &transaction.Violation{
				Code:        CodeLicenceActivityMismatch,
				Message:     fmt.Sprintf("licence %s (%s) does not permit %s", c.Licence.Number, c.Type.Code, a),
				Overridable: true,
			}
		}
	}

	return nil
}

func coverFailure(covers []licence.Coverage, substanceCode string) transaction.Violation {
	var expired *licence.Licence

	for _, c := range covers {
		switch c.Licence.Status {
		case licence.StatusSuspended:
			return transaction.Violation{
				Code:        CodeLicenceSuspended,
				Message:     fmt.Sprintf("licence %s covering %s is suspended", c.Licence.Number, substanceCode),
				Overridable: false,
			}
		case licence.StatusRevoked:
			return transaction.Violation{
				Code:        CodeLicenceRevoked,
				Message:     fmt.Sprintf("licence %s covering %s is revoked", c.Licence.Number, substanceCode),
				Overridable: false,
			}
		default:
			if expired == nil {
				expired = c.Licence
			}
		}
	}

	return transaction.Violation{
		Code:        CodeLicenceExpired,
		Message:     fmt.Sprintf("licence %s covering %s has expired", expired.Number, substanceCode),
		Overridable: true,
	}
}

func (s *Service) applyVerdict(tx *transaction.Transaction, violations, warnings []transaction.Violation, usages []transaction.LicenceUsage, asOf time.Time) *Result {
	status := transaction.ValidationFailed
	if len(violations) == 0 {
		status = transaction.ValidationPassed
	}

	requiresOverride := len(violations) > 0

	for _, v := range violations {
		if !v.Overridable {
			requiresOverride = false
			break
		}
	}

	tx.ValidationStatus = status
	tx.RequiresOverride = requiresOverride
	tx.Violations = violations
	tx.LicenceUsages = usages
	tx.ValidatedAt = &asOf

	// Only a verdict can open the override workflow, and only from a clean
	// state: Approved and Rejected are terminal.
	switch {
	case requiresOverride && tx.OverrideStatus == transaction.OverrideNone:
		tx.OverrideStatus = transaction.OverridePending
	case status == transaction.ValidationPassed && tx.OverrideStatus == transaction.OverridePending:
		tx.OverrideStatus = transaction.OverrideNone
	}

	return &Result{
		Status:           status,
		Violations:       violations,
		Warnings:         warnings,
		RequiresOverride: requiresOverride,
		CanProceed:       status == transaction.ValidationPassed || tx.OverrideStatus == transaction.OverrideApproved,
		LicenceUsages:    usages,
	}
}
