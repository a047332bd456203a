package override

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/metrics"
	"github.com/jmulders/veridose/internal/transaction"
)

var (
	// ErrNotRequired means the transaction has no override to decide on.
	ErrNotRequired = errors.New("transaction does not require an override")

	// ErrNotPending means the override was already decided.
	ErrNotPending = errors.New("override is not pending")

	ErrJustificationRequired = errors.New("justification is required")
	ErrReasonRequired        = errors.New("rejection reason is required")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=override
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	Update(ctx context.Context, tx *transaction.Transaction) error
	ListPendingOverride(ctx context.Context) ([]*transaction.Transaction, error)
}

// Service decides pending overrides. Approval and rejection are terminal: a
// later re-validation may change the verdict but never reopens a decision.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m, now: time.Now}
}

// ListPending returns the transactions awaiting an override decision.
func (s *Service) ListPending(ctx context.Context) ([]*transaction.Transaction, error) {
	return s.repo.ListPendingOverride(ctx)
}

// Approve clears the transaction to proceed despite its violations. The
// justification is mandatory and recorded with the decider for audit.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, actor, justification string) (*transaction.Transaction, error) {
	if justification == "" {
		return nil, ErrJustificationRequired
	}

	return s.decide(ctx, id, transaction.OverrideApproved, actor, justification)
}

// Reject confirms the failure. The reason is mandatory.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, actor, reason string) (*transaction.Transaction, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	return s.decide(ctx, id, transaction.OverrideRejected, actor, reason)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, decision transaction.OverrideStatus, actor, reason string) (*transaction.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch tx.OverrideStatus {
	case transaction.OverridePending:
	case transaction.OverrideNone:
		return nil, ErrNotRequired
	default:
		return nil, fmt.Errorf("%w: already %s", ErrNotPending, tx.OverrideStatus)
	}

	if tx.HasNonOverridableViolation() {
		return nil, fmt.Errorf("%w: transaction has non-overridable violations", ErrNotRequired)
	}

	now := s.now()
	tx.OverrideStatus = decision
	tx.OverrideActor = actor
	tx.OverrideReason = reason
	tx.OverrideAt = &now

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.metrics.ObserveOverrideDecision(string(decision))

	return tx, nil
}
