package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// Update persists all mutable fields and bumps the version column. It
	// returns ErrVersionConflict when the row changed since the read.
	Update(ctx context.Context, tx *Transaction) error
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ListPendingOverride(ctx context.Context) ([]*Transaction, error)
	// SumQuantityInPeriod totals validated quantities of a substance for a
	// holder between from and to, both inclusive. Used for rolling-period
	// threshold checks.
	SumQuantityInPeriod(ctx context.Context, holder customer.HolderKey, substanceCode string, from, to time.Time) (decimal.Decimal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Reference string
	Holder    customer.HolderKey
	Direction Direction
	Lines     []Line
}

type ListFilter struct {
	Status *ValidationStatus
	Holder *customer.HolderKey
}

// Create registers a transaction in pending state. A transaction without
// lines is invalid input and never enters the pipeline.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if len(params.Lines) == 0 {
		return nil, ErrNoLines
	}

	tx := &Transaction{
		Reference:        params.Reference,
		Holder:           params.Holder,
		Direction:        params.Direction,
		Lines:            params.Lines,
		ValidationStatus: ValidationPending,
		OverrideStatus:   OverrideNone,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.List(ctx, filter)
}
