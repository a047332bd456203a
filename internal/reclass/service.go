package reclass

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/metrics"
	"github.com/jmulders/veridose/internal/substance"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=reclass
type Repository interface {
	EffectiveLookup
	Create(ctx context.Context, rec *Reclassification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reclassification, error)
	Update(ctx context.Context, rec *Reclassification) error
	GetByCode(ctx context.Context, substanceCode string) ([]*Reclassification, error)

	CreateImpacts(ctx context.Context, impacts []*CustomerImpact) error
	ListImpacts(ctx context.Context, reclassificationID uuid.UUID) ([]*CustomerImpact, error)
	GetImpact(ctx context.Context, reclassificationID uuid.UUID, holder customer.HolderKey) (*CustomerImpact, error)
	UpdateImpact(ctx context.Context, impact *CustomerImpact) error
	ListBlockingImpactsByHolder(ctx context.Context, holder customer.HolderKey) ([]*CustomerImpact, error)
	ListImpactsRequiringReQualification(ctx context.Context) ([]*CustomerImpact, error)
}

// SubstanceRepository is the write side of the substance catalogue. The
// classification column is only ever written through ProcessReclassification.
type SubstanceRepository interface {
	GetBySubstanceCode(ctx context.Context, code string) (*substance.Substance, error)
	UpdateClassification(ctx context.Context, code string, c substance.Classification) error
}

// LicenceLookup finds the licences referencing a substance.
type LicenceLookup interface {
	GetBySubstanceCode(ctx context.Context, code string) ([]*licence.Licence, error)
}

// SufficiencyChecker evaluates whether a holder's licences are adequate for a
// set of required activities. Implemented by licence.CoverageService.
type SufficiencyChecker interface {
	HasSufficientLicence(ctx context.Context, holder customer.HolderKey, substanceCode string, asOf time.Time, required []licence.Activity) (bool, []string, error)
}

// Service creates, analyzes, and processes substance reclassifications and
// maintains the customer impact ledger.
type Service struct {
	repo       Repository
	substances SubstanceRepository
	licences   LicenceLookup
	coverage   SufficiencyChecker
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(repo Repository, substances SubstanceRepository, licences LicenceLookup, coverage SufficiencyChecker, m *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		substances: substances,
		licences:   licences,
		coverage:   coverage,
		metrics:    m,
		now:        time.Now,
	}
}

type CreateParams struct {
	SubstanceCode       string
	Previous            substance.Classification
	New                 substance.Classification
	EffectiveDate       time.Time
	RegulatoryReference string
	Authority           string
}

// Create registers a reclassification in pending state. The caller's view of
// the previous classification must match the stored one, which guards against
// concurrent edits having moved the substance since the record was drafted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Reclassification, error) {
	sub, err := s.substances.GetBySubstanceCode(ctx, params.SubstanceCode)
	if err != nil {
		return nil, err
	}

	if !params.Previous.Equal(sub.Classification) {
		return nil, fmt.Errorf("%w: substance %s is currently %s/%s",
			ErrClassificationDrift, sub.Code, sub.Classification.OpiumList, sub.Classification.Precursor)
	}

	if params.New.Equal(sub.Classification) {
		return nil, ErrNoChange
	}

	if !params.New.Valid() {
		return nil, fmt.Errorf("%w: both dimensions are none", ErrNoChange)
	}

	rec := &Reclassification{
		SubstanceCode:       params.SubstanceCode,
		Previous:            params.Previous,
		New:                 params.New,
		EffectiveDate:       params.EffectiveDate,
		RegulatoryReference: params.RegulatoryReference,
		Authority:           params.Authority,
		Status:              StatusPending,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reclassification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCode(ctx context.Context, code string) ([]*Reclassification, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) ListImpacts(ctx context.Context, id uuid.UUID) ([]*CustomerImpact, error) {
	return s.repo.ListImpacts(ctx, id)
}

// AnalyzeImpact walks every licence referencing the substance and evaluates
// each distinct holder's sufficiency as if the new classification were
// already in force. Running it twice returns the existing ledger.
func (s *Service) AnalyzeImpact(ctx context.Context, id uuid.UUID) ([]*CustomerImpact, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.AnalyzedAt != nil {
		return s.repo.ListImpacts(ctx, id)
	}

	licences, err := s.licences.GetBySubstanceCode(ctx, rec.SubstanceCode)
	if err != nil {
		return nil, fmt.Errorf("loading licences for %s: %w", rec.SubstanceCode, err)
	}

	holders := distinctHolders(licences)
	required := licence.RequiredActivities(rec.New)
	asOf := s.now()

	var (
		mu      sync.Mutex
		impacts = make([]*CustomerImpact, 0, len(holders))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, holder := range holders {
		holder := holder
		g.Go(func() error {
			sufficient, gaps, err := s.coverage.HasSufficientLicence(gctx, holder, rec.SubstanceCode, asOf, required)
			if err != nil {
				return fmt.Errorf("evaluating holder %s: %w", holder, err)
			}

			impact := &CustomerImpact{
				ReclassificationID:      rec.ID,
				SubstanceCode:           rec.SubstanceCode,
				Holder:                  holder,
				HasSufficientLicence:    sufficient,
				RequiresReQualification: !sufficient,
				LicenceGapSummary:       joinGaps(gaps),
			}

			mu.Lock()
			impacts = append(impacts, impact)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateImpacts(ctx, impacts); err != nil {
		return nil, fmt.Errorf("persisting impact ledger: %w", err)
	}

	rec.TotalAffectedCustomers = len(impacts)

	for _, i := range impacts {
		if i.RequiresReQualification {
			rec.CustomersFlagged++
		} else {
			rec.CustomersSufficient++
		}
	}

	now := s.now()
	rec.AnalyzedAt = &now

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating reclassification totals: %w", err)
	}

	s.metrics.ObserveCustomersFlagged(rec.CustomersFlagged)

	return impacts, nil
}

// Process applies the reclassification: it runs impact analysis when that has
// not happened yet, writes the new classification to the substance record,
// and completes the reclassification. This is the single mutating step, so a
// resolver can never observe a half-applied change.
func (s *Service) Process(ctx context.Context, id uuid.UUID) (*Reclassification, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.Status != StatusPending {
		return nil, fmt.Errorf("%w: already in status %s", ErrNotPending, rec.Status)
	}

	rec.Status = StatusProcessing
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	if rec.AnalyzedAt == nil {
		if _, err := s.AnalyzeImpact(ctx, rec.ID); err != nil {
			return nil, err
		}

		rec, err = s.repo.GetByID(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.substances.UpdateClassification(ctx, rec.SubstanceCode, rec.New); err != nil {
		return nil, fmt.Errorf("applying classification to %s: %w", rec.SubstanceCode, err)
	}

	now := s.now()
	rec.Status = StatusCompleted
	rec.ProcessedAt = &now

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.metrics.ObserveReclassificationProcessed()

	return rec, nil
}

// Cancel terminally cancels a pending reclassification without touching the
// substance.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Reclassification, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.Status != StatusPending {
		return nil, fmt.Errorf("%w: already in status %s", ErrNotPending, rec.Status)
	}

	rec.Status = StatusCancelled
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// CheckCustomerBlocked reports whether any impact row still requires
// re-qualification for the holder, along with the rows themselves.
func (s *Service) CheckCustomerBlocked(ctx context.Context, holder customer.HolderKey) (bool, []*CustomerImpact, error) {
	impacts, err := s.repo.ListBlockingImpactsByHolder(ctx, holder)
	if err != nil {
		return false, nil, err
	}

	return len(impacts) > 0, impacts, nil
}

// BlockedSubstances returns the substance codes the holder may not transact
// in until re-qualified. Consumed by the transaction validator.
func (s *Service) BlockedSubstances(ctx context.Context, holder customer.HolderKey) (map[string]struct{}, error) {
	impacts, err := s.repo.ListBlockingImpactsByHolder(ctx, holder)
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]struct{}, len(impacts))
	for _, i := range impacts {
		blocked[i.SubstanceCode] = struct{}{}
	}

	return blocked, nil
}

// MarkReQualified clears a holder's re-qualification flag for one
// reclassification. This is the only path that unblocks a flagged customer
// without an override.
func (s *Service) MarkReQualified(ctx context.Context, reclassificationID uuid.UUID, holder customer.HolderKey) (*CustomerImpact, error) {
	impact, err := s.repo.GetImpact(ctx, reclassificationID, holder)
	if err != nil {
		return nil, err
	}

	now := s.now()
	impact.RequiresReQualification = false
	impact.HasSufficientLicence = true
	impact.ReQualificationDate = &now

	if err := s.repo.UpdateImpact(ctx, impact); err != nil {
		return nil, err
	}

	return impact, nil
}

// PendingReQualification lists all impact rows still awaiting
// re-qualification, for operator work queues.
func (s *Service) PendingReQualification(ctx context.Context) ([]*CustomerImpact, error) {
	return s.repo.ListImpactsRequiringReQualification(ctx)
}

func distinctHolders(licences []*licence.Licence) []customer.HolderKey {
	seen := make(map[customer.HolderKey]struct{}, len(licences))

	var holders []customer.HolderKey

	for _, l := range licences {
		if _, ok := seen[l.Holder]; ok {
			continue
		}

		seen[l.Holder] = struct{}{}
		holders = append(holders, l.Holder)
	}

	return holders
}

func joinGaps(gaps []string) string {
	var out string

	for i, g := range gaps {
		if i > 0 {
			out += "; "
		}

		out += g
	}

	return out
}
