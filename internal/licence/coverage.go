package licence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
)

//go:generate mockgen -source=coverage.go -destination=repository_mock.go -package=licence
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Licence, error)
	GetByNumber(ctx context.Context, number string) (*Licence, error)
	GetByHolder(ctx context.Context, holder customer.HolderKey) ([]*Licence, error)
	GetBySubstanceCode(ctx context.Context, code string) ([]*Licence, error)
	GetType(ctx context.Context, id uuid.UUID) (*Type, error)
	CreateLicence(ctx context.Context, l *Licence) error
	ActiveMappings(ctx context.Context, licenceID uuid.UUID) ([]*SubstanceMapping, error)
	MappingsForSubstance(ctx context.Context, licenceID uuid.UUID, substanceCode string) ([]*SubstanceMapping, error)
	CreateMapping(ctx context.Context, m *SubstanceMapping) error
}

// Coverage pairs a licence with the mapping that ties it to a substance.
// The licence is included even when it is not currently valid so callers can
// tell an expired or suspended cover apart from no cover at all.
type Coverage struct {
	Licence *Licence
	Mapping *SubstanceMapping
	Type    *Type
}

// CoverageService resolves which licences authorise a holder for a substance.
type CoverageService struct {
	repo Repository
}

func NewCoverageService(repo Repository) *CoverageService {
	return &CoverageService{repo: repo}
}

// IsSubstanceAuthorized reports whether a single licence covers the substance
// at asOf: the licence must be valid and carry an active mapping.
func (s *CoverageService) IsSubstanceAuthorized(ctx context.Context, licenceID uuid.UUID, substanceCode string, asOf time.Time) (bool, error) {
	lic, err := s.repo.GetByID(ctx, licenceID)
	if err != nil {
		return false, err
	}

	if !lic.ValidAt(asOf) {
		return false, nil
	}

	mappings, err := s.repo.MappingsForSubstance(ctx, licenceID, substanceCode)
	if err != nil {
		return false, fmt.Errorf("loading mappings: %w", err)
	}

	for _, m := range mappings {
		if m.ActiveAt(asOf) {
			return true, nil
		}
	}

	return false, nil
}

// FindCoveringLicences returns every licence of the holder that has an active
// substance mapping at asOf, whatever the licence status. Valid licences sort
// first, then later expiry dates (no expiry counts as latest).
func (s *CoverageService) FindCoveringLicences(ctx context.Context, holder customer.HolderKey, substanceCode string, asOf time.Time) ([]Coverage, error) {
	licences, err := s.repo.GetByHolder(ctx, holder)
	if err != nil {
		return nil, fmt.Errorf("loading holder licences: %w", err)
	}

	var covers []Coverage

	for _, lic := range licences {
		mappings, err := s.repo.MappingsForSubstance(ctx, lic.ID, substanceCode)
		if err != nil {
			return nil, fmt.Errorf("loading mappings for licence %s: %w", lic.Number, err)
		}

		for _, m := range mappings {
			if !m.ActiveAt(asOf) {
				continue
			}

			typ, err := s.repo.GetType(ctx, lic.TypeID)
			if err != nil {
				return nil, fmt.Errorf("loading type for licence %s: %w", lic.Number, err)
			}

			covers = append(covers, Coverage{Licence: lic, Mapping: m, Type: typ})

			break
		}
	}

	sort.SliceStable(covers, func(i, j int) bool {
		iv, jv := covers[i].Licence.ValidAt(asOf), covers[j].Licence.ValidAt(asOf)
		if iv != jv {
			return iv
		}

		ie, je := covers[i].Licence.ExpiryDate, covers[j].Licence.ExpiryDate
		if ie == nil || je == nil {
			return je != nil
		}

		return ie.After(*je)
	})

	return covers, nil
}

// HasSufficientLicence reports whether the holder has at least one valid,
// actively mapped licence whose type permits every required activity. When it
// does not, the returned gap list explains what each covering licence lacks.
func (s *CoverageService) HasSufficientLicence(ctx context.Context, holder customer.HolderKey, substanceCode string, asOf time.Time, required []Activity) (bool, []string, error) {
	covers, err := s.FindCoveringLicences(ctx, holder, substanceCode, asOf)
	if err != nil {
		return false, nil, err
	}

	if len(covers) == 0 {
		return false, []string{fmt.Sprintf("no licence covers substance %s", substanceCode)}, nil
	}

	var gaps []string

	for _, c := range covers {
		if !c.Licence.ValidAt(asOf) {
			gaps = append(gaps, fmt.Sprintf("licence %s is %s", c.Licence.Number, c.Licence.Status))
			continue
		}

		if !c.Type.PermitsAll(required) {
			gaps = append(gaps, fmt.Sprintf("licence %s (%s) does not permit %s", c.Licence.Number, c.Type.Code, missingActivities(c.Type, required)))
			continue
		}

		return true, nil, nil
	}

	return false, gaps, nil
}

func missingActivities(t *Type, required []Activity) string {
	var missing string

	for _, a := range required {
		if t.Permits(a) {
			continue
		}

		if missing != "" {
			missing += ", "
		}

		missing += string(a)
	}

	return missing
}

type CreateLicenceParams struct {
	Number           string
	TypeID           uuid.UUID
	Holder           customer.HolderKey
	IssuingAuthority string
	IssueDate        time.Time
	ExpiryDate       *time.Time
	Scope            string
}

// CreateLicence registers a licence after checking number uniqueness and the
// date window invariant.
func (s *CoverageService) CreateLicence(ctx context.Context, params CreateLicenceParams) (*Licence, error) {
	if params.ExpiryDate != nil && params.ExpiryDate.Before(params.IssueDate) {
		return nil, ErrInvalidWindow
	}

	existing, err := s.repo.GetByNumber(ctx, params.Number)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking licence number: %w", err)
	}

	if existing != nil {
		return nil, ErrDuplicateNumber
	}

	lic := &Licence{
		Number:           params.Number,
		TypeID:           params.TypeID,
		Holder:           params.Holder,
		IssuingAuthority: params.IssuingAuthority,
		IssueDate:        params.IssueDate,
		ExpiryDate:       params.ExpiryDate,
		Status:           StatusValid,
	}

	if err := s.repo.CreateLicence(ctx, lic); err != nil {
		return nil, err
	}

	return lic, nil
}

type MappingParams struct {
	LicenceID         uuid.UUID
	SubstanceCode     string
	EffectiveDate     time.Time
	ExpiryDate        *time.Time
	MaxPerTransaction *decimal.Decimal
	MaxPerPeriod      *decimal.Decimal
	Period            PeriodType
}

// AddMapping attaches a substance window to a licence. A second mapping with
// the same effective date for the same (licence, substance) pair is rejected
// so that at most one mapping can be active without ambiguity.
func (s *CoverageService) AddMapping(ctx context.Context, params MappingParams) (*SubstanceMapping, error) {
	if params.ExpiryDate != nil && params.ExpiryDate.Before(params.EffectiveDate) {
		return nil, ErrInvalidWindow
	}

	if _, err := s.repo.GetByID(ctx, params.LicenceID); err != nil {
		return nil, err
	}

	existing, err := s.repo.MappingsForSubstance(ctx, params.LicenceID, params.SubstanceCode)
	if err != nil {
		return nil, fmt.Errorf("checking existing mappings: %w", err)
	}

	for _, m := range existing {
		if m.EffectiveDate.Equal(params.EffectiveDate) {
			return nil, ErrDuplicateMapping
		}
	}

	m := &SubstanceMapping{
		LicenceID:         params.LicenceID,
		SubstanceCode:     params.SubstanceCode,
		EffectiveDate:     params.EffectiveDate,
		ExpiryDate:        params.ExpiryDate,
		MaxPerTransaction: params.MaxPerTransaction,
		MaxPerPeriod:      params.MaxPerPeriod,
		Period:            params.Period,
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}
