package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/licence"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, number, type_id, holder_account, jurisdiction,
// issuing_authority, issue_date, expiry_date, status, scope, created_at,
// updated_at
func scanLicence(s scanner) (*licence.Licence, error) {
	var l licence.Licence

	var statusStr string

	var scope sql.NullString

	if err := s.Scan(
		&l.ID, &l.Number, &l.TypeID, &l.Holder.Account, &l.Holder.Jurisdiction,
		&l.IssuingAuthority, &l.IssueDate, &l.ExpiryDate, &statusStr, &scope,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	l.Status = licence.Status(statusStr)
	l.Scope = scope.String

	return &l, nil
}

const selectLicenceColumns = `
	l.id, l.number, l.type_id, l.holder_account, l.jurisdiction,
	l.issuing_authority, l.issue_date, l.expiry_date, l.status, l.scope,
	l.created_at, l.updated_at
`

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*licence.Licence, error) {
	query := `SELECT ` + selectLicenceColumns + `
		FROM licences l
		WHERE l.id = $1`

	return s.getOne(ctx, query, id)
}

func (s *Store) GetByNumber(ctx context.Context, number string) (*licence.Licence, error) {
	query := `SELECT ` + selectLicenceColumns + `
		FROM licences l
		WHERE l.number = $1`

	return s.getOne(ctx, query, number)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*licence.Licence, error) {
	l, err := scanLicence(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, licence.ErrNotFound
		}

		return nil, fmt.Errorf("getting licence: %w", err)
	}

	return l, nil
}

func (s *Store) GetByHolder(ctx context.Context, holder customer.HolderKey) ([]*licence.Licence, error) {
	query := `SELECT ` + selectLicenceColumns + `
		FROM licences l
		WHERE l.holder_account = $1 AND l.jurisdiction = $2
		ORDER BY l.issue_date DESC`

	return s.queryLicences(ctx, query, holder.Account, holder.Jurisdiction)
}

// GetBySubstanceCode returns every licence that has ever been mapped to the
// substance. Impact analysis wants historical covers too, so no window filter
// here.
func (s *Store) GetBySubstanceCode(ctx context.Context, code string) ([]*licence.Licence, error) {
	query := `SELECT DISTINCT ` + selectLicenceColumns + `
		FROM licences l
		JOIN licence_substance_mappings m ON m.licence_id = l.id
		WHERE m.substance_code = $1
		ORDER BY l.id`

	return s.queryLicences(ctx, query, code)
}

func (s *Store) queryLicences(ctx context.Context, query string, args ...any) ([]*licence.Licence, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing licences: %w", err)
	}
	defer rows.Close()

	var licences []*licence.Licence

	for rows.Next() {
		l, err := scanLicence(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning licence: %w", err)
		}

		licences = append(licences, l)
	}

	return licences, rows.Err()
}

func (s *Store) GetType(ctx context.Context, id uuid.UUID) (*licence.Type, error) {
	query := `
		SELECT id, code, name, activities
		FROM licence_types
		WHERE id = $1
	`

	var t licence.Type

	var activities string

	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Code, &t.Name, &activities)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, licence.ErrTypeNotFound
		}

		return nil, fmt.Errorf("getting licence type: %w", err)
	}

	for _, a := range strings.Split(activities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			t.Activities = append(t.Activities, licence.Activity(a))
		}
	}

	return &t, nil
}

func (s *Store) CreateLicence(ctx context.Context, l *licence.Licence) error {
	query := `
		INSERT INTO licences (number, type_id, holder_account, jurisdiction, issuing_authority,
			issue_date, expiry_date, status, scope, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.Number,
		l.TypeID,
		l.Holder.Account,
		l.Holder.Jurisdiction,
		l.IssuingAuthority,
		l.IssueDate,
		l.ExpiryDate,
		l.Status,
		sql.NullString{String: l.Scope, Valid: l.Scope != ""},
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating licence: %w", err)
	}

	return nil
}

// Expected column order: id, licence_id, substance_code, effective_date,
// expiry_date, max_per_transaction, max_per_period, period, created_at
func scanMapping(s scanner) (*licence.SubstanceMapping, error) {
	var m licence.SubstanceMapping

	var period sql.NullString

	if err := s.Scan(
		&m.ID, &m.LicenceID, &m.SubstanceCode, &m.EffectiveDate,
		&m.ExpiryDate, &m.MaxPerTransaction, &m.MaxPerPeriod, &period,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.Period = licence.PeriodType(period.String)

	return &m, nil
}

const selectMappingColumns = `
	m.id, m.licence_id, m.substance_code, m.effective_date,
	m.expiry_date, m.max_per_transaction, m.max_per_period, m.period,
	m.created_at
`

func (s *Store) ActiveMappings(ctx context.Context, licenceID uuid.UUID) ([]*licence.SubstanceMapping, error) {
	query := `SELECT ` + selectMappingColumns + `
		FROM licence_substance_mappings m
		WHERE m.licence_id = $1
			AND m.effective_date <= NOW()
			AND (m.expiry_date IS NULL OR m.expiry_date >= NOW())
		ORDER BY m.substance_code ASC`

	return s.queryMappings(ctx, query, licenceID)
}

func (s *Store) MappingsForSubstance(ctx context.Context, licenceID uuid.UUID, substanceCode string) ([]*licence.SubstanceMapping, error) {
	query := `SELECT ` + selectMappingColumns + `
		FROM licence_substance_mappings m
		WHERE m.licence_id = $1 AND m.substance_code = $2
		ORDER BY m.effective_date DESC`

	return s.queryMappings(ctx, query, licenceID, substanceCode)
}

func (s *Store) queryMappings(ctx context.Context, query string, args ...any) ([]*licence.SubstanceMapping, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*licence.SubstanceMapping

	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}

		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}

func (s *Store) CreateMapping(ctx context.Context, m *licence.SubstanceMapping) error {
	query := `
		INSERT INTO licence_substance_mappings (licence_id, substance_code, effective_date,
			expiry_date, max_per_transaction, max_per_period, period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.LicenceID,
		m.SubstanceCode,
		m.EffectiveDate,
		m.ExpiryDate,
		m.MaxPerTransaction,
		m.MaxPerPeriod,
		sql.NullString{String: string(m.Period), Valid: m.Period != ""},
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
