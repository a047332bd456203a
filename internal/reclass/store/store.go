package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/reclass"
	"github.com/jmulders/veridose/internal/substance"
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

// Expected column order: id, substance_code, previous_opium_list,
// previous_precursor, new_opium_list, new_precursor, effective_date,
// regulatory_reference, authority, status, total_affected_customers,
// customers_flagged, customers_sufficient, analyzed_at, processed_at,
// created_at, updated_at
func scanReclassification(s scanner) (*reclass.Reclassification, error) {
	var r reclass.Reclassification

	var prevOpium, prevPrecursor, newOpium, newPrecursor, statusStr string

	var reference, authority sql.NullString

	if err := s.Scan(
		&r.ID, &r.SubstanceCode, &prevOpium, &prevPrecursor, &newOpium, &newPrecursor,
		&r.EffectiveDate, &reference, &authority, &statusStr,
		&r.TotalAffectedCustomers, &r.CustomersFlagged, &r.CustomersSufficient,
		&r.AnalyzedAt, &r.ProcessedAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Previous = substance.Classification{
		OpiumList: substance.OpiumList(prevOpium),
		Precursor: substance.PrecursorCategory(prevPrecursor),
	}
	r.New = substance.Classification{
		OpiumList: substance.OpiumList(newOpium),
		Precursor: substance.PrecursorCategory(newPrecursor),
	}
	r.RegulatoryReference = reference.String
	r.Authority = authority.String
	r.Status = reclass.Status(statusStr)

	return &r, nil
}

const selectReclassificationColumns = `
	r.id, r.substance_code, r.previous_opium_list, r.previous_precursor,
	r.new_opium_list, r.new_precursor, r.effective_date,
	r.regulatory_reference, r.authority, r.status,
	r.total_affected_customers, r.customers_flagged, r.customers_sufficient,
	r.analyzed_at, r.processed_at, r.created_at, r.updated_at
`

func (s *Store) Create(ctx context.Context, r *reclass.Reclassification) error {
	query := `
		INSERT INTO reclassifications (substance_code, previous_opium_list, previous_precursor,
			new_opium_list, new_precursor, effective_date, regulatory_reference, authority,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.SubstanceCode,
		r.Previous.OpiumList,
		r.Previous.Precursor,
		r.New.OpiumList,
		r.New.Precursor,
		r.EffectiveDate,
		sql.NullString{String: r.RegulatoryReference, Valid: r.RegulatoryReference != ""},
		sql.NullString{String: r.Authority, Valid: r.Authority != ""},
		r.Status,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating reclassification: %w", err)
	}

	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*reclass.Reclassification, error) {
	query := `SELECT ` + selectReclassificationColumns + `
		FROM reclassifications r
		WHERE r.id = $1`

	r, err := scanReclassification(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reclass.ErrNotFound
		}

		return nil, fmt.Errorf("getting reclassification: %w", err)
	}

	return r, nil
}

func (s *Store) Update(ctx context.Context, r *reclass.Reclassification) error {
	query := `
		UPDATE reclassifications
		SET status = $1, total_affected_customers = $2, customers_flagged = $3,
			customers_sufficient = $4, analyzed_at = $5, processed_at = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.Status,
		r.TotalAffectedCustomers,
		r.CustomersFlagged,
		r.CustomersSufficient,
		r.AnalyzedAt,
		r.ProcessedAt,
		r.ID,
	).Scan(&r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return reclass.ErrNotFound
		}

		return fmt.Errorf("updating reclassification: %w", err)
	}

	return nil
}

func (s *Store) GetByCode(ctx context.Context, substanceCode string) ([]*reclass.Reclassification, error) {
	query := `SELECT ` + selectReclassificationColumns + `
		FROM reclassifications r
		WHERE r.substance_code = $1
		ORDER BY r.effective_date DESC, r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, substanceCode)
	if err != nil {
		return nil, fmt.Errorf("listing reclassifications: %w", err)
	}
	defer rows.Close()

	var recs []*reclass.Reclassification

	for rows.Next() {
		r, err := scanReclassification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reclassification: %w", err)
		}

		recs = append(recs, r)
	}

	return recs, rows.Err()
}

// EffectiveAt returns the completed reclassification with the latest effective
// date on or before asOf, ties broken by latest creation time.
func (s *Store) EffectiveAt(ctx context.Context, substanceCode string, asOf time.Time) (*reclass.Reclassification, error) {
	query := `SELECT ` + selectReclassificationColumns + `
		FROM reclassifications r
		WHERE r.substance_code = $1 AND r.status = 'completed' AND r.effective_date <= $2
		ORDER BY r.effective_date DESC, r.created_at DESC
		LIMIT 1`

	r, err := scanReclassification(s.db.QueryRowContext(ctx, query, substanceCode, asOf))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reclass.ErrNotFound
		}

		return nil, fmt.Errorf("getting effective reclassification: %w", err)
	}

	return r, nil
}

// Expected column order: id, reclassification_id, substance_code,
// customer_account, jurisdiction, has_sufficient_licence,
// requires_requalification, licence_gap_summary, requalification_date,
// created_at, updated_at
func scanImpact(s scanner) (*reclass.CustomerImpact, error) {
	var i reclass.CustomerImpact

	var gaps sql.NullString

	if err := s.Scan(
		&i.ID, &i.ReclassificationID, &i.SubstanceCode,
		&i.Holder.Account, &i.Holder.Jurisdiction, &i.HasSufficientLicence,
		&i.RequiresReQualification, &gaps, &i.ReQualificationDate,
		&i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}

	i.LicenceGapSummary = gaps.String

	return &i, nil
}

const selectImpactColumns = `
	i.id, i.reclassification_id, i.substance_code,
	i.customer_account, i.jurisdiction, i.has_sufficient_licence,
	i.requires_requalification, i.licence_gap_summary, i.requalification_date,
	i.created_at, i.updated_at
`

// CreateImpacts writes the full impact ledger of one analysis atomically.
func (s *Store) CreateImpacts(ctx context.Context, impacts []*reclass.CustomerImpact) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO reclassification_impacts (reclassification_id, substance_code,
			customer_account, jurisdiction, has_sufficient_licence, requires_requalification,
			licence_gap_summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, i := range impacts {
		err := dbTx.QueryRowContext(ctx, query,
			i.ReclassificationID,
			i.SubstanceCode,
			i.Holder.Account,
			i.Holder.Jurisdiction,
			i.HasSufficientLicence,
			i.RequiresReQualification,
			sql.NullString{String: i.LicenceGapSummary, Valid: i.LicenceGapSummary != ""},
		).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating impact: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListImpacts(ctx context.Context, reclassificationID uuid.UUID) ([]*reclass.CustomerImpact, error) {
	query := `SELECT ` + selectImpactColumns + `
		FROM reclassification_impacts i
		WHERE i.reclassification_id = $1
		ORDER BY i.jurisdiction ASC, i.customer_account ASC`

	return s.queryImpacts(ctx, query, reclassificationID)
}

func (s *Store) GetImpact(ctx context.Context, reclassificationID uuid.UUID, holder customer.HolderKey) (*reclass.CustomerImpact, error) {
	query := `SELECT ` + selectImpactColumns + `
		FROM reclassification_impacts i
		WHERE i.reclassification_id = $1 AND i.customer_account = $2 AND i.jurisdiction = $3`

	i, err := scanImpact(s.db.QueryRowContext(ctx, query, reclassificationID, holder.Account, holder.Jurisdiction))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reclass.ErrImpactNotFound
		}

		return nil, fmt.Errorf("getting impact: %w", err)
	}

	return i, nil
}

func (s *Store) UpdateImpact(ctx context.Context, impact *reclass.CustomerImpact) error {
	query := `
		UPDATE reclassification_impacts
		SET has_sufficient_licence = $1, requires_requalification = $2,
			licence_gap_summary = $3, requalification_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		impact.HasSufficientLicence,
		impact.RequiresReQualification,
		sql.NullString{String: impact.LicenceGapSummary, Valid: impact.LicenceGapSummary != ""},
		impact.ReQualificationDate,
		impact.ID,
	).Scan(&impact.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return reclass.ErrImpactNotFound
		}

		return fmt.Errorf("updating impact: %w", err)
	}

	return nil
}

// ListBlockingImpactsByHolder returns impact rows that still require
// re-qualification and belong to a completed reclassification. Pending or
// cancelled reclassifications never block a customer.
func (s *Store) ListBlockingImpactsByHolder(ctx context.Context, holder customer.HolderKey) ([]*reclass.CustomerImpact, error) {
	query := `SELECT ` + selectImpactColumns + `
		FROM reclassification_impacts i
		JOIN reclassifications r ON r.id = i.reclassification_id
		WHERE i.customer_account = $1 AND i.jurisdiction = $2
			AND i.requires_requalification
			AND r.status = 'completed'
		ORDER BY i.created_at ASC`

	return s.queryImpacts(ctx, query, holder.Account, holder.Jurisdiction)
}

func (s *Store) ListImpactsRequiringReQualification(ctx context.Context) ([]*reclass.CustomerImpact, error) {
	query := `SELECT ` + selectImpactColumns + `
		FROM reclassification_impacts i
		WHERE i.requires_requalification
		ORDER BY i.created_at ASC`

	return s.queryImpacts(ctx, query)
}

func (s *Store) queryImpacts(ctx context.Context, query string, args ...any) ([]*reclass.CustomerImpact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing impacts: %w", err)
	}
	defer rows.Close()

	var impacts []*reclass.CustomerImpact

	for rows.Next() {
		i, err := scanImpact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning impact: %w", err)
		}

		impacts = append(impacts, i)
	}

	return impacts, rows.Err()
}
