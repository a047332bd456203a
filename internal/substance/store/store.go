package store

import (
	"context"
	"database/sql"
	"fmt"

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

// Expected column order: code, name, opium_list, precursor_category, active,
// created_at, updated_at
func scanSubstance(s scanner) (*substance.Substance, error) {
	var sub substance.Substance

	var opiumStr, precursorStr string

	if err := s.Scan(
		&sub.Code, &sub.Name, &opiumStr, &precursorStr, &sub.Active,
		&sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sub.Classification.OpiumList = substance.OpiumList(opiumStr)
	sub.Classification.Precursor = substance.PrecursorCategory(precursorStr)

	return &sub, nil
}

const selectSubstanceColumns = `
	s.code, s.name, s.opium_list, s.precursor_category, s.active,
	s.created_at, s.updated_at
`

func (s *Store) GetBySubstanceCode(ctx context.Context, code string) (*substance.Substance, error) {
	query := `SELECT ` + selectSubstanceColumns + `
		FROM substances s
		WHERE s.code = $1`

	sub, err := scanSubstance(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, substance.ErrNotFound
		}

		return nil, fmt.Errorf("getting substance: %w", err)
	}

	return sub, nil
}

func (s *Store) Create(ctx context.Context, sub *substance.Substance) error {
	query := `
		INSERT INTO substances (code, name, opium_list, precursor_category, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sub.Code,
		sub.Name,
		sub.Classification.OpiumList,
		sub.Classification.Precursor,
		sub.Active,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating substance: %w", err)
	}

	return nil
}

// UpdateClassification rewrites both classification dimensions. Only the
// reclassification processor calls this.
func (s *Store) UpdateClassification(ctx context.Context, code string, c substance.Classification) error {
	query := `
		UPDATE substances
		SET opium_list = $1, precursor_category = $2, updated_at = NOW()
		WHERE code = $3
	`

	res, err := s.db.ExecContext(ctx, query, c.OpiumList, c.Precursor, code)
	if err != nil {
		return fmt.Errorf("updating classification: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating classification: %w", err)
	}

	if affected == 0 {
		return substance.ErrNotFound
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]*substance.Substance, error) {
	query := `SELECT ` + selectSubstanceColumns + `
		FROM substances s
		ORDER BY s.code ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing substances: %w", err)
	}
	defer rows.Close()

	var subs []*substance.Substance

	for rows.Next() {
		sub, err := scanSubstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning substance: %w", err)
		}

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
