package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmulders/veridose/internal/threshold"
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

// Expected column order: id, kind, substance_code, customer_category,
// max_per_transaction, max_per_period, period, active, created_at
func scanThreshold(s scanner) (*threshold.Threshold, error) {
	var t threshold.Threshold

	var kindStr string

	var code, category, period sql.NullString

	if err := s.Scan(
		&t.ID, &kindStr, &code, &category,
		&t.MaxPerTransaction, &t.MaxPerPeriod, &period, &t.Active,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	t.Kind = threshold.Kind(kindStr)
	t.SubstanceCode = code.String
	t.CustomerCategory = category.String
	t.Period = threshold.Period(period.String)

	return &t, nil
}

const selectThresholdColumns = `
	t.id, t.kind, t.substance_code, t.customer_category,
	t.max_per_transaction, t.max_per_period, t.period, t.active,
	t.created_at
`

// GetApplicable returns the active thresholds that could scope to any of the
// substance codes or the customer category, plus the global ones. The
// evaluator does the final per-line matching.
func (s *Store) GetApplicable(ctx context.Context, substanceCodes []string, customerCategory string) ([]*threshold.Threshold, error) {
	query := `SELECT ` + selectThresholdColumns + `
		FROM thresholds t
		WHERE t.active
			AND (t.kind = 'global'
				OR (t.kind = 'substance' AND t.substance_code = ANY($1))
				OR (t.kind = 'category' AND t.customer_category = $2))
		ORDER BY t.created_at ASC`

	// The pgx stdlib driver encodes []string as a text[] parameter.
	rows, err := s.db.QueryContext(ctx, query, substanceCodes, customerCategory)
	if err != nil {
		return nil, fmt.Errorf("listing thresholds: %w", err)
	}
	defer rows.Close()

	var thresholds []*threshold.Threshold

	for rows.Next() {
		t, err := scanThreshold(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning threshold: %w", err)
		}

		thresholds = append(thresholds, t)
	}

	return thresholds, rows.Err()
}

func (s *Store) Create(ctx context.Context, t *threshold.Threshold) error {
	query := `
		INSERT INTO thresholds (kind, substance_code, customer_category,
			max_per_transaction, max_per_period, period, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Kind,
		sql.NullString{String: t.SubstanceCode, Valid: t.SubstanceCode != ""},
		sql.NullString{String: t.CustomerCategory, Valid: t.CustomerCategory != ""},
		t.MaxPerTransaction,
		t.MaxPerPeriod,
		sql.NullString{String: string(t.Period), Valid: t.Period != ""},
		t.Active,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating threshold: %w", err)
	}

	return nil
}
