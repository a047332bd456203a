package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, rawName string) (string, error) {
	query := `
		SELECT substance_code
		FROM substance_aliases
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var code string

	err := s.db.QueryRowContext(ctx, query, rawName).Scan(&code)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return code, nil
}

func (s *Store) CreateMapping(ctx context.Context, rawPattern, substanceCode string) error {
	query := `
		INSERT INTO substance_aliases (raw_pattern, substance_code, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, rawPattern, substanceCode)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
