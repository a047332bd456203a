package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row and returns a populated Transaction
// without its lines.
// Expected column order: id, reference, customer_account, jurisdiction, direction,
// validation_status, requires_override, override_status, override_actor,
// override_reason, override_at, violations, licence_usages, version,
// validated_at, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var directionStr, statusStr, overrideStr string

	var actor, reason sql.NullString

	var violations, usages []byte

	if err := s.Scan(
		&tx.ID, &tx.Reference, &tx.Holder.Account, &tx.Holder.Jurisdiction, &directionStr,
		&statusStr, &tx.RequiresOverride, &overrideStr, &actor, &reason, &tx.OverrideAt,
		&violations, &usages, &tx.Version,
		&tx.ValidatedAt, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = transaction.Direction(directionStr)
	tx.ValidationStatus = transaction.ValidationStatus(statusStr)
	tx.OverrideStatus = transaction.OverrideStatus(overrideStr)
	tx.OverrideActor = actor.String
	tx.OverrideReason = reason.String

	if len(violations) > 0 {
		if err := json.Unmarshal(violations, &tx.Violations); err != nil {
			return nil, fmt.Errorf("decoding violations: %w", err)
		}
	}

	if len(usages) > 0 {
		if err := json.Unmarshal(usages, &tx.LicenceUsages); err != nil {
			return nil, fmt.Errorf("decoding licence usages: %w", err)
		}
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.reference, t.customer_account, t.jurisdiction, t.direction,
	t.validation_status, t.requires_override, t.override_status, t.override_actor,
	t.override_reason, t.override_at, t.violations, t.licence_usages, t.version,
	t.validated_at, t.created_at, t.updated_at
`

func (s *Store) Create(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO compliance_transactions (reference, customer_account, jurisdiction, direction,
			validation_status, requires_override, override_status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.Reference,
		tx.Holder.Account,
		tx.Holder.Jurisdiction,
		tx.Direction,
		tx.ValidationStatus,
		tx.RequiresOverride,
		tx.OverrideStatus,
	).Scan(&tx.ID, &tx.Version, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	lineQuery := `
		INSERT INTO transaction_lines (transaction_id, line_no, substance_code, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, line := range tx.Lines {
		if _, err := dbTx.ExecContext(ctx, lineQuery, tx.ID, i+1, line.SubstanceCode, line.Quantity, line.Unit); err != nil {
			return fmt.Errorf("creating transaction line %d: %w", i+1, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM compliance_transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	if err := s.loadLines(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Store) loadLines(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		SELECT substance_code, quantity, unit
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY line_no ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tx.ID)
	if err != nil {
		return fmt.Errorf("loading transaction lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line transaction.Line

		if err := rows.Scan(&line.SubstanceCode, &line.Quantity, &line.Unit); err != nil {
			return fmt.Errorf("scanning transaction line: %w", err)
		}

		tx.Lines = append(tx.Lines, line)
	}

	return rows.Err()
}

// Update persists the verdict and override fields. The version column guards
// against concurrent writers: zero rows updated means the row moved on since
// the caller read it.
func (s *Store) Update(ctx context.Context, tx *transaction.Transaction) error {
	violations, err := json.Marshal(tx.Violations)
	if err != nil {
		return fmt.Errorf("encoding violations: %w", err)
	}

	usages, err := json.Marshal(tx.LicenceUsages)
	if err != nil {
		return fmt.Errorf("encoding licence usages: %w", err)
	}

	query := `
		UPDATE compliance_transactions
		SET validation_status = $1, requires_override = $2, override_status = $3,
			override_actor = $4, override_reason = $5, override_at = $6,
			violations = $7, licence_usages = $8, validated_at = $9,
			version = version + 1, updated_at = NOW()
		WHERE id = $10 AND version = $11
		RETURNING version, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		tx.ValidationStatus,
		tx.RequiresOverride,
		tx.OverrideStatus,
		nullString(tx.OverrideActor),
		nullString(tx.OverrideReason),
		tx.OverrideAt,
		violations,
		usages,
		tx.ValidatedAt,
		tx.ID,
		tx.Version,
	).Scan(&tx.Version, &tx.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return s.classifyUpdateConflict(ctx, tx.ID)
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

// classifyUpdateConflict distinguishes a stale version from a row that does
// not exist at all.
func (s *Store) classifyUpdateConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM compliance_transactions WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking transaction existence: %w", err)
	}

	if !exists {
		return transaction.ErrNotFound
	}

	return transaction.ErrVersionConflict
}

func (s *Store) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM compliance_transactions t
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.validation_status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Holder != nil {
		query += fmt.Sprintf(" AND t.customer_account = $%d AND t.jurisdiction = $%d", argIdx, argIdx+1)

		args = append(args, filter.Holder.Account, filter.Holder.Jurisdiction)
		argIdx += 2
	}

	query += " ORDER BY t.created_at DESC"

	return s.queryTransactions(ctx, query, args...)
}

func (s *Store) ListPendingOverride(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM compliance_transactions t
		WHERE t.override_status = 'pending'
		ORDER BY t.created_at ASC`

	return s.queryTransactions(ctx, query)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	for _, tx := range txs {
		if err := s.loadLines(ctx, tx); err != nil {
			return nil, err
		}
	}

	return txs, nil
}

// SumQuantityInPeriod totals the holder's quantity of a substance across
// transactions created in [from, to]. Rejected transactions never count
// towards the rolling window.
func (s *Store) SumQuantityInPeriod(ctx context.Context, holder customer.HolderKey, substanceCode string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM transaction_lines l
		JOIN compliance_transactions t ON t.id = l.transaction_id
		WHERE t.customer_account = $1 AND t.jurisdiction = $2
			AND l.substance_code = $3
			AND t.created_at >= $4 AND t.created_at <= $5
			AND t.override_status <> 'rejected'
	`

	var total decimal.Decimal

	err := s.db.QueryRowContext(ctx, query, holder.Account, holder.Jurisdiction, substanceCode, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing period quantity: %w", err)
	}

	return total, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
