package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmulders/veridose/internal/customer"
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

// Expected column order: account, jurisdiction, name, approval_status,
// suspended, suspension_reason, business_category, gdp_qualified, created_at,
// updated_at
func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var approvalStr string

	var reason sql.NullString

	if err := s.Scan(
		&c.Holder.Account, &c.Holder.Jurisdiction, &c.Name, &approvalStr,
		&c.Suspended, &reason, &c.BusinessCategory, &c.GDPQualified,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.ApprovalStatus = customer.ApprovalStatus(approvalStr)
	c.SuspensionReason = reason.String

	return &c, nil
}

const selectCustomerColumns = `
	c.account, c.jurisdiction, c.name, c.approval_status,
	c.suspended, c.suspension_reason, c.business_category, c.gdp_qualified,
	c.created_at, c.updated_at
`

func (s *Store) GetByHolderKey(ctx context.Context, holder customer.HolderKey) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers c
		WHERE c.account = $1 AND c.jurisdiction = $2`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, holder.Account, holder.Jurisdiction))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (account, jurisdiction, name, approval_status, suspended,
			suspension_reason, business_category, gdp_qualified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Holder.Account,
		c.Holder.Jurisdiction,
		c.Name,
		c.ApprovalStatus,
		c.Suspended,
		sql.NullString{String: c.SuspensionReason, Valid: c.SuspensionReason != ""},
		c.BusinessCategory,
		c.GDPQualified,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers c
		ORDER BY c.jurisdiction ASC, c.account ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}
