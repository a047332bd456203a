package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
)

const dbTimeout = 5 * time.Second

// FormatQuantity formats a line quantity with its unit.
func FormatQuantity(q decimal.Decimal, unit string) string {
	return fmt.Sprintf("%s %s", q.String(), unit)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatHolder formats a customer key as account@jurisdiction.
func FormatHolder(h customer.HolderKey) string {
	return fmt.Sprintf("%s@%s", h.Account, h.Jurisdiction)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
