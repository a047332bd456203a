package threshold

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/transaction"
)

// Violation codes produced by the evaluator. Threshold breaches are policy
// violations and always overridable.
const (
	CodePerTransactionExceeded = "THRESHOLD_TX_EXCEEDED"
	CodePerPeriodExceeded      = "THRESHOLD_PERIOD_EXCEEDED"
)

//go:generate mockgen -source=evaluator.go -destination=evaluator_mock.go -package=threshold
type Repository interface {
	// GetApplicable returns active thresholds whose scope could match any of
	// the given substance codes or the customer category, plus the global
	// ones.
	GetApplicable(ctx context.Context, substanceCodes []string, customerCategory string) ([]*Threshold, error)
}

// History provides quantity sums over past transactions. Backed by the
// transaction store; slight staleness is acceptable, quota enforcement is
// best effort.
type History interface {
	SumQuantityInPeriod(ctx context.Context, holder customer.HolderKey, substanceCode string, from, to time.Time) (decimal.Decimal, error)
}

// Evaluator flags quantity-limit breaches on transaction lines.
type Evaluator struct {
	repo    Repository
	history History
}

func NewEvaluator(repo Repository, history History) *Evaluator {
	return &Evaluator{repo: repo, history: history}
}

var kindRank = map[Kind]int{
	KindSubstance: 0,
	KindCategory:  1,
	KindGlobal:    2,
}

// Evaluate checks every line against the most specific applicable threshold
// per cap dimension and returns a violation per breach.
func (e *Evaluator) Evaluate(ctx context.Context, tx *transaction.Transaction, customerCategory string, asOf time.Time) ([]transaction.Violation, error) {
	codes := make([]string, 0, len(tx.Lines))
	for _, line := range tx.Lines {
		codes = append(codes, line.SubstanceCode)
	}

	thresholds, err := e.repo.GetApplicable(ctx, codes, customerCategory)
	if err != nil {
		return nil, fmt.Errorf("loading thresholds: %w", err)
	}

	var violations []transaction.Violation

	for _, line := range tx.Lines {
		txCap := pickMostSpecific(thresholds, line.SubstanceCode, customerCategory, func(t *Threshold) bool {
			return t.MaxPerTransaction != nil
		})
		if txCap != nil && line.Quantity.GreaterThan(*txCap.MaxPerTransaction) {
			violations = append(violations, transaction.Violation{
				Code: CodePerTransactionExceeded,
				Message: fmt.Sprintf("quantity %s of %s exceeds per-transaction limit %s",
					line.Quantity, line.SubstanceCode, txCap.MaxPerTransaction),
				Overridable: true,
			})
		}

		periodCap := pickMostSpecific(thresholds, line.SubstanceCode, customerCategory, func(t *Threshold) bool {
			return t.MaxPerPeriod != nil
		})
		if periodCap == nil {
			continue
		}

		from := windowStart(periodCap.Period, asOf)

		sum, err := e.history.SumQuantityInPeriod(ctx, tx.Holder, line.SubstanceCode, from, asOf)
		if err != nil {
			return nil, fmt.Errorf("summing period quantity for %s: %w", line.SubstanceCode, err)
		}

		if sum.Add(line.Quantity).GreaterThan(*periodCap.MaxPerPeriod) {
			violations = append(violations, transaction.Violation{
				Code: CodePerPeriodExceeded,
				Message: fmt.Sprintf("accumulated quantity %s of %s exceeds per-%s limit %s",
					sum.Add(line.Quantity), line.SubstanceCode, periodCap.Period, periodCap.MaxPerPeriod),
				Overridable: true,
			})
		}
	}

	return violations, nil
}

// pickMostSpecific returns the matching threshold with the lowest kind rank
// that satisfies the cap predicate, or nil when none applies.
func pickMostSpecific(thresholds []*Threshold, substanceCode, customerCategory string, hasCap func(*Threshold) bool) *Threshold {
	var best *Threshold

	for _, t := range thresholds {
		if !t.AppliesTo(substanceCode, customerCategory) || !hasCap(t) {
			continue
		}

		if best == nil || kindRank[t.Kind] < kindRank[best.Kind] {
			best = t
		}
	}

	return best
}
