// Package analytics derives spending statistics from a set of transactions.
//
// Every function here is pure and never fails: an empty input yields zero
// totals, a zero-length streak and no most-common terminal. Engine adds
// memoization keyed on the store generation.
package analytics

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
)

// SpendSign selects which amount sign counts as spending.
type SpendSign string

const (
	// SpendNegative treats debits (amount < 0) as spending.
	SpendNegative SpendSign = "negative"
	// SpendPositive treats amount >= 0 as spending.
	SpendPositive SpendSign = "positive"
)

// ParseSpendSign validates a sign name. Empty means SpendNegative.
func ParseSpendSign(s string) (SpendSign, error) {
	switch SpendSign(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpendNegative:
		return SpendNegative, nil
	case SpendPositive:
		return SpendPositive, nil
	default:
		return "", fmt.Errorf("unknown spend sign %q (want %q or %q)", s, SpendNegative, SpendPositive)
	}
}

// Options controls how transactions are classified as spending.
type Options struct {
	Sign SpendSign
	// ExcludedTypeCodes are type code prefixes that are never spending,
	// e.g. "003" for administrative prepayments.
	ExcludedTypeCodes []string
	// OutlierLimit drops spending with abs(amount) >= limit from TotalSpent.
	// Zero disables the guard.
	OutlierLimit decimal.Decimal
}

// DefaultOptions returns the debit-negative convention with admin
// prepayments excluded and no outlier guard.
func DefaultOptions() Options {
	return Options{
		Sign:              SpendNegative,
		ExcludedTypeCodes: []string{"003"},
	}
}

// IsSpending reports whether txn counts as a spending event.
func (o Options) IsSpending(txn model.Transaction) bool {
	if slices.Contains(o.ExcludedTypeCodes, txn.TypeCode()) {
		return false
	}
	if o.Sign == SpendPositive {
		return !txn.Amount.IsNegative()
	}
	return txn.Amount.IsNegative()
}

func (o Options) isOutlier(txn model.Transaction) bool {
	if o.OutlierLimit.IsZero() {
		return false
	}
	return txn.Amount.Abs().GreaterThanOrEqual(o.OutlierLimit.Abs())
}
