package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
)

// TotalSpent sums abs(amount) over spending transactions, skipping outliers.
func TotalSpent(txns []model.Transaction, opts Options) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		if !opts.IsSpending(txn) || opts.isOutlier(txn) {
			continue
		}
		total = total.Add(txn.Amount.Abs())
	}
	return total
}

// Streak is a run of consecutive calendar days with spending.
type Streak struct {
	Length int       `json:"streakLength"`
	Start  time.Time `json:"startDate,omitzero"`
	End    time.Time `json:"endDate,omitzero"`
}

// LongestSpendingStreak finds the longest run of consecutive days that each
// have at least one spending transaction. Input order does not matter. Ties
// go to the earliest run.
func LongestSpendingStreak(txns []model.Transaction, opts Options) Streak {
	var days []time.Time
	for _, txn := range txns {
		if opts.IsSpending(txn) {
			days = append(days, txn.Day())
		}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	days = slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })

	var best, cur Streak
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			cur.Length++
			cur.End = day
		} else {
			cur = Streak{Length: 1, Start: day, End: day}
		}
		if cur.Length > best.Length {
			best = cur
		}
	}
	return best
}
