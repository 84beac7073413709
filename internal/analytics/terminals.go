package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
)

// TerminalStat aggregates the transactions seen at one terminal.
type TerminalStat struct {
	Terminal string          `json:"terminal"`
	Count    int             `json:"count"`
	Sum      decimal.Decimal `json:"sum"` // raw signed amounts
}

// UniqueTerminals counts distinct non-empty terminals.
func UniqueTerminals(txns []model.Transaction) int {
	seen := make(map[string]struct{})
	for _, txn := range txns {
		if txn.Terminal != "" {
			seen[txn.Terminal] = struct{}{}
		}
	}
	return len(seen)
}

// TerminalStats aggregates per terminal in order of first appearance.
// Transactions without a terminal are skipped.
func TerminalStats(txns []model.Transaction) []TerminalStat {
	index := make(map[string]int)
	var stats []TerminalStat
	for _, txn := range txns {
		if txn.Terminal == "" {
			continue
		}
		i, ok := index[txn.Terminal]
		if !ok {
			i = len(stats)
			index[txn.Terminal] = i
			stats = append(stats, TerminalStat{Terminal: txn.Terminal, Sum: decimal.Zero})
		}
		stats[i].Count++
		stats[i].Sum = stats[i].Sum.Add(txn.Amount)
	}
	return stats
}

// MostCommonTerminal returns the terminal with the most transactions. Ties
// go to the terminal seen first. ok is false when no transaction has a terminal.
func MostCommonTerminal(txns []model.Transaction) (stat TerminalStat, ok bool) {
	for _, s := range TerminalStats(txns) {
		if !ok || s.Count > stat.Count {
			stat, ok = s, true
		}
	}
	return stat, ok
}

// RankTerminals orders terminals by descending count, keeping first-seen
// order among equal counts.
func RankTerminals(txns []model.Transaction) []TerminalStat {
	stats := TerminalStats(txns)
	slices.SortStableFunc(stats, func(a, b TerminalStat) int { return b.Count - a.Count })
	return stats
}
