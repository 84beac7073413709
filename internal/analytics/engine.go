package analytics

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
	"github.com/watspent/watspent/internal/store"
)

// VenueStat is a TerminalStat with its resolved venue name.
type VenueStat struct {
	TerminalStat
	Name string `json:"name"`
}

// Report bundles every derived value for one store generation.
type Report struct {
	Generation         uuid.UUID       `json:"generation"`
	Count              int             `json:"count"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	Streak             Streak          `json:"longestSpendingStreak"`
	UniqueTerminals    int             `json:"uniqueTerminals"`
	MostCommonTerminal *VenueStat      `json:"mostCommonTerminal"`
	TopTerminals       []VenueStat     `json:"topTerminals"`
}

// topTerminalLimit caps Report.TopTerminals.
const topTerminalLimit = 5

// Compute builds a Report from txns without caching.
func Compute(txns []model.Transaction, opts Options, venues *Directory) Report {
	if venues == nil {
		venues = defaultDirectory
	}
	r := Report{
		Count:           len(txns),
		TotalSpent:      TotalSpent(txns, opts),
		Streak:          LongestSpendingStreak(txns, opts),
		UniqueTerminals: UniqueTerminals(txns),
		TopTerminals:    []VenueStat{},
	}
	if stat, ok := MostCommonTerminal(txns); ok {
		r.MostCommonTerminal = &VenueStat{TerminalStat: stat, Name: venues.Name(stat.Terminal)}
	}
	for i, stat := range RankTerminals(txns) {
		if i == topTerminalLimit {
			break
		}
		r.TopTerminals = append(r.TopTerminals, VenueStat{TerminalStat: stat, Name: venues.Name(stat.Terminal)})
	}
	return r
}

// Engine computes Reports and caches the last one by store generation.
type Engine struct {
	opts   Options
	venues *Directory

	mu     sync.Mutex
	cached *Report
}

// NewEngine creates an Engine. A nil venues uses the built-in table.
func NewEngine(opts Options, venues *Directory) *Engine {
	if venues == nil {
		venues = defaultDirectory
	}
	return &Engine{opts: opts, venues: venues}
}

// Options returns the classification options.
func (e *Engine) Options() Options {
	return e.opts
}

// Venues returns the directory used for terminal names.
func (e *Engine) Venues() *Directory {
	return e.venues
}

// Report returns the Report for snap, recomputing only when the generation changes.
func (e *Engine) Report(snap store.Snapshot) Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cached != nil && e.cached.Generation == snap.Generation {
		return *e.cached
	}
	r := Compute(snap.Transactions, e.opts, e.venues)
	r.Generation = snap.Generation
	e.cached = &r
	return r
}
