package importer

import (
	"io"
	"strings"
	"time"

	"github.com/watspent/watspent/internal/export"
	"github.com/watspent/watspent/internal/model"
)

// Parser converts raw ledger text into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers using loc for
// date-times.
func DefaultRegistry(loc *time.Location) *Registry {
	r := NewRegistry()
	r.Register(&WatCardParser{Location: loc})
	r.Register(&CSVParser{Location: loc})
	return r
}

// Detect picks a format for raw text: "csv" when the first non-blank line is
// the export header, "watcard" otherwise.
func Detect(raw string) string {
	for _, line := range strings.Split(strings.TrimPrefix(raw, utf8BOM), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == export.HeaderLine() {
			return "csv"
		}
		break
	}
	return "watcard"
}
