// Package history keeps an append-only CSV log of import attempts. It records
// outcomes only; transactions themselves are never written.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Outcome of an import attempt.
const (
	OutcomeImported = "imported"
	OutcomeRejected = "rejected"
)

// Entry is one row in the history file.
type Entry struct {
	Timestamp  time.Time
	Source     string // file path, "stdin" or an API caller
	Format     string
	Outcome    string
	Count      int
	Generation string
	Error      string
}

// Header is the CSV header for the history file.
const Header = "timestamp,source,format,outcome,count,generation,error"

const (
	numFields     = 7
	colTimestamp  = 0
	colSource     = 1
	colFormat     = 2
	colOutcome    = 3
	colCount      = 4
	colGeneration = 5
	colError      = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colFormat] = e.Format
	row[colOutcome] = e.Outcome
	row[colCount] = strconv.Itoa(e.Count)
	row[colGeneration] = e.Generation
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	count, err := strconv.Atoi(record[colCount])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing count %q: %w", record[colCount], err)
	}

	return Entry{
		Timestamp:  ts,
		Source:     record[colSource],
		Format:     record[colFormat],
		Outcome:    record[colOutcome],
		Count:      count,
		Generation: record[colGeneration],
		Error:      record[colError],
	}, nil
}

// Log appends entries to a history file.
type Log struct {
	path string
}

// New returns a Log writing to path.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the history file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes entries, creating the file and header if needed.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries. A missing file yields no entries.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
