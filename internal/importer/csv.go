package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/watspent/watspent/internal/export"
	"github.com/watspent/watspent/internal/model"
)

// utf8BOM is prepended by some spreadsheet tools when re-saving a CSV.
const utf8BOM = "\ufeff"

// CSVParser reads files written by the export package.
type CSVParser struct {
	// Location is used for the date-time column. Nil means UTC.
	Location *time.Location
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads an exported CSV and returns its transactions in row order.
func (p *CSVParser) Parse(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Kind: ErrHeaderNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}
	if !isExportHeader(header) {
		return nil, &ParseError{Kind: ErrHeaderNotFound}
	}

	var txns []model.Transaction
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		txn, err := buildTransaction(rec, line, p.Location)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	if len(txns) == 0 {
		return nil, &ParseError{Kind: ErrNoTransactionsFound}
	}
	return txns, nil
}

func isExportHeader(rec []string) bool {
	if len(rec) != len(export.Columns) {
		return false
	}
	for i, col := range export.Columns {
		if strings.TrimSpace(rec[i]) != col {
			return false
		}
	}
	return true
}
