package importer

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/watspent/watspent/internal/model"
)

// HeaderMarker is the column label that precedes the transaction table in a
// WatCard portal copy.
const HeaderMarker = "Date - Time"

// watcardDelim separates columns in the portal's table.
const watcardDelim = "\t"

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// WatCardParser parses text copied from the WatCard transaction history page.
// Rows are tab-delimited: date-time, type, terminal, status, balance, units, amount.
type WatCardParser struct {
	// Location is used for the date-time column. Nil means UTC.
	Location *time.Location
}

// Format returns the parser name.
func (p *WatCardParser) Format() string { return "watcard" }

// Parse reads a WatCard copy/paste blob and returns its transactions in line order.
func (p *WatCardParser) Parse(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading watcard text: %w", err)
	}
	return p.ParseString(string(data))
}

// ParseString is Parse over an in-memory string.
func (p *WatCardParser) ParseString(text string) ([]model.Transaction, error) {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, HeaderMarker) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, &ParseError{Kind: ErrHeaderNotFound}
	}

	var txns []model.Transaction
	for i := start; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if !datePrefix.MatchString(line) {
			continue
		}
		txn, err := buildTransaction(strings.Split(line, watcardDelim), i+1, p.Location)
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
