package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
)

// Column layout shared by the WatCard paste and the exported CSV.
const (
	numFields   = 7
	colDateTime = 0
	colType     = 1
	colTerminal = 2
	colStatus   = 3
	colBalance  = 4
	colUnits    = 5
	colAmount   = 6
)

// dateLayouts are tried in order against the date-time column.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// buildTransaction normalizes one row of fields. Missing fields default to
// empty; only the date and amount can fail the row.
func buildTransaction(fields []string, line int, loc *time.Location) (model.Transaction, error) {
	row := make([]string, numFields)
	for i := 0; i < numFields && i < len(fields); i++ {
		row[i] = strings.TrimSpace(fields[i])
	}

	date, err := parseDateTime(row[colDateTime], loc)
	if err != nil {
		return model.Transaction{}, &ParseError{Kind: ErrInvalidDate, Line: line, Value: row[colDateTime]}
	}

	amount, err := decimal.NewFromString(cleanNumber(row[colAmount]))
	if err != nil {
		return model.Transaction{}, &ParseError{Kind: ErrMissingAmountField, Line: line, Value: row[colAmount]}
	}

	return model.Transaction{
		DateTime: date,
		Type:     row[colType],
		Terminal: row[colTerminal],
		Status:   row[colStatus],
		Balance:  parseOptionalNumber(row[colBalance]),
		Units:    parseOptionalNumber(row[colUnits]),
		Amount:   amount,
	}, nil
}

func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parseOptionalNumber returns zero for anything that doesn't parse.
func parseOptionalNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(cleanNumber(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// cleanNumber drops currency symbols, thousands separators and whitespace.
// "$1,234.50" -> "1234.50"
func cleanNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+' {
			return r
		}
		return -1
	}, s)
}
