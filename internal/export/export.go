// Package export serializes transactions to a quoted CSV for download.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watspent/watspent/internal/model"
)

// Columns names the exported columns, in order.
var Columns = []string{
	"Date - Time",
	"Transaction Type",
	"Terminal",
	"Status",
	"Balance",
	"Units",
	"Amount",
}

const (
	dateFormat = "2006-01-02 15:04:05"
	fileFormat = "watcard_transactions_%s.csv"
)

// HeaderLine returns the first line of every export.
func HeaderLine() string {
	return joinQuoted(Columns)
}

// FileName returns the download name for an export made at now.
func FileName(now time.Time) string {
	return fmt.Sprintf(fileFormat, now.Format("2006-01-02"))
}

// MarshalTransaction converts a Transaction to its unquoted export fields.
func MarshalTransaction(txn model.Transaction) []string {
	return []string{
		txn.DateTime.Format(dateFormat),
		txn.Type,
		txn.Terminal,
		txn.Status,
		formatDecimal(txn.Balance),
		formatDecimal(txn.Units),
		formatDecimal(txn.Amount),
	}
}

// Write writes the header and one row per transaction, in input order.
func Write(w io.Writer, txns []model.Transaction) error {
	if _, err := io.WriteString(w, HeaderLine()+"\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if _, err := io.WriteString(w, joinQuoted(MarshalTransaction(txn))+"\n"); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}

// ToDelimitedText returns the export as a string.
func ToDelimitedText(txns []model.Transaction) string {
	var sb strings.Builder
	_ = Write(&sb, txns) // strings.Builder never fails
	return sb.String()
}

// joinQuoted wraps every field in quotes, doubling embedded quotes.
// encoding/csv only quotes fields that need it, so rows are built by hand.
func joinQuoted(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// formatDecimal keeps cents visible without dropping extra precision.
func formatDecimal(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}
