package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// labelSep separates a numeric code from its label in WatCard fields,
// e.g. "003 : PREPAYMENT (ADMIN)".
const labelSep = " : "

// Transaction is one parsed WatCard ledger row.
type Transaction struct {
	DateTime time.Time
	Type     string // raw category label, may carry a code prefix
	Terminal string // point-of-sale identifier
	Status   string
	Balance  decimal.Decimal
	Units    decimal.Decimal
	Amount   decimal.Decimal // signed; sign depends on the portal's convention
}

// TypeCode returns the code prefix of Type.
// "003 : PREPAYMENT (ADMIN)" -> "003"
func (t Transaction) TypeCode() string {
	code, _ := splitLabel(t.Type)
	return code
}

// TypeLabel returns Type without its code prefix.
func (t Transaction) TypeLabel() string {
	_, label := splitLabel(t.Type)
	return label
}

// Location returns Terminal without its code prefix.
// "00043 : REV DINING" -> "REV DINING"
func (t Transaction) Location() string {
	_, label := splitLabel(t.Terminal)
	return label
}

// Day returns the civil date of DateTime at midnight UTC.
func (t Transaction) Day() time.Time {
	y, m, d := t.DateTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func splitLabel(s string) (code, label string) {
	code, label, ok := strings.Cut(s, labelSep)
	if !ok {
		return strings.TrimSpace(s), s
	}
	return strings.TrimSpace(code), strings.TrimSpace(label)
}
