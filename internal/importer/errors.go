package importer

import (
	"errors"
	"fmt"
)

// Batch-level parse failures. Every error returned by a Parser wraps one of these.
var (
	ErrHeaderNotFound      = errors.New("header not found")
	ErrNoTransactionsFound = errors.New("no transactions found")
	ErrMissingAmountField  = errors.New("missing amount field")
	ErrInvalidDate         = errors.New("invalid date")
)

// ParseError reports why a whole import was rejected.
type ParseError struct {
	Kind  error  // one of the Err* sentinels
	Line  int    // 1-based input line, 0 when not tied to a line
	Value string // offending field text
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrHeaderNotFound:
		return "Could not find transaction data. Please copy the entire transaction table from WatCard."
	case ErrNoTransactionsFound:
		return "No valid transactions found. Please make sure to copy the entire table."
	case ErrMissingAmountField:
		return fmt.Sprintf("Line %d has a missing or unreadable amount (%q).", e.Line, e.Value)
	case ErrInvalidDate:
		return fmt.Sprintf("Line %d has an invalid date (%q).", e.Line, e.Value)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
