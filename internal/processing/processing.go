// Package processing filters, orders and tallies transactions. Every function
// returns a new value and leaves its input slice untouched.
package processing

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/carson-networks/txreport/internal/transaction"
)

// DefaultState is the state FilterByState callers use when the user has no preference.
const DefaultState = transaction.StateExecuted

var (
	ErrMissingDate       = errors.New("missing date")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FilterByState keeps transactions whose state equals state exactly.
// Transactions without a state never match.
func FilterByState(txs []transaction.Transaction, state string) []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.State != "" && tx.State == state {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDate returns a copy of txs ordered by timestamp, newest first when
// descending is set. Equal timestamps keep their input order. A transaction
// without a date yields ErrMissingDate; one whose date is not ISO-8601
// yields ErrInvalidDateFormat.
func SortByDate(txs []transaction.Transaction, descending bool) ([]transaction.Transaction, error) {
	type keyed struct {
		at time.Time
		tx transaction.Transaction
	}

	rows := make([]keyed, len(txs))
	for i, tx := range txs {
		if tx.Date == "" {
			return nil, fmt.Errorf("transaction %d: %w", i, ErrMissingDate)
		}
		at, err := ParseISO(tx.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		rows[i] = keyed{at: at, tx: tx}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		if descending {
			return b.at.Compare(a.at)
		}
		return a.at.Compare(b.at)
	})

	out := make([]transaction.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.tx
	}
	return out, nil
}

// ParseISO parses the ISO-8601 shapes found in bank exports: a bare date, or
// a date and time separated by "T" or a space, with optional fractional
// seconds and zone offset.
func ParseISO(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if at, err := time.Parse(layout, value); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
}

// FilterByDescription keeps transactions whose description matches pattern,
// a regular expression compared case-insensitively anywhere in the text. An
// invalid pattern matches nothing.
func FilterByDescription(txs []transaction.Transaction, pattern string) []transaction.Transaction {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return []transaction.Transaction{}
	}

	out := make([]transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Description != "" && re.MatchString(tx.Description) {
			out = append(out, tx)
		}
	}
	return out
}
