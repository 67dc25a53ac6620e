// Package numbering generates the sequential identifiers used across the
// application: per-month invoice numbers and product catalog indices.
//
// Both generators are pure functions over a snapshot of existing data. They
// never touch storage themselves; the caller fetches the snapshot, calls the
// generator, and persists the result exactly once.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InvoicePrefix is the fixed first field of every invoice number.
const InvoicePrefix = "FV"

// InvoicedOrder is the slice of an order the numbering scan needs: its
// identity, its already-assigned invoice number, and its creation date.
type InvoicedOrder struct {
	OrderID       int64
	InvoiceNumber string
	OrderDate     time.Time
}

// NextInvoiceNumber returns the invoice number to assign next, in the format
// "FV/<sequence>/<month>/<year>" where month and year are taken from now and
// sequence restarts at 1 each calendar month.
//
// history must contain every order that already carries an invoice number.
// The scan keeps only entries whose OrderDate falls in now's month and year —
// the order's creation date decides the period, not the year/month embedded
// in the candidate's own number string. Among those, the entry with the
// greatest OrderID (the most recently created order, not the greatest parsed
// sequence) supplies the sequence to increment.
//
// Sequence numbers are never reused: the function only observes what is
// present at call time and has no knowledge of deletions.
//
// Two concurrent callers can compute the same sequence; this package takes no
// lock. The storage layer's uniqueness constraint on invoice numbers is the
// backstop for that race.
func NextInvoiceNumber(history []InvoicedOrder, now time.Time) (string, error) {
	const op = "NextInvoiceNumber"

	month := int(now.Month())
	year := now.Year()

	var last *InvoicedOrder
	for i := range history {
		h := &history[i]
		if h.InvoiceNumber == "" {
			continue
		}
		if h.OrderDate.Year() != year || int(h.OrderDate.Month()) != month {
			continue
		}
		if last == nil || h.OrderID > last.OrderID {
			last = h
		}
	}

	next := 1
	if last != nil {
		seq, err := parseSequence(last.InvoiceNumber)
		if err != nil {
			return "", &NumberingError{Op: op, Err: err, Number: last.InvoiceNumber}
		}
		next = seq + 1
	}

	return fmt.Sprintf("%s/%d/%d/%d", InvoicePrefix, next, month, year), nil
}

// parseSequence extracts the sequence component (the second '/'-delimited
// field) of an invoice number, e.g. "FV/12/6/2024" -> 12.
func parseSequence(number string) (int, error) {
	fields := strings.Split(number, "/")
	if len(fields) != 4 {
		return 0, fmt.Errorf("%w: want 4 '/'-delimited fields, got %d", ErrMalformedNumber, len(fields))
	}
	seq, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: sequence field %q is not an integer", ErrMalformedNumber, fields[1])
	}
	return seq, nil
}

// NextProductIndex returns the catalog index for a new product: one greater
// than the current maximum, or 1 when the catalog is empty. found reports
// whether any product exists at all.
func NextProductIndex(maxExisting int64, found bool) int64 {
	if !found {
		return 1
	}
	return maxExisting + 1
}
