package numbering

import (
	"errors"
	"fmt"
)

// Common numbering errors
var (
	// ErrMalformedNumber is returned when a previously issued invoice number
	// cannot be parsed. This indicates corrupted historical data: invoice
	// numbers are only ever produced by this package, so a malformed one has
	// no recovery path and the operation must abort rather than guess a
	// sequence.
	ErrMalformedNumber = errors.New("malformed invoice number")
)

// NumberingError wraps errors with additional context about where number
// generation failed.
type NumberingError struct {
	// Op is the operation that failed (e.g., "NextInvoiceNumber").
	Op string

	// Err is the underlying error.
	Err error

	// Number is the offending invoice number, if any.
	Number string
}

// Error implements the error interface.
func (e *NumberingError) Error() string {
	if e.Number != "" {
		return fmt.Sprintf("numbering: %s failed for %q: %v", e.Op, e.Number, e.Err)
	}
	return fmt.Sprintf("numbering: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *NumberingError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *NumberingError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
