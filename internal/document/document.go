// Package document implements the invoicing workflow: assigning invoice
// numbers to orders and assembling the invoice document handed to the PDF
// conversion pipeline.
//
// The numbering computation itself is pure (internal/numbering); this
// package fetches the snapshot, calls the generator and persists the result
// exactly once through the storage layer.
package document

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"minierp/internal/logger"
	"minierp/internal/numbering"
	"minierp/pkg/models"
)

var (
	// ErrNotInvoiced is returned when a document is requested for an order
	// that has no invoice number yet.
	ErrNotInvoiced = errors.New("order has not been invoiced")

	// ErrNoCompanyProfile is returned when invoicing is attempted before a
	// company profile has been saved.
	ErrNoCompanyProfile = errors.New("company profile is not set")
)

// Storage is the slice of the store the invoicing workflow needs.
type Storage interface {
	GetOrder(ctx context.Context, id int64) (models.Order, error)
	GetClient(ctx context.Context, id int64) (models.Client, error)
	GetCompanyProfile(ctx context.Context) (models.CompanyProfile, error)
	InvoicedOrdersInMonth(ctx context.Context, year, month int) ([]numbering.InvoicedOrder, error)
	AssignInvoice(ctx context.Context, orderID int64, number string, dueDate time.Time) error
	RecordIssuedDocument(ctx context.Context, doc models.IssuedDocument) error
}

// Service drives invoice issuance and document assembly.
type Service struct {
	store   Storage
	dueDays int
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates an invoicing service. dueDays is the payment term added
// to the issue time when stamping the due date.
func NewService(store Storage, dueDays int) *Service {
	return &Service{
		store:   store,
		dueDays: dueDays,
		now:     time.Now,
		log:     logger.WithComponent("invoicing"),
	}
}

// Issue assigns the next invoice number and a payment due date to an order.
// The number is computed from the snapshot of already-invoiced orders in the
// current month; two Issue calls racing on the same month can compute the
// same number, in which case the second one fails on the storage layer's
// uniqueness constraint.
func (s *Service) Issue(ctx context.Context, orderID int64) (string, time.Time, error) {
	now := s.now()

	history, err := s.store.InvoicedOrdersInMonth(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return "", time.Time{}, err
	}

	number, err := numbering.NextInvoiceNumber(history, now)
	if err != nil {
		return "", time.Time{}, err
	}

	dueDate := now.AddDate(0, 0, s.dueDays)
	if err := s.store.AssignInvoice(ctx, orderID, number, dueDate); err != nil {
		return "", time.Time{}, err
	}

	s.log.Info().
		Int64("order_id", orderID).
		Str("invoice_number", number).
		Time("due_date", dueDate).
		Msg("Invoice issued")
	return number, dueDate, nil
}
