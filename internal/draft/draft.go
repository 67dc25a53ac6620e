// Package draft models the pending order a user assembles before committing
// it. The draft is an explicit value object owned by the caller; nothing in
// it is persisted until Items() is handed to the store in one transaction.
package draft

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"minierp/pkg/models"
)

var (
	// ErrEmptyDraft is returned when an order with no lines is committed.
	ErrEmptyDraft = errors.New("cannot create an empty order")

	// ErrInvalidQuantity is returned for a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPrice is returned for a zero or negative unit price.
	ErrInvalidPrice = errors.New("price per unit must be positive")

	// ErrFractionalQuantity is returned when a product sold in discrete
	// units (pieces, sets) is added with a fractional quantity.
	ErrFractionalQuantity = errors.New("quantity must be a whole number for this unit")
)

// Draft is a pending order: a client and the lines added so far.
type Draft struct {
	ClientID int64
	lines    []models.OrderItem
}

// New returns an empty draft for the given client.
func New(clientID int64) *Draft {
	return &Draft{ClientID: clientID}
}

// AddLine validates and appends one line. The product's current VAT rate is
// snapshotted into the line here; later catalog changes do not affect it.
// The unit price is entered per line, independent of the catalog.
func (d *Draft) AddLine(p models.Product, quantity, pricePerUnit decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return fmt.Errorf("product %d: %w (got %s)", p.ProductIndex, ErrInvalidQuantity, quantity)
	}
	if pricePerUnit.Sign() <= 0 {
		return fmt.Errorf("product %d: %w (got %s)", p.ProductIndex, ErrInvalidPrice, pricePerUnit)
	}
	if p.Unit.Discrete() && !quantity.IsInteger() {
		return fmt.Errorf("product %d (%s): %w (got %s)", p.ProductIndex, p.Unit, ErrFractionalQuantity, quantity)
	}

	d.lines = append(d.lines, models.OrderItem{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Unit:         p.Unit,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		VATRate:      p.VATRate,
	})
	return nil
}

// Len returns the number of lines in the draft.
func (d *Draft) Len() int { return len(d.lines) }

// Items returns the draft's lines for persistence. It errors on an empty
// draft so an order is never created without items.
func (d *Draft) Items() ([]models.OrderItem, error) {
	if len(d.lines) == 0 {
		return nil, ErrEmptyDraft
	}
	items := make([]models.OrderItem, len(d.lines))
	copy(items, d.lines)
	return items, nil
}

// Clear empties the draft after a successful commit.
func (d *Draft) Clear() { d.lines = nil }
