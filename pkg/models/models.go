package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientCategory distinguishes company clients from private individuals.
type ClientCategory string

const (
	ClientCategoryCompany    ClientCategory = "COMPANY"
	ClientCategoryIndividual ClientCategory = "INDIVIDUAL"
)

// ProductUnit is the unit a product is sold in.
type ProductUnit string

const (
	UnitPiece ProductUnit = "szt" // pieces
	UnitKg    ProductUnit = "kg"
	UnitSet   ProductUnit = "kpl" // sets
	UnitMeter ProductUnit = "m"
)

// Discrete reports whether quantities of this unit must be whole numbers.
// Pieces and sets cannot be sold fractionally; kilograms and meters can.
func (u ProductUnit) Discrete() bool {
	return u == UnitPiece || u == UnitSet
}

// ParseProductUnit converts a unit string to a ProductUnit.
func ParseProductUnit(s string) (ProductUnit, bool) {
	switch ProductUnit(strings.TrimSpace(strings.ToLower(s))) {
	case UnitPiece:
		return UnitPiece, true
	case UnitKg:
		return UnitKg, true
	case UnitSet:
		return UnitSet, true
	case UnitMeter:
		return UnitMeter, true
	}
	return "", false
}

// PaymentStatus represents the payment lifecycle of an invoiced order.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// CompanyProfile holds the issuing company's own details, printed on every
// invoice. The application keeps exactly one profile row.
type CompanyProfile struct {
	ID                int64
	CompanyName       string
	VATID             string
	AddressStreet     string
	AddressZipcode    string
	AddressCity       string
	BankAccountNumber string
	AdditionalInfo    string // free text shown on invoices
}

// Client is a customer or supplier the company trades with.
type Client struct {
	ID       int64
	Category ClientCategory

	// Company clients
	CompanyName string
	VATID       string

	// Individual clients
	FirstName string
	LastName  string

	// Contact & address
	Email          string
	PhoneNumber    string
	AddressStreet  string
	AddressZipcode string
	AddressCity    string
}

// DisplayName returns the client's name as shown in lists and on invoices:
// the company name for companies, "First Last" for individuals.
func (c Client) DisplayName() string {
	if c.Category == ClientCategoryCompany {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Product is a catalog entry. ProductIndex is the human-facing SKU: a unique
// positive integer, either supplied by the user or auto-assigned as one
// greater than the current maximum.
type Product struct {
	ID           int64
	Name         string
	ProductIndex int64
	Unit         ProductUnit
	Stock        decimal.Decimal
	VATRate      decimal.Decimal // percentage, default 23
}

// DefaultVATRate is the standard Polish VAT rate applied when a product is
// created without an explicit rate.
var DefaultVATRate = decimal.NewFromInt(23)

// Order is a confirmed sale transaction. InvoiceNumber and PaymentDueDate
// start empty and are assigned together, at most once, when the order is
// invoiced. The order's total value is never stored; it is always derived
// from the current items.
type Order struct {
	ID             int64
	OrderDate      time.Time // set at creation, immutable
	ClientID       int64
	InvoiceNumber  *string
	PaymentDueDate *time.Time
	PaymentStatus  PaymentStatus
	Items          []OrderItem
}

// Invoiced reports whether an invoice number has been assigned.
func (o Order) Invoiced() bool {
	return o.InvoiceNumber != nil && *o.InvoiceNumber != ""
}

// OrderItem is one line of an order. PricePerUnit and VATRate are snapshots
// taken at order-creation time; later product price or rate changes do not
// affect existing orders.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string // denormalized for display
	Unit         ProductUnit
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal // net
	VATRate      decimal.Decimal // percentage
}

// IssuedDocument records one rendered invoice document handed off to the
// PDF conversion pipeline.
type IssuedDocument struct {
	ID            uuid.UUID
	OrderID       int64
	InvoiceNumber string
	IssuedAt      time.Time
}
