package document

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minierp/internal/finance"
	"minierp/pkg/models"
)

//go:embed invoice_template.html
var invoiceTemplateHTML string

var invoiceTemplate = template.Must(template.New("invoice").Parse(invoiceTemplateHTML))

// InvoiceDocument is the assembled content of one invoice, ready for layout.
// The HTML produced from it is the handoff artifact for the out-of-process
// PDF converter.
type InvoiceDocument struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string

	Seller models.CompanyProfile
	Buyer  BuyerInfo

	Lines []DocumentLine

	TotalNet     string
	TotalVAT     string
	TotalGross   string
	TotalInWords string
}

// BuyerInfo is the client block printed on the invoice.
type BuyerInfo struct {
	Name    string
	VATID   string
	Street  string
	Zipcode string
	City    string
}

// DocumentLine is one priced row of the invoice table.
type DocumentLine struct {
	No           int
	ProductName  string
	Unit         string
	Quantity     string
	PricePerUnit string
	VATRate      string
	NetValue     string
}

// BuildDocument assembles the invoice document for an invoiced order:
// company profile, client, line items and the financial summary.
func (s *Service) BuildDocument(ctx context.Context, orderID int64) (InvoiceDocument, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return InvoiceDocument{}, err
	}
	if !order.Invoiced() {
		return InvoiceDocument{}, fmt.Errorf("order %d: %w", orderID, ErrNotInvoiced)
	}

	client, err := s.store.GetClient(ctx, order.ClientID)
	if err != nil {
		return InvoiceDocument{}, err
	}

	profile, err := s.store.GetCompanyProfile(ctx)
	if err != nil {
		return InvoiceDocument{}, ErrNoCompanyProfile
	}

	totals := finance.Calculate(finance.LinesFromItems(order.Items))

	doc := InvoiceDocument{
		InvoiceNumber: *order.InvoiceNumber,
		IssueDate:     order.OrderDate.Format("2006-01-02"),
		Seller:        profile,
		Buyer: BuyerInfo{
			Name:    client.DisplayName(),
			VATID:   client.VATID,
			Street:  client.AddressStreet,
			Zipcode: client.AddressZipcode,
			City:    client.AddressCity,
		},
		TotalNet:     money(totals.Net),
		TotalVAT:     money(totals.VAT),
		TotalGross:   money(totals.Gross),
		TotalInWords: totals.GrossInWords,
	}
	if order.PaymentDueDate != nil {
		doc.DueDate = order.PaymentDueDate.Format("2006-01-02")
	}

	for i, it := range order.Items {
		doc.Lines = append(doc.Lines, DocumentLine{
			No:           i + 1,
			ProductName:  it.ProductName,
			Unit:         string(it.Unit),
			Quantity:     it.Quantity.String(),
			PricePerUnit: money(it.PricePerUnit),
			VATRate:      it.VATRate.String(),
			NetValue:     money(finance.LineNet(it)),
		})
	}

	return doc, nil
}

// Render assembles the document, writes its HTML to w and records the
// issuance in the store.
func (s *Service) Render(ctx context.Context, orderID int64, w io.Writer) (models.IssuedDocument, error) {
	doc, err := s.BuildDocument(ctx, orderID)
	if err != nil {
		return models.IssuedDocument{}, err
	}

	if err := invoiceTemplate.Execute(w, doc); err != nil {
		return models.IssuedDocument{}, fmt.Errorf("render invoice %s: %w", doc.InvoiceNumber, err)
	}

	record := models.IssuedDocument{
		ID:            uuid.New(),
		OrderID:       orderID,
		InvoiceNumber: doc.InvoiceNumber,
		IssuedAt:      s.now(),
	}
	if err := s.store.RecordIssuedDocument(ctx, record); err != nil {
		return models.IssuedDocument{}, err
	}

	s.log.Info().
		Int64("order_id", orderID).
		Str("invoice_number", doc.InvoiceNumber).
		Str("document_id", record.ID.String()).
		Msg("Invoice document rendered")
	return record, nil
}

// money formats an amount with two decimal places for display.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
