// Package finance derives the monetary summary of an order: net, VAT and
// gross totals plus the amount-in-words line printed on invoices.
//
// Everything in this package is a pure function of its input. Validation of
// quantities and prices happens where data enters the system (the order
// draft); the calculator computes whatever arithmetic results, including
// negative totals.
package finance

import (
	"github.com/shopspring/decimal"

	"minierp/pkg/models"
)

// Line is one order line as the calculator sees it: quantity, net unit price
// and VAT rate in percent.
type Line struct {
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	VATRate      decimal.Decimal
}

// Totals is the monetary summary of an order.
type Totals struct {
	Net   decimal.Decimal // sum of quantity * price_per_unit
	VAT   decimal.Decimal // sum of quantity * price_per_unit * vat_rate / 100
	Gross decimal.Decimal // Net + VAT

	// GrossInWords is the gross amount spelled out in Polish, e.g.
	// "Sto dwadzieścia trzy złotych czterdzieści sześć groszy". The grosz
	// part is the fractional part rounded to whole groszy, half away from
	// zero.
	GrossInWords string
}

var oneHundred = decimal.NewFromInt(100)

// Calculate computes the totals for a set of order lines. An empty set
// yields zero totals and the zero wording.
func Calculate(lines []Line) Totals {
	net := decimal.Zero
	vat := decimal.Zero

	for _, l := range lines {
		lineNet := l.Quantity.Mul(l.PricePerUnit)
		net = net.Add(lineNet)
		vat = vat.Add(lineNet.Mul(l.VATRate).Div(oneHundred))
	}

	gross := net.Add(vat)

	return Totals{
		Net:          net,
		VAT:          vat,
		Gross:        gross,
		GrossInWords: AmountInWords(gross),
	}
}

// LinesFromItems converts persisted order items to calculator lines.
func LinesFromItems(items []models.OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
			VATRate:      it.VATRate,
		})
	}
	return lines
}

// LineNet returns the net value of a single order item, for list displays.
func LineNet(it models.OrderItem) decimal.Decimal {
	return it.Quantity.Mul(it.PricePerUnit)
}
