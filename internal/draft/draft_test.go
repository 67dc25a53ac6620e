package draft

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"minierp/pkg/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	screws = models.Product{
		ID: 1, Name: "Screws M4", ProductIndex: 100,
		Unit: models.UnitPiece, VATRate: dec("23"),
	}
	cable = models.Product{
		ID: 2, Name: "Cable 3x1.5", ProductIndex: 101,
		Unit: models.UnitMeter, VATRate: dec("8"),
	}
)

func TestAddLineSnapshotsVATRate(t *testing.T) {
	d := New(5)
	if err := d.AddLine(screws, dec("10"), dec("0.50")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := d.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if !items[0].VATRate.Equal(dec("23")) {
		t.Errorf("vat rate not snapshotted: got %s", items[0].VATRate)
	}
	if items[0].ProductID != screws.ID {
		t.Errorf("product id: got %d, want %d", items[0].ProductID, screws.ID)
	}
}

func TestAddLineValidation(t *testing.T) {
	cases := []struct {
		name    string
		product models.Product
		qty     string
		price   string
		wantErr error
	}{
		{"zero quantity", screws, "0", "1", ErrInvalidQuantity},
		{"negative quantity", screws, "-2", "1", ErrInvalidQuantity},
		{"zero price", screws, "1", "0", ErrInvalidPrice},
		{"negative price", screws, "1", "-0.01", ErrInvalidPrice},
		{"fractional pieces", screws, "2.5", "1", ErrFractionalQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := New(1)
			err := d.AddLine(tc.product, dec(tc.qty), dec(tc.price))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
			if d.Len() != 0 {
				t.Error("invalid line must not be appended")
			}
		})
	}
}

func TestAddLineFractionalContinuousUnit(t *testing.T) {
	d := New(1)
	if err := d.AddLine(cable, dec("2.5"), dec("4.20")); err != nil {
		t.Fatalf("fractional quantity must be allowed for meters: %v", err)
	}
}

func TestItemsEmptyDraft(t *testing.T) {
	d := New(1)
	if _, err := d.Items(); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("got %v, want ErrEmptyDraft", err)
	}
}

func TestClear(t *testing.T) {
	d := New(1)
	if err := d.AddLine(screws, dec("1"), dec("1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Clear()
	if d.Len() != 0 {
		t.Error("draft must be empty after Clear")
	}
}
