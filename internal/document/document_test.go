package document

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"minierp/internal/numbering"
	"minierp/pkg/models"
)

type fakeStorage struct {
	orders  map[int64]models.Order
	clients map[int64]models.Client
	profile *models.CompanyProfile
	history []numbering.InvoicedOrder

	assigned map[int64]string
	recorded []models.IssuedDocument
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		orders:   map[int64]models.Order{},
		clients:  map[int64]models.Client{},
		assigned: map[int64]string{},
	}
}

func (f *fakeStorage) GetOrder(_ context.Context, id int64) (models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, errors.New("not found")
	}
	return o, nil
}

func (f *fakeStorage) GetClient(_ context.Context, id int64) (models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return models.Client{}, errors.New("not found")
	}
	return c, nil
}

func (f *fakeStorage) GetCompanyProfile(context.Context) (models.CompanyProfile, error) {
	if f.profile == nil {
		return models.CompanyProfile{}, errors.New("not found")
	}
	return *f.profile, nil
}

func (f *fakeStorage) InvoicedOrdersInMonth(context.Context, int, int) ([]numbering.InvoicedOrder, error) {
	return f.history, nil
}

func (f *fakeStorage) AssignInvoice(_ context.Context, orderID int64, number string, dueDate time.Time) error {
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("not found")
	}
	f.assigned[orderID] = number
	o.InvoiceNumber = &number
	o.PaymentDueDate = &dueDate
	f.orders[orderID] = o
	return nil
}

func (f *fakeStorage) RecordIssuedDocument(_ context.Context, doc models.IssuedDocument) error {
	f.recorded = append(f.recorded, doc)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testService(f *fakeStorage, now time.Time) *Service {
	svc := NewService(f, 14)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueFirstInvoiceOfMonth(t *testing.T) {
	now := time.Date(2026, time.April, 8, 10, 0, 0, 0, time.UTC)
	f := newFakeStorage()
	f.orders[1] = models.Order{ID: 1, ClientID: 1, OrderDate: now}

	number, dueDate, err := testService(f, now).Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "FV/1/4/2026"; number != want {
		t.Errorf("got %q, want %q", number, want)
	}
	if want := now.AddDate(0, 0, 14); !dueDate.Equal(want) {
		t.Errorf("due date: got %s, want %s", dueDate, want)
	}
	if f.assigned[1] != number {
		t.Error("number must be persisted via AssignInvoice")
	}
}

func TestIssueIncrementsFromHistory(t *testing.T) {
	now := time.Date(2026, time.April, 20, 10, 0, 0, 0, time.UTC)
	f := newFakeStorage()
	f.orders[2] = models.Order{ID: 2, ClientID: 1, OrderDate: now}
	f.history = []numbering.InvoicedOrder{
		{OrderID: 1, InvoiceNumber: "FV/5/4/2026", OrderDate: now.AddDate(0, 0, -12)},
	}

	number, _, err := testService(f, now).Issue(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "FV/6/4/2026"; number != want {
		t.Errorf("got %q, want %q", number, want)
	}
}

func TestIssueMalformedHistoryAbortsWithoutAssigning(t *testing.T) {
	now := time.Date(2026, time.April, 20, 10, 0, 0, 0, time.UTC)
	f := newFakeStorage()
	f.orders[2] = models.Order{ID: 2, ClientID: 1, OrderDate: now}
	f.history = []numbering.InvoicedOrder{
		{OrderID: 1, InvoiceNumber: "FV-5-4-2026", OrderDate: now},
	}

	_, _, err := testService(f, now).Issue(context.Background(), 2)
	if !errors.Is(err, numbering.ErrMalformedNumber) {
		t.Fatalf("expected ErrMalformedNumber, got %v", err)
	}
	if len(f.assigned) != 0 {
		t.Error("nothing may be assigned when numbering fails")
	}
}

func TestBuildDocumentRequiresInvoice(t *testing.T) {
	now := time.Date(2026, time.April, 8, 10, 0, 0, 0, time.UTC)
	f := newFakeStorage()
	f.orders[1] = models.Order{ID: 1, ClientID: 1, OrderDate: now}

	_, err := testService(f, now).BuildDocument(context.Background(), 1)
	if !errors.Is(err, ErrNotInvoiced) {
		t.Errorf("expected ErrNotInvoiced, got %v", err)
	}
}

func TestRenderInvoiceDocument(t *testing.T) {
	now := time.Date(2026, time.April, 8, 10, 0, 0, 0, time.UTC)
	number := "FV/3/4/2026"
	due := now.AddDate(0, 0, 14)

	f := newFakeStorage()
	f.profile = &models.CompanyProfile{
		CompanyName: "Widget Works Sp. z o.o.",
		VATID:       "PL5260001246",
	}
	f.clients[7] = models.Client{
		ID: 7, Category: models.ClientCategoryCompany,
		CompanyName: "Test Corp", VATID: "PL9999999999",
	}
	f.orders[1] = models.Order{
		ID: 1, ClientID: 7, OrderDate: now,
		InvoiceNumber: &number, PaymentDueDate: &due,
		PaymentStatus: models.PaymentStatusUnpaid,
		Items: []models.OrderItem{
			{ProductName: "Widget", Unit: models.UnitPiece,
				Quantity: dec("2"), PricePerUnit: dec("100"), VATRate: dec("23")},
		},
	}

	var buf bytes.Buffer
	record, err := testService(f, now).Render(context.Background(), 1, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		number,
		"Test Corp",
		"Widget Works Sp. z o.o.",
		"246.00",
		"Dwieście czterdzieści sześć złotych zero groszy",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}

	if record.InvoiceNumber != number || record.OrderID != 1 {
		t.Errorf("returned record mismatch: %+v", record)
	}
	if len(f.recorded) != 1 {
		t.Fatalf("expected 1 issued document record, got %d", len(f.recorded))
	}
	if f.recorded[0].ID != record.ID {
		t.Errorf("persisted record differs from returned one: %+v vs %+v", f.recorded[0], record)
	}
}
