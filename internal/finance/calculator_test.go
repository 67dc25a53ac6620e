package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(qty, price, rate string) Line {
	return Line{Quantity: dec(qty), PricePerUnit: dec(price), VATRate: dec(rate)}
}

func TestCalculateEmptyOrder(t *testing.T) {
	got := Calculate(nil)

	if !got.Net.IsZero() || !got.VAT.IsZero() || !got.Gross.IsZero() {
		t.Errorf("empty order must yield zero totals, got net=%s vat=%s gross=%s",
			got.Net, got.VAT, got.Gross)
	}
	if want := "Zero złotych zero groszy"; got.GrossInWords != want {
		t.Errorf("got %q, want %q", got.GrossInWords, want)
	}
}

func TestCalculateSingleLine(t *testing.T) {
	got := Calculate([]Line{line("2", "100", "23")})

	if want := dec("200"); !got.Net.Equal(want) {
		t.Errorf("net: got %s, want %s", got.Net, want)
	}
	if want := dec("46"); !got.VAT.Equal(want) {
		t.Errorf("vat: got %s, want %s", got.VAT, want)
	}
	if want := dec("246"); !got.Gross.Equal(want) {
		t.Errorf("gross: got %s, want %s", got.Gross, want)
	}
}

func TestCalculateMixedRates(t *testing.T) {
	lines := []Line{
		line("3", "10.50", "23"), // net 31.50, vat 7.245
		line("1.5", "8", "8"),    // net 12.00, vat 0.96
		line("4", "2.25", "0"),   // net 9.00, vat 0
	}

	got := Calculate(lines)

	if want := dec("52.50"); !got.Net.Equal(want) {
		t.Errorf("net: got %s, want %s", got.Net, want)
	}
	if want := dec("8.205"); !got.VAT.Equal(want) {
		t.Errorf("vat: got %s, want %s", got.VAT, want)
	}
	if !got.Gross.Equal(got.Net.Add(got.VAT)) {
		t.Errorf("gross must equal net+vat: gross=%s net=%s vat=%s",
			got.Gross, got.Net, got.VAT)
	}
}

func TestCalculateGrossIsNetPlusVAT(t *testing.T) {
	cases := [][]Line{
		{line("1", "0.01", "23")},
		{line("7", "19.99", "23"), line("2", "5", "5")},
		{line("0.33", "3.03", "8"), line("100", "0.10", "23"), line("1", "1000", "0")},
	}

	for _, lines := range cases {
		got := Calculate(lines)
		if !got.Gross.Equal(got.Net.Add(got.VAT)) {
			t.Errorf("gross != net+vat for %v: gross=%s net=%s vat=%s",
				lines, got.Gross, got.Net, got.VAT)
		}
	}
}

func TestCalculateIsPure(t *testing.T) {
	lines := []Line{line("2", "100", "23"), line("1", "3.33", "8")}

	first := Calculate(lines)
	second := Calculate(lines)

	if !first.Net.Equal(second.Net) || !first.VAT.Equal(second.VAT) ||
		!first.Gross.Equal(second.Gross) || first.GrossInWords != second.GrossInWords {
		t.Error("repeated calculation over the same lines must yield identical totals")
	}
}

func TestCalculateNegativeInputsComputeThrough(t *testing.T) {
	// Validation lives in the order draft; the calculator does plain
	// arithmetic even over nonsensical input.
	got := Calculate([]Line{line("-2", "100", "23")})

	if want := dec("-200"); !got.Net.Equal(want) {
		t.Errorf("net: got %s, want %s", got.Net, want)
	}
	if want := dec("-246"); !got.Gross.Equal(want) {
		t.Errorf("gross: got %s, want %s", got.Gross, want)
	}
}

func TestGrossInWords(t *testing.T) {
	got := Calculate([]Line{line("1", "123.46", "0")})

	want := "Sto dwadzieścia trzy złotych czterdzieści sześć groszy"
	if got.GrossInWords != want {
		t.Errorf("got %q, want %q", got.GrossInWords, want)
	}
}

func TestAmountInWordsRoundsSubunits(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"123.456", "Sto dwadzieścia trzy złotych czterdzieści sześć groszy"},
		// The .005 boundary rounds half away from zero.
		{"10.005", "Dziesięć złotych jeden groszy"},
		{"0.994", "Zero złotych dziewięćdziesiąt dziewięć groszy"},
		{"1", "Jeden złotych zero groszy"},
	}

	for _, tc := range cases {
		if got := AmountInWords(dec(tc.amount)); got != tc.want {
			t.Errorf("AmountInWords(%s): got %q, want %q", tc.amount, got, tc.want)
		}
	}
}
