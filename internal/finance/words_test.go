package finance

import "testing"

func TestIntToWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{1, "jeden"},
		{7, "siedem"},
		{10, "dziesięć"},
		{11, "jedenaście"},
		{15, "piętnaście"},
		{20, "dwadzieścia"},
		{21, "dwadzieścia jeden"},
		{46, "czterdzieści sześć"},
		{99, "dziewięćdziesiąt dziewięć"},
		{100, "sto"},
		{123, "sto dwadzieścia trzy"},
		{200, "dwieście"},
		{512, "pięćset dwanaście"},
		{999, "dziewięćset dziewięćdziesiąt dziewięć"},
		{1000, "tysiąc"},
		{1001, "tysiąc jeden"},
		{2000, "dwa tysiące"},
		{5000, "pięć tysięcy"},
		{12000, "dwanaście tysięcy"},
		{22000, "dwadzieścia dwa tysiące"},
		{123456, "sto dwadzieścia trzy tysiące czterysta pięćdziesiąt sześć"},
		{1000000, "milion"},
		{2000000, "dwa miliony"},
		{5000000, "pięć milionów"},
		{1000000000, "miliard"},
		{1234567890, "miliard dwieście trzydzieści cztery miliony pięćset sześćdziesiąt siedem tysięcy osiemset dziewięćdziesiąt"},
		{-42, "minus czterdzieści dwa"},
	}

	for _, tc := range cases {
		if got := IntToWords(tc.n); got != tc.want {
			t.Errorf("IntToWords(%d): got %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestScaleForm(t *testing.T) {
	forms := [3]string{"tysiąc", "tysiące", "tysięcy"}

	cases := []struct {
		n    int64
		want string
	}{
		{2, "tysiące"},
		{4, "tysiące"},
		{5, "tysięcy"},
		{11, "tysięcy"},
		{12, "tysięcy"},
		{14, "tysięcy"},
		{22, "tysiące"},
		{104, "tysiące"},
		{112, "tysięcy"},
	}

	for _, tc := range cases {
		if got := scaleForm(tc.n, forms); got != tc.want {
			t.Errorf("scaleForm(%d): got %q, want %q", tc.n, got, tc.want)
		}
	}
}
