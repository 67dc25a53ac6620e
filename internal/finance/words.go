package finance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Polish cardinal number vocabulary.
var (
	wordsUnits = [10]string{
		"zero", "jeden", "dwa", "trzy", "cztery",
		"pięć", "sześć", "siedem", "osiem", "dziewięć",
	}
	wordsTeens = [10]string{
		"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście",
		"piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście",
	}
	wordsTens = [10]string{
		"", "", "dwadzieścia", "trzydzieści", "czterdzieści",
		"pięćdziesiąt", "sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt",
	}
	wordsHundreds = [10]string{
		"", "sto", "dwieście", "trzysta", "czterysta",
		"pięćset", "sześćset", "siedemset", "osiemset", "dziewięćset",
	}

	// Thousand-group scale names: singular, paucal (2-4) and plural forms.
	wordsScales = [][3]string{
		{"tysiąc", "tysiące", "tysięcy"},
		{"milion", "miliony", "milionów"},
		{"miliard", "miliardy", "miliardów"},
	}
)

// AmountInWords renders a money amount as the Polish sentence printed on
// invoices: "<words> złotych <words> groszy" with the first letter
// capitalized. The grosz part is the fractional part times 100, rounded to a
// whole number half away from zero, so 123.456 becomes 123 zł 46 gr and
// 10.005 becomes 10 zł 1 gr.
func AmountInWords(amount decimal.Decimal) string {
	units := amount.IntPart()
	groszy := amount.Sub(decimal.NewFromInt(units)).Mul(oneHundred).Round(0).IntPart()

	s := IntToWords(units) + " złotych " + IntToWords(groszy) + " groszy"
	return capitalize(s)
}

// IntToWords spells out an integer in Polish, supporting values up to the
// billions. Negative values are prefixed with "minus".
func IntToWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + IntToWords(-n)
	}

	// Split into thousand groups, lowest first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		if i == 0 {
			parts = append(parts, tripletToWords(g))
			continue
		}
		scale := wordsScales[i-1]
		if g == 1 {
			// "tysiąc", not "jeden tysiąc"
			parts = append(parts, scale[0])
		} else {
			parts = append(parts, tripletToWords(g)+" "+scaleForm(g, scale))
		}
	}

	return strings.Join(parts, " ")
}

// tripletToWords renders 1..999.
func tripletToWords(n int64) string {
	var parts []string

	if h := n / 100; h > 0 {
		parts = append(parts, wordsHundreds[h])
	}

	rest := n % 100
	switch {
	case rest == 0:
	case rest < 10:
		parts = append(parts, wordsUnits[rest])
	case rest < 20:
		parts = append(parts, wordsTeens[rest-10])
	default:
		parts = append(parts, wordsTens[rest/10])
		if u := rest % 10; u > 0 {
			parts = append(parts, wordsUnits[u])
		}
	}

	return strings.Join(parts, " ")
}

// scaleForm picks the grammatical form of a scale word for a group value:
// 2-4 (but not 12-14) take the paucal form, everything else the plural.
// The singular is handled by the caller for group value 1.
func scaleForm(n int64, forms [3]string) string {
	lastTwo := n % 100
	last := n % 10
	if last >= 2 && last <= 4 && (lastTwo < 12 || lastTwo > 14) {
		return forms[1]
	}
	return forms[2]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
