package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"R$ 39.476,27", "39476.27"},
		{"39.476,27", "39476.27"},
		{"R$ 1.234.567,89", "1234567.89"},
		{"-1.234,56", "-1234.56"},
		{"R$ -1.234,56", "-1234.56"},
		{"123,45", "123.45"},
		{"500", "500"},
		{" R$ 10,00 ", "10"},
		{"-", "0"},
		{"", "0"},
		{"0,00", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"R$ abc", "0"},
		{"12,34,56", "0"},
	}
	for _, tc := range cases {
		got := ParseCurrency(tc.in)
		want := decimal.RequireFromString(tc.out)
		if !got.Equal(want) {
			t.Fatalf("%q: expected %s, got %s", tc.in, want, got)
		}
	}
}

func TestParseCurrencyFloatPrecision(t *testing.T) {
	got := ParseCurrency("R$ 39.476,27").InexactFloat64()
	if diff := got - 39476.27; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected 39476.27 within 1e-9, got %v", got)
	}
}
