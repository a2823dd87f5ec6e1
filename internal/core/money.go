// Package core implements the data-normalization and derivation pipeline:
// locale currency and date parsing, the three CSV record parsers, the monthly
// financial deriver and the view aggregation on top of it.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency converts pt-BR formatted monetary text into a decimal amount.
//
// Accepted shapes are "R$ 39.476,27", "39.476,27", "-1.234,56" and the zero
// literals "-", "" and "0,00". Dots are thousands separators and the comma is
// the decimal separator. The parser never fails: anything that does not
// survive normalization degrades to zero.
func ParseCurrency(value string) decimal.Decimal {
	clean := strings.TrimSpace(value)
	if clean == "" || clean == "-" || clean == "0,00" {
		return decimal.Zero
	}

	// Drop the currency marker, then the thousands dots, then swap the
	// decimal comma. The sign rides along untouched.
	s := strings.TrimSpace(strings.TrimPrefix(clean, "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
