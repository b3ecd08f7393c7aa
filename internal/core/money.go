// Package core holds the transaction and budget model and the pure
// aggregation functions derived from them.
//
// This file contains amount parsing. Amounts are decimal values, never binary
// floats, so sums displayed to the cent do not drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers in the stable persistence contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount converts a decimal string to an exact amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rejects negative values. Returns ErrInvalidAmount for anything that does
// not parse as a non-negative decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseLimit converts a decimal string to a budget limit, which must be
// strictly positive.
func ParseLimit(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, ErrInvalidLimit
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidLimit
	}
	return d, nil
}
