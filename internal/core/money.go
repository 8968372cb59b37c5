// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed by a user
// and for summing amounts without accumulating float error.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountDigits bounds the integer part so amounts stay exact in float64.
const maxAmountDigits = 15

// ParseAmount converts a decimal string to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. The
// value is not rounded: currencies differ in precision, and rounding is a
// display concern. Returns ErrInvalidAmount for empty, signed, malformed or
// zero input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0.063") -> 0.063, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		return 0, ErrInvalidAmount
	}
	intPart, _, _ := strings.Cut(s, ".")
	if len(strings.TrimLeft(intPart, "0")) > maxAmountDigits {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return d.InexactFloat64(), nil
}

// Sum adds amounts in decimal arithmetic and returns the float result.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// Accumulator sums amounts in decimal arithmetic.
type Accumulator struct {
	total decimal.Decimal
}

// Add adds an amount to the running total.
func (a *Accumulator) Add(amount float64) {
	a.total = a.total.Add(decimal.NewFromFloat(amount))
}

// Total returns the running total.
func (a *Accumulator) Total() float64 {
	return a.total.InexactFloat64()
}
