// Package money provides fixed-precision decimal helpers for monetary
// amounts, quantities and tax rates. All derived values are rounded to
// two decimal places half away from zero at the point of computation;
// nothing is accumulated in binary floating point.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const Scale = 2

var (
	Zero      = decimal.Zero
	Hundred   = decimal.NewFromInt(100)
	centChunk = decimal.New(1, -Scale) // 0.01
)

var (
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
)

// Round rounds to two decimal places, half up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Parse converts a decimal-string representation into a decimal value.
// Empty input is rejected; the wire format carries money as strings.
func Parse(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidateTaxRate checks a tax rate percentage is within [0, 100].
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(Hundred) {
		return ErrInvalidTaxRate
	}
	return nil
}

// WithinCent reports whether two amounts agree within rounding
// tolerance (one cent).
func WithinCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(centChunk)
}

// MinorUnits returns the amount in minor currency units (cents),
// the representation payment processors expect.
func MinorUnits(d decimal.Decimal) int64 {
	return Round(d).Mul(Hundred).IntPart()
}
