// Package mathutil provides common currency arithmetic helpers.
package mathutil

import (
	"github.com/shopspring/decimal"
)

// RoundUnits rounds a value to whole currency units, half away from zero.
func RoundUnits(val decimal.Decimal) decimal.Decimal {
	return val.Round(0)
}

// NonNegative clamps a value at zero.
func NonNegative(val decimal.Decimal) decimal.Decimal {
	if val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// IsNegative reports whether a value is below zero.
func IsNegative(val decimal.Decimal) bool {
	return val.Sign() < 0
}

// ApplyRatio multiplies value by ratio.
func ApplyRatio(value, ratio decimal.Decimal) decimal.Decimal {
	return value.Mul(ratio)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Div(total).Mul(decimal.NewFromInt(100))
}
