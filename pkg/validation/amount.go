package validation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmountTooLong is returned for inputs with more digits than any price.
	ErrAmountTooLong = errors.New("amount has too many digits")
	// ErrAmountPrecision is returned for amounts finer than MaxAmountScale decimals.
	ErrAmountPrecision = errors.New("amount has too many decimal places")
)

const (
	// MaxAmountDigits bounds the integer part of an amount.
	MaxAmountDigits = 15
	// MaxAmountScale bounds the decimal places of an amount.
	MaxAmountScale = 2
)

// ParseAmount sanitizes free-form money input by dropping every character
// that is not an ASCII digit, so "$ 1.500.000" and "1500000" read the same.
// Empty input is zero.
func ParseAmount(text string) (decimal.Decimal, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return decimal.Zero, nil
	}
	if len(digits) > MaxAmountDigits {
		return decimal.Zero, ErrAmountTooLong
	}
	return decimal.NewFromString(digits)
}

// CheckAmount bounds an already-parsed amount to at most MaxAmountDigits
// integer digits and MaxAmountScale decimals. Only the exponent and the
// coefficient length are inspected, so the cost does not depend on how
// far the exponent reaches.
func CheckAmount(d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -MaxAmountScale {
		return ErrAmountPrecision
	}
	if exp > MaxAmountDigits {
		return ErrAmountTooLong
	}
	// Digits before the decimal point are the coefficient digits shifted by
	// the exponent.
	if d.NumDigits()+int(exp) > MaxAmountDigits {
		return ErrAmountTooLong
	}
	return nil
}
