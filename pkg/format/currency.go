// Package format renders money amounts the way the dealership shows them.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the display locale for prices.
var Locale = language.MustParse("es-AR")

// Price returns a whole-unit price with a peso sign and es-AR thousands
// separators (e.g., "$ 1.234.567").
func Price(amount decimal.Decimal) string {
	units := amount.Round(0)
	if units.IsNegative() {
		return "-$ " + Number(units.Abs())
	}
	return "$ " + Number(units)
}

// Number returns the amount rounded to whole units with es-AR separators.
func Number(amount decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%d", amount.Round(0).IntPart())
}
