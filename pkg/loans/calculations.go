// Package loans provides French-system amortization utilities.
package loans

import (
	"math"

	"github.com/gervasio-autos/financing-simulator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// MonthsPerYear converts a nominal annual rate into a monthly one.
const MonthsPerYear = 12

// Payment holds the values for a given installment.
type Payment struct {
	Number             int             `json:"number"`
	Payment            decimal.Decimal `json:"payment"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	RemainingPrincipal decimal.Decimal `json:"remainingPrincipal"`
}

// PaymentFactor returns the fixed installment per unit of principal for a
// nominal annual rate (e.g. 0.34) and term, using the standard
// amortization formula.
func PaymentFactor(annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		// For zero interest, simply divide by term
		return 1 / float64(termMonths)
	}

	periodicRate := annualRate / MonthsPerYear
	power := math.Pow(1+periodicRate, float64(termMonths))
	return periodicRate * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of an installment.
func CalculateInterestPayment(remainingPrincipal, annualRate decimal.Decimal) decimal.Decimal {
	return remainingPrincipal.Mul(annualRate).Div(decimal.NewFromInt(MonthsPerYear))
}

// Schedule splits a fixed installment into interest and principal for every
// month of the term. Amounts are rounded to whole units; the last
// installment absorbs the rounding so the balance ends at zero.
func Schedule(principal, installment, annualRate decimal.Decimal, termMonths int) []Payment {
	if termMonths <= 0 {
		return nil
	}

	schedule := make([]Payment, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		interest := mathutil.RoundUnits(CalculateInterestPayment(remaining, annualRate))
		amortized := installment.Sub(interest)
		payment := installment

		if month == termMonths || amortized.GreaterThan(remaining) {
			amortized = remaining
			payment = remaining.Add(interest)
		}
		remaining = remaining.Sub(amortized)

		schedule = append(schedule, Payment{
			Number:             month,
			Payment:            payment,
			Principal:          amortized,
			Interest:           interest,
			RemainingPrincipal: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return schedule
}

// TotalInterest sums the interest across a schedule.
func TotalInterest(schedule []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range schedule {
		total = total.Add(p.Interest)
	}
	return total
}
