// Package financing computes installment quotes for the vehicle financing
// simulator. Everything here is pure and safe for concurrent use.
package financing

import (
	"errors"
	"fmt"

	"github.com/gervasio-autos/financing-simulator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Promotional zero-interest rule.
const (
	PromotionalTermMonths   = 12
	PromotionalMinModelYear = 2015
)

// promotionalDownPaymentRatio is the minimum share of the vehicle price the
// buyer must put down to qualify for the zero-interest 12 month plan.
var promotionalDownPaymentRatio = decimal.RequireFromString("0.6")

// PromotionalRatio returns the minimum down payment share for the
// zero-interest plan.
func PromotionalRatio() decimal.Decimal {
	return promotionalDownPaymentRatio
}

var (
	// ErrInvalidInput is wrapped by every InvalidInputError.
	ErrInvalidInput = errors.New("invalid financing input")
	// ErrUnsupportedTerm is returned for a term without a coefficient.
	ErrUnsupportedTerm = errors.New("unsupported term")
)

// InvalidInputError reports a negative monetary input.
type InvalidInputError struct {
	Field string
	Value decimal.Decimal
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s must not be negative, got %s", e.Field, e.Value.String())
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// FinancingRequest holds the inputs for a single-term quote.
type FinancingRequest struct {
	Principal        decimal.Decimal
	VehicleModelYear int
	DownPayment      decimal.Decimal
	VehiclePrice     decimal.Decimal
	TermMonths       int
}

// InstallmentQuote is the result for one term.
type InstallmentQuote struct {
	TermMonths     int             `json:"termMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	IsPromotional  bool            `json:"isPromotional"`
}

// PrincipalFor returns the amount left to finance after the down payment,
// never below zero.
func PrincipalFor(vehiclePrice, downPayment decimal.Decimal) decimal.Decimal {
	return mathutil.NonNegative(vehiclePrice.Sub(downPayment))
}

// IsPromotionalEligible reports whether the zero-interest plan applies.
// The down payment threshold is inclusive; a zero vehicle price is always
// satisfied.
func IsPromotionalEligible(termMonths, modelYear int, downPayment, vehiclePrice decimal.Decimal) bool {
	if termMonths != PromotionalTermMonths || modelYear < PromotionalMinModelYear {
		return false
	}
	threshold := mathutil.ApplyRatio(vehiclePrice, promotionalDownPaymentRatio)
	return downPayment.GreaterThanOrEqual(threshold)
}

// ComputeQuotes returns one quote per supported term, in ascending term
// order. It fails only when a monetary input is negative, in which case no
// quotes are returned.
func ComputeQuotes(principal decimal.Decimal, modelYear int, downPayment, vehiclePrice decimal.Decimal) ([]InstallmentQuote, error) {
	if err := validateAmounts(principal, downPayment, vehiclePrice); err != nil {
		return nil, err
	}

	table := tableFor(SelectTier(modelYear))
	quotes := make([]InstallmentQuote, 0, len(supportedTerms))
	for _, term := range supportedTerms {
		promo := IsPromotionalEligible(term, modelYear, downPayment, vehiclePrice)
		quotes = append(quotes, buildQuote(principal, term, table[term], promo))
	}
	return quotes, nil
}

// Quote computes the quote for the request's single term.
func (r FinancingRequest) Quote() (InstallmentQuote, error) {
	if err := validateAmounts(r.Principal, r.DownPayment, r.VehiclePrice); err != nil {
		return InstallmentQuote{}, err
	}
	coefficient, ok := Coefficient(SelectTier(r.VehicleModelYear), r.TermMonths)
	if !ok {
		return InstallmentQuote{}, fmt.Errorf("%w: %d months", ErrUnsupportedTerm, r.TermMonths)
	}
	promo := IsPromotionalEligible(r.TermMonths, r.VehicleModelYear, r.DownPayment, r.VehiclePrice)
	return buildQuote(r.Principal, r.TermMonths, coefficient, promo), nil
}

func buildQuote(principal decimal.Decimal, term int, coefficient decimal.Decimal, promo bool) InstallmentQuote {
	var monthly decimal.Decimal
	if promo {
		monthly = mathutil.RoundUnits(principal.Div(decimal.NewFromInt(int64(term))))
	} else {
		monthly = mathutil.RoundUnits(principal.Mul(coefficient))
	}
	return InstallmentQuote{
		TermMonths:     term,
		MonthlyPayment: monthly,
		TotalRepayment: monthly.Mul(decimal.NewFromInt(int64(term))),
		IsPromotional:  promo,
	}
}

func validateAmounts(principal, downPayment, vehiclePrice decimal.Decimal) error {
	for _, field := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"principal", principal},
		{"downPayment", downPayment},
		{"vehiclePrice", vehiclePrice},
	} {
		if mathutil.IsNegative(field.value) {
			return &InvalidInputError{Field: field.name, Value: field.value}
		}
	}
	return nil
}

// QuoteFor returns the quote for termMonths from a ComputeQuotes result.
func QuoteFor(quotes []InstallmentQuote, termMonths int) (InstallmentQuote, bool) {
	for _, q := range quotes {
		if q.TermMonths == termMonths {
			return q, true
		}
	}
	return InstallmentQuote{}, false
}
