package financing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier identifies which coefficient table applies to a vehicle.
type Tier int

const (
	// TierOlder covers vehicles with a model year before NewerVehicleYear.
	TierOlder Tier = iota
	// TierNewer covers vehicles with a model year of NewerVehicleYear or later.
	TierNewer
)

// String returns the tier name used in logs and API responses.
func (t Tier) String() string {
	switch t {
	case TierNewer:
		return "newer"
	case TierOlder:
		return "older"
	default:
		return "unknown"
	}
}

// NewerVehicleYear is the first model year priced with the newer table.
const NewerVehicleYear = 2021

// supportedTerms lists every term length, in months, that the simulator
// quotes. Ascending.
var supportedTerms = []int{6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36}

// Coefficients are the French-system payment fraction per unit of
// principal, at TNA 34% for newer vehicles and TNA 38% for older ones,
// rounded to six decimals.
var (
	newerCoefficients = buildTable(map[int]string{
		6: "0.183579", 8: "0.141457", 10: "0.116236", 12: "0.099465",
		14: "0.087524", 16: "0.078600", 18: "0.071688", 20: "0.066184",
		22: "0.061704", 24: "0.057992", 26: "0.054871", 28: "0.052213",
		30: "0.049926", 32: "0.047941", 34: "0.046203", 36: "0.044672",
	})
	olderCoefficients = buildTable(map[int]string{
		6: "0.185619", 8: "0.143460", 10: "0.118230", 12: "0.101464",
		14: "0.089535", 16: "0.080629", 18: "0.073737", 20: "0.068256",
		22: "0.063800", 24: "0.060113", 26: "0.057017", 28: "0.054385",
		30: "0.052125", 32: "0.050166", 34: "0.048454", 36: "0.046950",
	})
)

func buildTable(raw map[int]string) map[int]decimal.Decimal {
	table := make(map[int]decimal.Decimal, len(raw))
	for term, value := range raw {
		table[term] = decimal.RequireFromString(value)
	}
	return table
}

func tableFor(tier Tier) map[int]decimal.Decimal {
	if tier == TierNewer {
		return newerCoefficients
	}
	return olderCoefficients
}

// SelectTier picks the coefficient tier from the model year alone.
func SelectTier(modelYear int) Tier {
	if modelYear >= NewerVehicleYear {
		return TierNewer
	}
	return TierOlder
}

// Terms returns the supported term lengths in months, ascending. The slice
// is a copy.
func Terms() []int {
	return append([]int(nil), supportedTerms...)
}

// IsSupportedTerm reports whether termMonths has a coefficient.
func IsSupportedTerm(termMonths int) bool {
	i := sort.SearchInts(supportedTerms, termMonths)
	return i < len(supportedTerms) && supportedTerms[i] == termMonths
}

// Coefficient returns the payment fraction for a tier and term.
func Coefficient(tier Tier, termMonths int) (decimal.Decimal, bool) {
	c, ok := tableFor(tier)[termMonths]
	return c, ok
}

// CoefficientTable returns a copy of the table for tier.
func CoefficientTable(tier Tier) map[int]decimal.Decimal {
	src := tableFor(tier)
	out := make(map[int]decimal.Decimal, len(src))
	for term, c := range src {
		out[term] = c
	}
	return out
}

// Nominal annual rates (TNA) the coefficient tables were derived from.
var (
	newerNominalRate = decimal.RequireFromString("0.34")
	olderNominalRate = decimal.RequireFromString("0.38")
)

// NominalRate returns the annual rate behind a tier's table.
func NominalRate(tier Tier) decimal.Decimal {
	if tier == TierNewer {
		return newerNominalRate
	}
	return olderNominalRate
}
