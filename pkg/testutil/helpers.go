// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/gervasio-autos/financing-simulator/internal/inventory"
	"github.com/gervasio-autos/financing-simulator/pkg/financing"
	"github.com/shopspring/decimal"
)

// FindQuote finds the quote for a term in the results slice.
// Returns a pointer to the quote if found, nil otherwise.
func FindQuote(quotes []financing.InstallmentQuote, termMonths int) *financing.InstallmentQuote {
	for i := range quotes {
		if quotes[i].TermMonths == termMonths {
			return &quotes[i]
		}
	}
	return nil
}

// SampleVehicles returns a small catalog: a newer active pickup, an older
// active hatchback and an inactive sedan.
func SampleVehicles() []inventory.Vehicle {
	return []inventory.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Hilux SRV", Year: 2023, Price: decimal.NewFromInt(500000), Active: true},
		{ID: 2, Make: "Volkswagen", Model: "Gol Trend", Year: 2018, Price: decimal.NewFromInt(180000), Active: true},
		{ID: 3, Make: "Toyota", Model: "Corolla XEi", Year: 2014, Price: decimal.NewFromInt(150000), Active: false},
	}
}
