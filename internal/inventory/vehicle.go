// Package inventory provides read-only lookups of the vehicles the
// simulator can quote.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	// ErrVehicleNotFound is returned when no vehicle has the requested id.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrInactiveVehicle is returned when a vehicle is no longer offered.
	ErrInactiveVehicle = errors.New("vehicle is not active")
)

// Vehicle is the subset of a catalog record the simulator needs.
type Vehicle struct {
	ID     int             `json:"id"`
	Make   string          `json:"make"`
	Model  string          `json:"model"`
	Year   int             `json:"year"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
	Images []string        `json:"images,omitempty"`
}

// Title is the make, model and year as shown to buyers.
func (v Vehicle) Title() string {
	return fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year)
}

// Repository looks vehicles up by identifier.
type Repository interface {
	Get(ctx context.Context, id int) (Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
}

// Filter returns the active vehicles, restricted to brand when it is not
// empty.
func Filter(vehicles []Vehicle, brand string) []Vehicle {
	out := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.Active {
			continue
		}
		if brand != "" && v.Make != brand {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Makes returns the sorted, de-duplicated makes of the given vehicles.
func Makes(vehicles []Vehicle) []string {
	seen := make(map[string]struct{}, len(vehicles))
	makes := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if _, ok := seen[v.Make]; ok {
			continue
		}
		seen[v.Make] = struct{}{}
		makes = append(makes, v.Make)
	}
	sort.Strings(makes)
	return makes
}

func sortByID(vehicles []Vehicle) {
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
}
