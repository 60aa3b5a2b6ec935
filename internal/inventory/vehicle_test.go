package inventory

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleVehicles() []Vehicle {
	return []Vehicle{
		{ID: 3, Make: "Ford", Model: "Ranger XLT", Year: 2021, Price: decimal.NewFromInt(420000), Active: true},
		{ID: 1, Make: "Toyota", Model: "Hilux SRV", Year: 2023, Price: decimal.NewFromInt(500000), Active: true},
		{ID: 2, Make: "Volkswagen", Model: "Gol Trend", Year: 2018, Price: decimal.NewFromInt(180000), Active: true},
		{ID: 4, Make: "Toyota", Model: "Corolla XEi", Year: 2014, Price: decimal.NewFromInt(150000), Active: false},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		brand   string
		wantIDs []int
	}{
		{"All active", "", []int{3, 1, 2}},
		{"Single make skips inactive", "Toyota", []int{1}},
		{"Unknown make", "Fiat", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleVehicles(), tt.brand)
			ids := make([]int, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Filter(%q) ids = %v, expected %v", tt.brand, ids, tt.wantIDs)
			}
		})
	}
}

func TestMakes(t *testing.T) {
	got := Makes(sampleVehicles())
	want := []string{"Ford", "Toyota", "Volkswagen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Makes() = %v, expected %v", got, want)
	}
}

func TestTitle(t *testing.T) {
	v := Vehicle{Make: "Toyota", Model: "Hilux SRV", Year: 2023}
	if got := v.Title(); got != "Toyota Hilux SRV 2023" {
		t.Errorf("Title() = %q", got)
	}
}
