package inventory

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MemoryRepository serves vehicles from an in-process snapshot.
type MemoryRepository struct {
	vehicles map[int]Vehicle
}

// NewMemoryRepository copies vehicles into a new repository.
func NewMemoryRepository(vehicles []Vehicle) *MemoryRepository {
	m := make(map[int]Vehicle, len(vehicles))
	for _, v := range vehicles {
		m[v.ID] = v
	}
	return &MemoryRepository{vehicles: m}
}

// Get returns the vehicle with the given id.
func (r *MemoryRepository) Get(_ context.Context, id int) (Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return Vehicle{}, fmt.Errorf("%w: id %d", ErrVehicleNotFound, id)
	}
	return v, nil
}

// List returns every vehicle ordered by id.
func (r *MemoryRepository) List(_ context.Context) ([]Vehicle, error) {
	out := make([]Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sortByID(out)
	return out, nil
}

type catalogEntry struct {
	ID     int      `yaml:"id"`
	Make   string   `yaml:"make"`
	Model  string   `yaml:"model"`
	Year   int      `yaml:"year"`
	Price  int64    `yaml:"price"`
	Active *bool    `yaml:"active"`
	Images []string `yaml:"images"`
}

type catalogFile struct {
	Vehicles []catalogEntry `yaml:"vehicles"`
}

// ParseCatalog decodes a YAML catalog. Vehicles default to active.
func ParseCatalog(data []byte) ([]Vehicle, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	vehicles := make([]Vehicle, 0, len(file.Vehicles))
	seen := make(map[int]struct{}, len(file.Vehicles))
	for _, e := range file.Vehicles {
		if e.ID <= 0 {
			return nil, fmt.Errorf("catalog vehicle %q has invalid id %d", e.Make+" "+e.Model, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("catalog has duplicate vehicle id %d", e.ID)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("catalog vehicle %d has negative price", e.ID)
		}
		seen[e.ID] = struct{}{}

		active := true
		if e.Active != nil {
			active = *e.Active
		}
		vehicles = append(vehicles, Vehicle{
			ID:     e.ID,
			Make:   e.Make,
			Model:  e.Model,
			Year:   e.Year,
			Price:  decimal.NewFromInt(e.Price),
			Active: active,
			Images: e.Images,
		})
	}
	return vehicles, nil
}

// LoadCatalogFile reads and decodes a YAML catalog from disk.
func LoadCatalogFile(path string) ([]Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}
