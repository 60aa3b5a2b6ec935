// Package simulator runs a financing simulation for a catalog vehicle and
// prepares the contact hand-off.
package simulator

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gervasio-autos/financing-simulator/internal/config"
	"github.com/gervasio-autos/financing-simulator/internal/inventory"
	"github.com/gervasio-autos/financing-simulator/pkg/financing"
	"github.com/gervasio-autos/financing-simulator/pkg/format"
	"github.com/gervasio-autos/financing-simulator/pkg/loans"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Simulation is everything the quote grid displays for one vehicle and
// down payment.
type Simulation struct {
	Vehicle     inventory.Vehicle            `json:"vehicle"`
	DownPayment decimal.Decimal              `json:"downPayment"`
	Principal   decimal.Decimal              `json:"principal"`
	Tier        string                       `json:"tier"`
	Quotes      []financing.InstallmentQuote `json:"quotes"`
	FullyPaid   bool                         `json:"fullyPaid"`
	ContactURL  string                       `json:"contactUrl,omitempty"`
}

// Service computes simulations against a vehicle repository.
type Service struct {
	repo    inventory.Repository
	contact config.ContactConfig
	logger  *zap.Logger
}

// NewService creates a simulator service.
func NewService(repo inventory.Repository, contact config.ContactConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, contact: contact, logger: logger}
}

// Vehicles lists active vehicles, optionally for one make, together with
// the makes available for filtering.
func (s *Service) Vehicles(ctx context.Context, brand string) ([]inventory.Vehicle, []string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	active := inventory.Filter(all, "")
	return inventory.Filter(active, brand), inventory.Makes(active), nil
}

// Simulate looks the vehicle up and quotes every supported term for the
// amount left after the down payment.
func (s *Service) Simulate(ctx context.Context, vehicleID int, downPayment decimal.Decimal) (Simulation, error) {
	vehicle, err := s.repo.Get(ctx, vehicleID)
	if err != nil {
		return Simulation{}, err
	}
	if !vehicle.Active {
		return Simulation{}, fmt.Errorf("%w: id %d", inventory.ErrInactiveVehicle, vehicleID)
	}

	principal := financing.PrincipalFor(vehicle.Price, downPayment)
	quotes, err := financing.ComputeQuotes(principal, vehicle.Year, downPayment, vehicle.Price)
	if err != nil {
		s.logger.Debug("rejected simulation input",
			zap.String("op", "simulator.Simulate"),
			zap.Int("vehicle", vehicleID),
			zap.Error(err),
		)
		return Simulation{}, err
	}

	sim := Simulation{
		Vehicle:     vehicle,
		DownPayment: downPayment,
		Principal:   principal,
		Tier:        financing.SelectTier(vehicle.Year).String(),
		Quotes:      quotes,
		FullyPaid:   principal.IsZero(),
	}
	if !sim.FullyPaid {
		sim.ContactURL = s.ContactLink(vehicle, principal)
	}

	s.logger.Debug("simulation computed",
		zap.String("op", "simulator.Simulate"),
		zap.Int("vehicle", vehicleID),
		zap.String("principal", principal.String()),
		zap.String("tier", sim.Tier),
		zap.Bool("fullyPaid", sim.FullyPaid),
	)
	return sim, nil
}

// Schedule is the month-by-month breakdown of one quote.
type Schedule struct {
	Quote    financing.InstallmentQuote `json:"quote"`
	Rate     decimal.Decimal            `json:"rate"`
	Payments []loans.Payment            `json:"payments"`
}

// Schedule simulates the vehicle and splits the quote for termMonths into
// interest and principal. Promotional quotes carry no interest.
func (s *Service) Schedule(ctx context.Context, vehicleID int, downPayment decimal.Decimal, termMonths int) (Schedule, error) {
	if !financing.IsSupportedTerm(termMonths) {
		return Schedule{}, fmt.Errorf("%w: %d months", financing.ErrUnsupportedTerm, termMonths)
	}
	sim, err := s.Simulate(ctx, vehicleID, downPayment)
	if err != nil {
		return Schedule{}, err
	}

	quote, _ := financing.QuoteFor(sim.Quotes, termMonths)
	rate := decimal.Zero
	if !quote.IsPromotional {
		rate = financing.NominalRate(financing.SelectTier(sim.Vehicle.Year))
	}

	s.logger.Debug("schedule computed",
		zap.String("op", "simulator.Schedule"),
		zap.Int("vehicle", vehicleID),
		zap.Int("term", termMonths),
		zap.Bool("promotional", quote.IsPromotional),
	)
	return Schedule{
		Quote:    quote,
		Rate:     rate,
		Payments: loans.Schedule(sim.Principal, quote.MonthlyPayment, rate, termMonths),
	}, nil
}

// ContactLink builds the chat deep link carrying the vehicle and the amount
// to finance.
func (s *Service) ContactLink(vehicle inventory.Vehicle, principal decimal.Decimal) string {
	summary := fmt.Sprintf("Hola! Quiero consultar por la financiacion del %s. Monto a financiar: %s",
		vehicle.Title(), format.Price(principal))
	query := url.Values{"text": {summary}}
	return s.contact.BaseURL + s.contact.Phone + "?" + query.Encode()
}
