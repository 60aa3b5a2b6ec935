package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gervasio-autos/financing-simulator/internal/config"
	"github.com/gervasio-autos/financing-simulator/internal/inventory"
	"github.com/gervasio-autos/financing-simulator/internal/server"
	"github.com/gervasio-autos/financing-simulator/internal/simulator"
	"github.com/gervasio-autos/financing-simulator/pkg/constants"
	"github.com/gervasio-autos/financing-simulator/pkg/output"
	"github.com/gervasio-autos/financing-simulator/pkg/testutil"
	"github.com/gervasio-autos/financing-simulator/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// newService loads the test configuration and wires the service exactly as
// main() does.
func newService(t *testing.T) (*config.Configuration, *simulator.Service) {
	t.Helper()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	repo, closeRepo, err := inventory.Open(context.Background(), conf.Inventory, zap.NewNop())
	if err != nil {
		t.Fatalf("inventory.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := closeRepo(); err != nil {
			t.Errorf("close inventory: %v", err)
		}
	})
	return conf, simulator.NewService(repo, conf.Contact, zap.NewNop())
}

// TestMainIntegrationBaseline runs the published example scenario: a 2023
// pickup priced 500000 with 300000 down.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, svc := newService(t)

	if conf.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
	if conf.Contact.BaseURL != "https://wa.me/" {
		t.Errorf("BaseURL = %q, expected trailing slash to be added", conf.Contact.BaseURL)
	}

	down, err := validation.ParseAmount("$ 300.000")
	if err != nil {
		t.Fatalf("ParseAmount() error = %v", err)
	}
	sim, err := svc.Simulate(context.Background(), 1, down)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	baseline := map[int]struct {
		monthly, total int64
		promotional    bool
	}{
		6:  {36716, 220296, false},
		12: {16667, 200004, true},
		24: {11598, 278352, false},
		36: {8934, 321624, false},
	}
	for term, want := range baseline {
		q := testutil.FindQuote(sim.Quotes, term)
		if q == nil {
			t.Errorf("missing quote for %d months", term)
			continue
		}
		if !q.MonthlyPayment.Equal(decimal.NewFromInt(want.monthly)) ||
			!q.TotalRepayment.Equal(decimal.NewFromInt(want.total)) ||
			q.IsPromotional != want.promotional {
			t.Errorf("%d months: got %s/%s promo=%t, expected %d/%d promo=%t", term,
				q.MonthlyPayment, q.TotalRepayment, q.IsPromotional, want.monthly, want.total, want.promotional)
		}
	}

	link, err := url.Parse(sim.ContactURL)
	if err != nil {
		t.Fatalf("contact URL: %v", err)
	}
	if link.Path != "/5493407000000" {
		t.Errorf("contact path = %q", link.Path)
	}
	if text := link.Query().Get("text"); !strings.Contains(text, "Toyota Hilux SRV 2023") || !strings.HasSuffix(text, "$ 200.000") {
		t.Errorf("contact text = %q", text)
	}
}

func TestCSVOutputFormat(t *testing.T) {
	_, svc := newService(t)

	sim, err := svc.Simulate(context.Background(), 3, decimal.NewFromInt(120000))
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.CsvString(sim)), "\n")
	if len(lines) != 17 {
		t.Fatalf("expected header plus 16 rows, got %d lines", len(lines))
	}
	if lines[0] != `"term","monthly","total","promotional"` {
		t.Errorf("unexpected header %s", lines[0])
	}
	// 2021 Ranger, 300000 financed, under 60% down: no promotion.
	if lines[4] != `"12","29840","358080","false"` {
		t.Errorf("12 month row = %s", lines[4])
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	_, svc := newService(t)

	sim, err := svc.Simulate(context.Background(), 2, decimal.NewFromInt(200000))
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if !sim.FullyPaid {
		t.Fatal("expected down payment to cover the price")
	}

	var sb strings.Builder
	output.PrettyFormat(&sb, sim)
	if !strings.Contains(sb.String(), "The down payment covers the full price.") {
		t.Errorf("unexpected pretty output:\n%s", sb.String())
	}
}

func TestEndToEndHTTP(t *testing.T) {
	conf, svc := newService(t)

	srvConf, err := server.ConfigFrom(conf.Server, "integration")
	if err != nil {
		t.Fatalf("ConfigFrom() error = %v", err)
	}
	if srvConf.MaxBodyBytes != 2048 {
		t.Errorf("MaxBodyBytes = %d, expected 2048", srvConf.MaxBodyBytes)
	}

	ts := httptest.NewServer(server.NewHandler(zap.NewNop(), svc, srvConf))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/vehicles?make=Toyota")
	if err != nil {
		t.Fatalf("GET /api/vehicles: %v", err)
	}
	defer resp.Body.Close()

	var listing struct {
		Vehicles []inventory.Vehicle `json:"vehicles"`
		Makes    []string            `json:"makes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode vehicles: %v", err)
	}
	if len(listing.Vehicles) != 1 || listing.Vehicles[0].ID != 1 {
		t.Errorf("Toyota listing = %+v, inactive Corolla must be hidden", listing.Vehicles)
	}
	if strings.Join(listing.Makes, ",") != "Ford,Toyota,Volkswagen" {
		t.Errorf("makes = %v", listing.Makes)
	}

	simResp, err := http.Post(ts.URL+"/api/simulate", "application/json",
		strings.NewReader(`{"vehicleId": 4, "downPayment": "0"}`))
	if err != nil {
		t.Fatalf("POST /api/simulate: %v", err)
	}
	simResp.Body.Close()
	if simResp.StatusCode != http.StatusNotFound {
		t.Errorf("inactive vehicle status = %d, expected 404", simResp.StatusCode)
	}
}

func TestEndToEndWithRedisInventory(t *testing.T) {
	conf, _ := newService(t)
	vehicles, err := inventory.LoadCatalogFile(conf.Inventory.CatalogFile)
	if err != nil {
		t.Fatalf("LoadCatalogFile() error = %v", err)
	}

	mr := miniredis.RunT(t)
	seeder := inventory.NewRedisRepositoryFromAddr(mr.Addr(), "test:", zap.NewNop())
	if err := seeder.Seed(context.Background(), vehicles); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if err := seeder.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	conf.Inventory = config.InventoryConfig{
		Source: constants.InventorySourceRedis,
		Redis:  config.RedisConfig{Address: mr.Addr(), KeyPrefix: "test:"},
	}
	repo, closeRepo, err := inventory.Open(context.Background(), conf.Inventory, zap.NewNop())
	if err != nil {
		t.Fatalf("inventory.Open() error = %v", err)
	}
	defer closeRepo()

	svc := simulator.NewService(repo, conf.Contact, zap.NewNop())
	sim, err := svc.Simulate(context.Background(), 1, decimal.NewFromInt(300000))
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if q := testutil.FindQuote(sim.Quotes, 24); q == nil || !q.MonthlyPayment.Equal(decimal.NewFromInt(11598)) {
		t.Errorf("24 month quote from redis inventory = %+v", q)
	}
}
