// Package server exposes the financing simulator over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gervasio-autos/financing-simulator/internal/inventory"
	"github.com/gervasio-autos/financing-simulator/internal/simulator"
	"github.com/gervasio-autos/financing-simulator/pkg/financing"
	"github.com/gervasio-autos/financing-simulator/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	simulator   *simulator.Service
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the simulator API.
func NewHandler(logger *zap.Logger, svc *simulator.Service, cfg Config) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{logger: logger, simulator: svc, maxBodySize: cfg.MaxBodyBytes, version: cfg.Version}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/vehicles", h.handleVehicles)
	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/terms", h.handleTerms)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

// ListenAndServe serves handler on cfg.Address until ctx is cancelled.
func ListenAndServe(ctx context.Context, logger *zap.Logger, cfg Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "server.ListenAndServe"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down",
			zap.String("op", "server.ListenAndServe"),
		)
		return srv.Shutdown(shutdownCtx)
	}
}

type vehiclesResponse struct {
	Vehicles []inventory.Vehicle `json:"vehicles"`
	Makes    []string            `json:"makes"`
}

type simulateRequest struct {
	VehicleID   int             `json:"vehicleId"`
	DownPayment json.RawMessage `json:"downPayment"`
	TermMonths  int             `json:"termMonths,omitempty"`
}

type simulateResponse struct {
	simulator.Simulation
	Duration string `json:"duration"`
}

type termsResponse struct {
	Terms                   []int  `json:"terms"`
	NewerVehicleYear        int    `json:"newerVehicleYear"`
	PromotionalTermMonths   int    `json:"promotionalTermMonths"`
	PromotionalMinModelYear int    `json:"promotionalMinModelYear"`
	PromotionalDownPayment  string `json:"promotionalDownPaymentRatio"`
}

func (h *handler) handleVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	vehicles, makes, err := h.simulator.Vehicles(r.Context(), strings.TrimSpace(r.URL.Query().Get("make")))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list vehicles: %v", err), "server.handleVehicles")
		return
	}

	h.writeJSON(w, http.StatusOK, vehiclesResponse{Vehicles: vehicles, Makes: makes})
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, downPayment, ok := h.readSimulateRequest(w, r, op)
	if !ok {
		return
	}

	sim, err := h.simulator.Simulate(r.Context(), req.VehicleID, downPayment)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("vehicle", req.VehicleID),
		zap.Int("quotes", len(sim.Quotes)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, simulateResponse{Simulation: sim, Duration: elapsed.String()})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, downPayment, ok := h.readSimulateRequest(w, r, op)
	if !ok {
		return
	}
	if req.TermMonths == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "termMonths is required", op)
		return
	}

	schedule, err := h.simulator.Schedule(r.Context(), req.VehicleID, downPayment, req.TermMonths)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, schedule)
}

// readSimulateRequest decodes the body shared by the simulate and schedule
// endpoints. It writes the error response itself and reports false on failure.
func (h *handler) readSimulateRequest(w http.ResponseWriter, r *http.Request, op string) (simulateRequest, decimal.Decimal, bool) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return req, decimal.Zero, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, decimal.Zero, false
	}
	if req.VehicleID <= 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "vehicleId is required", op)
		return req, decimal.Zero, false
	}

	downPayment, err := decodeAmount(req.DownPayment)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid downPayment: %v", err), op)
		return req, decimal.Zero, false
	}
	return req, downPayment, true
}

func (h *handler) handleTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, termsResponse{
		Terms:                   financing.Terms(),
		NewerVehicleYear:        financing.NewerVehicleYear,
		PromotionalTermMonths:   financing.PromotionalTermMonths,
		PromotionalMinModelYear: financing.PromotionalMinModelYear,
		PromotionalDownPayment:  financing.PromotionalRatio().String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeAmount accepts the down payment either as a JSON number or as the
// raw text typed by the buyer.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Zero, nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return decimal.Zero, err
		}
		return validation.ParseAmount(text)
	}
	amount, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return decimal.Zero, err
	}
	if err := validation.CheckAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrVehicleNotFound), errors.Is(err, inventory.ErrInactiveVehicle):
		return http.StatusNotFound
	case errors.Is(err, financing.ErrInvalidInput), errors.Is(err, financing.ErrUnsupportedTerm):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
