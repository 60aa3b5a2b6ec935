package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gervasio-autos/financing-simulator/internal/config"
	"github.com/gervasio-autos/financing-simulator/internal/inventory"
	"github.com/gervasio-autos/financing-simulator/internal/logging"
	"github.com/gervasio-autos/financing-simulator/internal/server"
	"github.com/gervasio-autos/financing-simulator/internal/simulator"
	"github.com/gervasio-autos/financing-simulator/pkg/constants"
	"github.com/gervasio-autos/financing-simulator/pkg/financing"
	"github.com/gervasio-autos/financing-simulator/pkg/output"
	"github.com/gervasio-autos/financing-simulator/pkg/validation"
	"go.uber.org/zap"
)

var version = "dev"

type options struct {
	configLocation string
	outputFormat   string
	logLevel       string
	serve          bool
	vehicleID      int
	downPayment    string
	term           int
}

func main() {
	var opts options
	flag.StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	flag.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flag.BoolVar(&opts.serve, "serve", false, "serve the HTTP API instead of printing one simulation")
	flag.IntVar(&opts.vehicleID, "vehicle", 0, "catalog id of the vehicle to simulate")
	flag.StringVar(&opts.downPayment, "down-payment", "", "amount the buyer puts down, e.g. 300000 or \"$ 300.000\"")
	flag.IntVar(&opts.term, "term", 0, "print the installment schedule for this term instead of the quote grid")
	flag.Parse()

	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	err = run(logger, conf, opts)
	if err != nil {
		logger.Error("financing simulator failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run does all the work after logging is up, so deferred cleanup always
// happens before the process exits.
func run(logger *zap.Logger, conf *config.Configuration, opts options) error {
	// CLI override takes precedence over config
	if opts.outputFormat != "" {
		conf.Output.Format = opts.outputFormat
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := inventory.Open(ctx, conf.Inventory, logger)
	if err != nil {
		return fmt.Errorf("failed to open inventory: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warn("failed to close inventory",
				zap.String("op", "main.run"),
				zap.Error(err),
			)
		}
	}()

	svc := simulator.NewService(repo, conf.Contact, logger)

	if opts.serve {
		srvConf, err := server.ConfigFrom(conf.Server, version)
		if err != nil {
			return fmt.Errorf("invalid server configuration: %w", err)
		}
		return server.ListenAndServe(ctx, logger, srvConf, server.NewHandler(logger, svc, srvConf))
	}

	if opts.vehicleID <= 0 {
		return errors.New("a -vehicle id is required unless -serve is set")
	}
	downPayment, err := validation.ParseAmount(opts.downPayment)
	if err != nil {
		return fmt.Errorf("invalid down payment: %w", err)
	}

	if opts.term != 0 {
		schedule, err := svc.Schedule(ctx, opts.vehicleID, downPayment, opts.term)
		if err != nil {
			return fmt.Errorf("failed to compute schedule for vehicle %d: %w", opts.vehicleID, err)
		}
		switch conf.Output.Format {
		case constants.OutputFormatPretty:
			output.PrettySchedule(os.Stdout, schedule)
		case constants.OutputFormatCSV:
			output.CsvSchedule(os.Stdout, schedule)
		}
		return nil
	}

	sim, err := svc.Simulate(ctx, opts.vehicleID, downPayment)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return fmt.Errorf("invalid simulation input: %w", err)
		}
		return fmt.Errorf("failed to compute simulation for vehicle %d: %w", opts.vehicleID, err)
	}

	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, sim)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, sim)
	}
	return nil
}
