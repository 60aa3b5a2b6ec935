package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/gervasio-autos/financing-simulator/internal/config"
	"github.com/gervasio-autos/financing-simulator/pkg/constants"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Open builds the repository selected by cfg. On success the returned close
// function is non-nil. A redis source must answer a ping before Open returns.
func Open(ctx context.Context, cfg config.InventoryConfig, logger *zap.Logger) (Repository, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Source {
	case constants.InventorySourceFile, "":
		vehicles, err := LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loaded vehicle catalog",
			zap.String("op", "inventory.Open"),
			zap.String("file", cfg.CatalogFile),
			zap.Int("vehicles", len(vehicles)),
		)
		return NewMemoryRepository(vehicles), func() error { return nil }, nil
	case constants.InventorySourceRedis:
		repo := NewRedisRepositoryFromAddr(cfg.Redis.Address, cfg.Redis.KeyPrefix, logger)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := repo.Ping(pingCtx); err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		logger.Info("connected to vehicle inventory",
			zap.String("op", "inventory.Open"),
			zap.String("address", cfg.Redis.Address),
		)
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown inventory source %q", cfg.Source)
	}
}
