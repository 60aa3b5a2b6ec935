package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatchSize = 100

// RedisRepository reads vehicles stored as JSON values under
// "<prefix><id>".
type RedisRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisRepository wraps an existing client.
func NewRedisRepository(client *redis.Client, prefix string, logger *zap.Logger) *RedisRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRepository{client: client, prefix: prefix, logger: logger}
}

// NewRedisRepositoryFromAddr dials redis at addr.
func NewRedisRepositoryFromAddr(addr, prefix string, logger *zap.Logger) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisRepository(client, prefix, logger)
}

func (r *RedisRepository) key(id int) string {
	return r.prefix + strconv.Itoa(id)
}

// Get returns the vehicle with the given id.
func (r *RedisRepository) Get(ctx context.Context, id int) (Vehicle, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Vehicle{}, fmt.Errorf("%w: id %d", ErrVehicleNotFound, id)
	}
	if err != nil {
		return Vehicle{}, fmt.Errorf("failed to read vehicle %d: %w", id, err)
	}

	var v Vehicle
	if err := json.Unmarshal(raw, &v); err != nil {
		return Vehicle{}, fmt.Errorf("failed to decode vehicle %d: %w", id, err)
	}
	return v, nil
}

// List scans every vehicle key and returns the vehicles ordered by id.
func (r *RedisRepository) List(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// Deleted between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		var v Vehicle
		if err := json.Unmarshal(raw, &v); err != nil {
			r.logger.Warn("skipping undecodable vehicle",
				zap.String("op", "inventory.RedisRepository.List"),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		vehicles = append(vehicles, v)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan vehicles: %w", err)
	}

	sortByID(vehicles)
	r.logger.Debug("listed vehicles from redis",
		zap.String("op", "inventory.RedisRepository.List"),
		zap.Int("count", len(vehicles)),
	)
	return vehicles, nil
}

// Seed writes vehicles in a single pipeline, replacing existing entries.
func (r *RedisRepository) Seed(ctx context.Context, vehicles []Vehicle) error {
	pipe := r.client.Pipeline()
	for _, v := range vehicles {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode vehicle %d: %w", v.ID, err)
		}
		pipe.Set(ctx, r.key(v.ID), raw, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed vehicles: %w", err)
	}
	r.logger.Info("seeded vehicles into redis",
		zap.String("op", "inventory.RedisRepository.Seed"),
		zap.Int("count", len(vehicles)),
	)
	return nil
}

// Ping checks that redis is reachable.
func (r *RedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
