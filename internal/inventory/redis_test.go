package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	repo := NewRedisRepositoryFromAddr(srv.Addr(), "vehicle:", zap.NewNop())
	t.Cleanup(func() { _ = repo.Close() })
	return repo, srv
}

func TestRedisRepositorySeedAndGet(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, sampleVehicles()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	v, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v.Make != "Toyota" || v.Year != 2023 || v.Price.IntPart() != 500000 {
		t.Errorf("Get(1) = %+v", v)
	}

	if _, err := repo.Get(ctx, 42); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Get(42) error = %v, expected ErrVehicleNotFound", err)
	}
}

func TestRedisRepositoryList(t *testing.T) {
	repo, srv := newTestRedisRepository(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, sampleVehicles()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Keys outside the prefix and undecodable values are ignored.
	if err := srv.Set("other:1", "x"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := srv.Set("vehicle:99", "not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("List() returned %d vehicles, expected 4", len(all))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if all[i].ID != want {
			t.Errorf("List()[%d].ID = %d, expected %d", i, all[i].ID, want)
		}
	}
}

func TestRedisRepositoryUnavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	repo := NewRedisRepository(client, "vehicle:", nil)
	srv.Close()

	_, err := repo.Get(context.Background(), 1)
	if err == nil || errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Get() error = %v, expected connection error", err)
	}
}

func TestRedisRepositoryDecodeError(t *testing.T) {
	repo, srv := newTestRedisRepository(t)
	if err := srv.Set("vehicle:7", "{"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := repo.Get(context.Background(), 7); err == nil {
		t.Error("Get() expected decode error")
	}
}
