package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodcart-service/internal/geo"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	geocodePrefix = "geocode:"
	pingTimeout   = 5 * time.Second
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient stores resolved address coordinates as "lon lat" strings.
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisClient dials redis and fails fast when it is unreachable.
func NewRedisClient(opts Options, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	log.Info("Geocode cache connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &RedisClient{client: rdb, log: log}, nil
}

func (r *RedisClient) Close() error { return r.client.Close() }

func geocodeKey(address string) string {
	return geocodePrefix + strings.ToLower(strings.TrimSpace(address))
}

// GetCoordinates returns ok=false when the address is not cached.
func (r *RedisClient) GetCoordinates(ctx context.Context, address string) (geo.Coordinates, bool, error) {
	key := geocodeKey(address)
	raw, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return geo.Coordinates{}, false, nil
	case err != nil:
		return geo.Coordinates{}, false, err
	}

	c, err := geo.ParseCoordinates(raw)
	if err != nil {
		// битая запись: считаем промахом и удаляем
		r.log.Warn("dropping corrupt geocode cache entry", zap.String("key", key))
		_ = r.client.Del(ctx, key).Err()
		return geo.Coordinates{}, false, nil
	}
	return c, true, nil
}

func (r *RedisClient) SetCoordinates(ctx context.Context, address string, c geo.Coordinates, ttl time.Duration) error {
	return r.client.Set(ctx, geocodeKey(address), c.String(), ttl).Err()
}
