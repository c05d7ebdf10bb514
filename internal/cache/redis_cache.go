package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type redisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}
}

// Get reports a miss for entries that no longer decode into value, e.g. after a model
// change, and drops them so the next read repopulates the key.
func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()

	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		slog.Warn("Dropping undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))

		if delErr := r.Delete(ctx, key); delErr != nil {
			return false, delErr
		}

		return false, nil
	}

	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

// Delete unlinks keys so large taxonomy lists are reclaimed off the request path.
func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %v: %w", keys, err)
	}

	return nil
}

func (r *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64

	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache scan %s*: %w", prefix, err)
		}

		if err := r.Delete(ctx, keys...); err != nil {
			return err
		}

		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op: the client is shared with the login rate limiter and closed by main.
func (r *redisCache) Close() error {
	return nil
}
