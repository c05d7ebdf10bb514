package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Key joins the parts with ':'.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

const (
	ProductKeyPrefix  = "product"
	CategoryKeyPrefix = "categories"
	GroupKeyPrefix    = "groups"
	BrandKeyPrefix    = "brands"
	FacetKeyPrefix    = "facets"
	UserKeyPrefix     = "user"
)

// Fetch serves key from c, falling back to load and storing its result. Cache failures are
// logged and never fail the call.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}

	if err := c.Set(ctx, key, fresh, ttl); err != nil {
		slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return fresh, nil
}
