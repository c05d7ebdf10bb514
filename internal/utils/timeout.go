package utils

import (
	"context"
	"sync/atomic"
	"time"
)

const DefaultDBTimeout = 5 * time.Second

var dbTimeout atomic.Int64

func init() {
	dbTimeout.Store(int64(DefaultDBTimeout))
}

// SetDBTimeout changes the per-query budget used by WithDBTimeout. Non-positive values are ignored.
func SetDBTimeout(d time.Duration) {
	if d > 0 {
		dbTimeout.Store(int64(d))
	}
}

// WithDBTimeout bounds a single query. A caller deadline that is already closer wins.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(dbTimeout.Load()))
}
