package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimit is the outcome of one login attempt against the sliding window.
type RateLimit struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimitRepository keeps a sliding window of login attempts per account in a sorted set.
type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, login string) (*RateLimit, error)
}

type redisRepository struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	slog.Info("Connecting to Redis", slog.String("addr", cfg.RedisConnect.Host+":"+cfg.RedisConnect.Port), slog.Int("db", cfg.RedisConnect.DB))

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

func loginAttemptsKey(login string) string {
	return "login_attempts:" + login
}

// CheckLoginRateLimit records the attempt and reports whether it fits in the window.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, login string) (*RateLimit, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := loginAttemptsKey(login)
	now := r.now()
	windowStart := now.Add(-r.cfg.WindowSize).Unix()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	// nanoseconds keep attempts within the same second distinct
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Rate limit pipeline failed", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("failed to record login attempt: %w", err)
	}

	attempts := count.Val()
	if attempts <= r.cfg.MaxAttempts {
		return &RateLimit{Allowed: true, Remaining: int(r.cfg.MaxAttempts - attempts)}, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		logger.Error("Failed to read the oldest login attempt", slog.String("key", key), slog.Any("error", err))
		return &RateLimit{RetryAfter: r.cfg.WindowSize}, nil
	}

	expires := time.Unix(int64(oldest[0].Score), 0).Add(r.cfg.WindowSize)
	retryAfter := max(expires.Sub(now).Truncate(time.Second), time.Second)

	logger.Warn("Login rate limit exceeded", slog.String("login", login), slog.Int64("attempts", attempts))

	return &RateLimit{RetryAfter: retryAfter}, nil
}
