package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding-window limiter backed by a redis sorted
// set per key. Each request is a member scored by its nanosecond
// timestamp; members older than the window are trimmed before counting.
type RedisRateLimiter struct {
	client    *redis.Client
	perMinute int
}

// NewRedisRateLimiter creates a limiter allowing perMinute requests per
// key per sliding minute.
func NewRedisRateLimiter(client *redis.Client, perMinute int) RateLimiter {
	return &RedisRateLimiter{
		client:    client,
		perMinute: perMinute,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.perMinute <= 0 {
		return true, nil
	}

	now := time.Now()
	window := time.Minute
	redisKey := l.getKey(key)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.perMinute), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit key: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string) string {
	return fmt.Sprintf("ratelimit:checkout:%s", identifier)
}
