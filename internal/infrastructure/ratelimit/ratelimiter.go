package ratelimit

import "context"

// RateLimiter answers whether one more request under key is allowed right
// now. Checkout is the only throttled surface.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// NoopRateLimiter allows everything. Used when rate limiting is disabled.
type NoopRateLimiter struct{}

func NewNoopRateLimiter() RateLimiter {
	return &NoopRateLimiter{}
}

func (l *NoopRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (l *NoopRateLimiter) Reset(ctx context.Context, key string) error {
	return nil
}
