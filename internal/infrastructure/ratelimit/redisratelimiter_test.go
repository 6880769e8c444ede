package ratelimit

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 5)
	ctx := context.Background()

	key := "buyer@example.com"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_IndependentKeys(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 1)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "first@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "second@example.com")
	require.NoError(t, err)
	assert.True(t, allowed, "a different key has its own window")

	allowed, err = limiter.Allow(ctx, "first@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 1)
	ctx := context.Background()

	key := "reset@example.com"

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, allowed, "reset clears the window")
}

func TestRedisRateLimiter_ZeroLimitAllowsAll(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 0)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(ctx, "unlimited@example.com")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
