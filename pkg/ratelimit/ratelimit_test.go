package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(2, time.Minute, func() time.Time { return now })
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 2, first.Limit)

	second, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, second.Allowed)
	assert.Zero(t, second.Remaining)

	third, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, third.Allowed)
	assert.Equal(t, now.Add(time.Minute), third.Reset)

	other, _ := limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, other.Allowed)

	now = now.Add(61 * time.Second)
	later, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, later.Allowed)
}

func TestPrune(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	hits := []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second)}

	assert.Len(t, prune(hits, base), 2)
	assert.Empty(t, prune(hits, base.Add(2*time.Second)))
	assert.Len(t, prune(hits, base.Add(-time.Second)), 3)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "cafe:ratelimit:login:10.0.0.1", redisKey("login:10.0.0.1"))
}

func TestRedisLimiterSlidingWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	limiter := NewRedisLimiter(client, 3, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d", i+1)
		assert.Equal(t, 2-i, res.Remaining)
		now = now.Add(time.Second)
	}

	blocked, err := limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Zero(t, blocked.Remaining)
	assert.Equal(t, 3, blocked.Limit)

	other, err := limiter.Allow(ctx, "login:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	assert.True(t, mr.Exists(redisKey("login:10.0.0.1")))
	assert.Equal(t, 2*time.Minute, mr.TTL(redisKey("login:10.0.0.1")))

	// Past the window every earlier attempt has aged out.
	now = now.Add(2 * time.Minute)
	later, err := limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, later.Allowed)
}

func TestRedisLimiterReportsBackendErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisLimiter(client, 3, time.Minute).Allow(context.Background(), "login:10.0.0.1")
	assert.Error(t, err)
}
