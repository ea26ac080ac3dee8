// Package ratelimit counts requests per key in a sliding window, either in
// process memory or in Redis sorted sets.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result describes one rate limit decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func decide(count, max int, now time.Time, window time.Duration) Result {
	remaining := max - count - 1
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count < max,
		Limit:     max,
		Remaining: remaining,
		Reset:     now.Add(window),
	}
}

// RedisLimiter implements a sliding window over a Redis sorted set, so
// limits hold across replicas.
type RedisLimiter struct {
	client      redis.Cmdable
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRedisLimiter creates a Redis backed limiter
func NewRedisLimiter(client redis.Cmdable, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

func redisKey(key string) string {
	return "cafe:ratelimit:" + key
}

// Allow records the attempt and reports whether it was within the limit.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	setKey := redisKey(key)
	now := rl.now()
	windowStart := now.Add(-rl.window)

	pipe := rl.client.TxPipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, setKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))

	// Count requests in current window
	countCmd := pipe.ZCard(ctx, setKey)

	pipe.ZAdd(ctx, setKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, setKey, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	return decide(int(countCmd.Val()), rl.maxRequests, now, rl.window), nil
}

// MemoryLimiter is the single-process counterpart of RedisLimiter.
type MemoryLimiter struct {
	mu          sync.Mutex
	hits        map[string][]time.Time
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter. A nil clock means time.Now.
func NewMemoryLimiter(maxRequests int, window time.Duration, now func() time.Time) *MemoryLimiter {
	if now == nil {
		now = time.Now
	}
	return &MemoryLimiter{
		hits:        make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		now:         now,
	}
}

// Allow records the attempt and reports whether it was within the limit.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-m.window)

	kept := prune(m.hits[key], windowStart)
	count := len(kept)
	m.hits[key] = append(kept, now)

	if len(m.hits) > 1024 {
		for k, v := range m.hits {
			if v = prune(v, windowStart); len(v) == 0 {
				delete(m.hits, k)
			} else {
				m.hits[k] = v
			}
		}
	}

	return decide(count, m.maxRequests, now, m.window), nil
}

// prune drops hits at or before windowStart. hits is in insertion order.
func prune(hits []time.Time, windowStart time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(windowStart) {
		i++
	}
	return hits[i:]
}
