package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cafe:session:"

// RedisStore keeps sessions in Redis with a key TTL equal to the remaining
// session lifetime, so expiry needs no sweeping.
//
// Keys are namespaced by a generation created with the store. Users live
// in process memory, so sessions written by an earlier process (or another
// replica) must not resolve against this one's user ids.
type RedisStore struct {
	client     redis.Cmdable
	generation string
	now        func() time.Time
}

// NewRedisStore creates a store on client with a fresh generation.
func NewRedisStore(client redis.Cmdable, now func() time.Time) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{
		client:     client,
		generation: uuid.NewString(),
		now:        now,
	}
}

// Generation returns the key namespace of this store.
func (r *RedisStore) Generation() string {
	return r.generation
}

func redisKey(generation, token string) string {
	return redisKeyPrefix + generation + ":" + token
}

func (r *RedisStore) key(token string) string {
	return redisKey(r.generation, token)
}

// Save stores s until its expiry.
func (r *RedisStore) Save(ctx context.Context, s Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns the live session for token.
func (r *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	payload, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes token.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
