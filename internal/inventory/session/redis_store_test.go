package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/pkg/auth"
)

func newRedisStore(t *testing.T, clock *fakeClock) (*RedisStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, clock.Now), mr, client
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "cafe:session:gen-1:abc", redisKey("gen-1", "abc"))
}

func TestRedisStoreTTLIsRemainingLifetime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store, mr, _ := newRedisStore(t, clock)
	ctx := context.Background()

	sess := Session{Token: "tok", UserID: 4, Username: "maria", CreatedAt: clock.Now(), ExpiresAt: clock.Now().Add(2 * time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	assert.Equal(t, 2*time.Hour, mr.TTL(store.key("tok")))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.UserID)
	assert.Equal(t, "maria", got.Username)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	mr.FastForward(2*time.Hour + time.Second)
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreSkipsExpiredSave(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store, mr, _ := newRedisStore(t, clock)

	require.NoError(t, store.Save(context.Background(), Session{Token: "old", ExpiresAt: clock.Now()}))
	assert.Empty(t, mr.Keys())
}

func TestRedisStoreExpiredPayloadIsNotFound(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store, mr, _ := newRedisStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "tok", UserID: 1, ExpiresAt: clock.Now().Add(time.Hour)}))

	// The key is still there; only the payload says the session is over.
	clock.Advance(time.Hour)
	assert.True(t, mr.Exists(store.key("tok")))
	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store, mr, _ := newRedisStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "tok", UserID: 1, ExpiresAt: clock.Now().Add(time.Hour)}))
	require.NoError(t, store.Delete(ctx, "tok"))
	assert.False(t, mr.Exists(store.key("tok")))

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, "tok"))
}

func TestRedisStoreGenerationsAreIsolated(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	first, _, client := newRedisStore(t, clock)
	second := NewRedisStore(client, clock.Now)
	ctx := context.Background()

	require.NotEqual(t, first.Generation(), second.Generation())
	require.NoError(t, first.Save(ctx, Session{Token: "tok", UserID: 2, Username: "alice", ExpiresAt: clock.Now().Add(time.Hour)}))

	_, err := second.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionDoesNotSurviveRestart(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	before, _, client := newRedisStore(t, clock)
	ctx := context.Background()

	seed := func(names ...string) *repository.Store {
		users := repository.NewStore()
		for _, name := range names {
			hash, err := auth.HashPassword("pw-" + name)
			require.NoError(t, err)
			_, err = users.CreateUser(domain.User{
				Username: name, Password: hash, Role: domain.RoleAdmin,
				FullName: name, Email: name + "@cafe.test", IsActive: true,
			})
			require.NoError(t, err)
		}
		return users
	}

	sess, _, err := NewService(seed("admin", "alice"), before, WithClock(clock.Now)).Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)

	after := NewService(seed("admin", "bob"), NewRedisStore(client, clock.Now), WithClock(clock.Now))
	_, err = after.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
