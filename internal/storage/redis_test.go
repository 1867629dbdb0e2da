package storage

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/league-panel/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCacheFromClient(client, "test:")
}

func TestRedisCache_SetGetDel(t *testing.T) {
	mr, cache := setupMiniredis(t)
	ctx := testContext(t)

	require.NoError(t, cache.Set(ctx, "sid:admin_username", "alice", time.Minute))
	assert.True(t, mr.Exists("test:sid:admin_username"), "keys are prefixed")

	got, err := cache.Get(ctx, "sid:admin_username")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	require.NoError(t, cache.Del(ctx, "sid:admin_username"))
	_, err = cache.Get(ctx, "sid:admin_username")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_IndependentExpiry(t *testing.T) {
	mr, cache := setupMiniredis(t)
	ctx := testContext(t)

	require.NoError(t, cache.Set(ctx, "token", "t", time.Hour))
	require.NoError(t, cache.Set(ctx, "name", "n", 48*time.Hour))

	mr.FastForward(2 * time.Hour)

	_, err := cache.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrCacheMiss)
	name, err := cache.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "n", name)

	assert.Equal(t, 46*time.Hour, mr.TTL("test:name"))
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := splitAddr(mr.Addr())

	cache, err := NewRedisCache(&config.RedisConfig{Host: host, Port: port, MaxConnections: 2, KeyPrefix: "p:"})
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	assert.NoError(t, cache.Ping(testContext(t)))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping dial timeout test in short mode")
	}
	_, err := NewRedisCache(&config.RedisConfig{Host: "127.0.0.1", Port: "1", MaxConnections: 1})
	assert.Error(t, err)
}
