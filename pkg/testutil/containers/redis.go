//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"mealshare/internal/platform/config"
)

const redisImage = "redis:7.4-alpine"

// RedisContainer is a disposable Redis for store integration suites. Client talks to
// it directly so suites can inspect keys and TTLs the stores wrote.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts Redis with server logging cut to warnings.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage, tcredis.WithLogLevel(tcredis.LogLevelWarning))
	require.NoError(t, err, "start redis container")

	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		require.NoError(t, err, "redis connection string")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		_ = container.Terminate(ctx)
		require.NoError(t, err, "parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		require.NoError(t, err, "ping redis")
	}

	// No t.Cleanup: the Manager shares the container across suites and Ryuk reaps it.
	return &RedisContainer{Container: container, URL: url, Client: client}
}

// Config points the gateway's redis settings at the container.
func (r *RedisContainer) Config() config.RedisConfig {
	return config.RedisConfig{
		URL:          r.URL,
		PoolSize:     5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// FlushAll removes all keys; suites call it from SetupTest.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}

// AssertExpires checks that key exists with a TTL in (0, max].
func (r *RedisContainer) AssertExpires(t *testing.T, key string, max time.Duration) {
	t.Helper()
	ttl, err := r.Client.PTTL(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "%s should carry an expiry", key)
	assert.LessOrEqual(t, ttl, max, "%s expires too late", key)
}

// AssertAbsent checks that key was never written or has been removed.
func (r *RedisContainer) AssertAbsent(t *testing.T, key string) {
	t.Helper()
	n, err := r.Client.Exists(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "%s should not exist", key)
}
