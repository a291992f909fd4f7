// Package redis connects the gateway's session, revocation and rate limit stores to
// one shared Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mealshare/internal/platform/config"
	"mealshare/pkg/platform/sentinel"
)

const (
	healthKey = "gateway:health"
	healthTTL = 10 * time.Second
)

// Client is the shared connection. Every store built on it keeps its keys alive only
// through TTLs, so Health checks that writes with an expiry still land.
type Client struct {
	*redis.Client
}

// New connects and pings. It returns nil without error when no URL is configured, in
// which case callers fall back to the in-memory stores.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	client := &Client{Client: redis.NewClient(opts)}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Options maps gateway settings onto go-redis options. Pool and timeout values from
// the URL query are kept unless cfg overrides them.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Health writes a short-lived key and reads its remaining TTL back. A read-only
// replica, a refused write or a server that drops expiries all fail the check.
func (c *Client) Health(ctx context.Context) error {
	var ttl *redis.DurationCmd
	_, err := c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, healthKey, time.Now().UTC().Format(time.RFC3339), healthTTL)
		ttl = pipe.PTTL(ctx, healthKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis health write: %w: %w", sentinel.ErrUnavailable, err)
	}
	if remaining := ttl.Val(); remaining <= 0 || remaining > healthTTL {
		return fmt.Errorf("redis health key has ttl %s: %w", remaining, sentinel.ErrUnavailable)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
