package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "admin:revoked:"

// RedisRevocations shares the revocation list across gateway instances.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

// Revoke sets a marker key that expires with the token.
func (s *RedisRevocations) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if id == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+id, "1", ttl).Err()
}

func (s *RedisRevocations) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	err := s.client.Get(ctx, revokedKeyPrefix+id).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
