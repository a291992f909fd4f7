package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRevocations(t *testing.T) {
	now := time.Date(2026, 3, 31, 9, 30, 0, 0, time.UTC)
	s := NewInMemory(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Hour))
	require.NoError(t, s.Revoke(ctx, "jti-2", 0))
	require.NoError(t, s.Revoke(ctx, "", time.Hour))

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(time.Hour)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lapses with the token")
}

func TestInMemoryPurgeExpired(t *testing.T) {
	now := time.Date(2026, 3, 31, 9, 30, 0, 0, time.UTC)
	s := NewInMemory(WithClock(func() time.Time { return now }))
	ctx := context.Background()
	require.NoError(t, s.Revoke(ctx, "short", time.Minute))
	require.NoError(t, s.Revoke(ctx, "long", time.Hour))

	now = now.Add(10 * time.Minute)

	assert.Equal(t, 1, s.PurgeExpired())
	revoked, err := s.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}
