//go:build integration

package registry_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"docledger/internal/platform/config"
	platformredis "docledger/internal/platform/redis"
	"docledger/internal/registry"
	id "docledger/pkg/domain"
	"docledger/pkg/testutil/containers"
)

func newHashCache(t *testing.T) (*registry.HashCache, *containers.RedisContainer) {
	t.Helper()

	rc := containers.NewRedisContainer(t)
	client, err := platformredis.New(config.RedisConfig{URL: rc.URL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return registry.NewHashCache(client, logger), rc
}

func TestHashCacheMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cache, rc := newHashCache(t)
	ctx := context.Background()
	contentHash := id.HashContent([]byte("cached content"))

	// advisory: absence proves nothing, so Contains is simply false
	require.False(t, cache.Contains(ctx, contentHash))

	cache.Add(ctx, contentHash)
	require.True(t, cache.Contains(ctx, contentHash))

	// a different hash stays a miss
	require.False(t, cache.Contains(ctx, id.HashContent([]byte("other content"))))

	// flush simulates cache loss; the store remains the source of truth
	require.NoError(t, rc.FlushAll(ctx))
	require.False(t, cache.Contains(ctx, contentHash))
}

func TestHashCacheSurvivesClosedConnection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cache, rc := newHashCache(t)
	ctx := context.Background()
	contentHash := id.HashContent([]byte("degraded content"))

	cache.Add(ctx, contentHash)
	require.True(t, cache.Contains(ctx, contentHash))

	// kill the backend: lookups must degrade to false, adds must not panic
	require.NoError(t, rc.Container.Terminate(ctx))
	require.False(t, cache.Contains(ctx, contentHash))
	cache.Add(ctx, id.HashContent([]byte("late add")))
}
