package registry

import (
	"context"
	"log/slog"

	platformredis "docledger/internal/platform/redis"
	id "docledger/pkg/domain"
)

const membershipKey = "docledger:hashes"

// HashCache is an optional Redis set in front of the store's global hash
// membership check. Registration is rare and verification-heavy deployments
// hit IsHashRegistered constantly, so a positive cache pays for itself.
//
// The cache is advisory: misses fall through to the store, and cache errors
// degrade to the store answer rather than failing the call.
type HashCache struct {
	client *platformredis.Client
	logger *slog.Logger
}

func NewHashCache(client *platformredis.Client, logger *slog.Logger) *HashCache {
	return &HashCache{client: client, logger: logger}
}

// Contains reports a cached positive membership answer. Only a confirmed
// "yes" is trusted; absence in the set proves nothing.
func (c *HashCache) Contains(ctx context.Context, contentHash id.Hash) bool {
	if c == nil || c.client == nil {
		return false
	}
	ok, err := c.client.SIsMember(ctx, membershipKey, contentHash.String()).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "hash cache lookup failed", "error", err)
		return false
	}
	return ok
}

// Add records a registered hash. Failures are logged and ignored; the store
// remains the source of truth.
func (c *HashCache) Add(ctx context.Context, contentHash id.Hash) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.SAdd(ctx, membershipKey, contentHash.String()).Err(); err != nil {
		c.logger.WarnContext(ctx, "hash cache add failed", "error", err)
	}
}
