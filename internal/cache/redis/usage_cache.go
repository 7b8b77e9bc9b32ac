// Package redis caches account usage summaries. The aggregation engine is
// stateless; refresh cadence lives here, on the caller side.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

const keyPrefix = "haku:usage:"

// UsageCache implements domain.UsageCache on a Redis client.
type UsageCache struct {
	client *redis.Client
}

// NewUsageCache creates a new Redis usage cache adapter.
func NewUsageCache(client *redis.Client) *UsageCache {
	return &UsageCache{client: client}
}

// Get retrieves the cached summary for an account, or domain.ErrCacheMiss.
func (c *UsageCache) Get(ctx context.Context, account string) (*domain.AccountUsage, error) {
	raw, err := c.client.Get(ctx, cacheKey(account)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var usage domain.AccountUsage
	if err := json.Unmarshal(raw, &usage); err != nil {
		return nil, fmt.Errorf("failed to decode cached usage: %w", err)
	}

	observability.FromContext(ctx).Debug("usage cache hit",
		observability.String("account", account))

	return &usage, nil
}

// Set stores the summary for an account with a TTL.
func (c *UsageCache) Set(ctx context.Context, account string, usage *domain.AccountUsage, ttl time.Duration) error {
	if usage == nil {
		return errors.New("usage cannot be nil")
	}

	raw, err := json.Marshal(usage)
	if err != nil {
		return fmt.Errorf("failed to encode usage: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(account), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

func cacheKey(account string) string {
	return keyPrefix + account
}
