// Package cache implements the installment statistics cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

const (
	keyPrefix  = "installment-stats"
	versionKey = keyPrefix + ":version"
)

// cachedStats is the JSON shape stored in Redis.
type cachedStats struct {
	TotalGroups          int             `json:"totalGroups"`
	CompletedGroups      int             `json:"completedGroups"`
	ActiveGroups         int             `json:"activeGroups"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	RemainingAmount      decimal.Decimal `json:"remainingAmount"`
	CompletionPercentage decimal.Decimal `json:"completionPercentage"`
}

// redisStatsCache implements adapter.StatsCache.
// Keys embed a version number; Invalidate bumps the version so older entries
// are never read again and expire through their TTL.
type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache creates a stats cache backed by the given Redis client.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) adapter.StatsCache {
	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient parses a redis:// URL and applies the optional password and DB overrides.
func NewRedisClient(url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}

func (c *redisStatsCache) Get(ctx context.Context, key string) (adapter.StatsLookup, error) {
	version, err := c.currentVersion(ctx)
	if err != nil {
		return adapter.StatsLookup{}, err
	}
	lookup := adapter.StatsLookup{Version: version}

	raw, err := c.client.Get(ctx, versionedKey(version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup, nil
	}
	if err != nil {
		return lookup, err
	}

	var payload cachedStats
	if err := json.Unmarshal(raw, &payload); err != nil {
		return lookup, fmt.Errorf("decode cached stats: %w", err)
	}

	lookup.Stats = &entity.InstallmentStatsSummary{
		TotalGroups:          payload.TotalGroups,
		CompletedGroups:      payload.CompletedGroups,
		ActiveGroups:         payload.ActiveGroups,
		TotalAmount:          payload.TotalAmount,
		PaidAmount:           payload.PaidAmount,
		RemainingAmount:      payload.RemainingAmount,
		CompletionPercentage: payload.CompletionPercentage,
	}
	return lookup, nil
}

// Set writes under the version the caller read, not the current one, so a summary
// computed across an invalidation lands in the retired generation.
func (c *redisStatsCache) Set(ctx context.Context, key string, version int64, stats *entity.InstallmentStatsSummary) error {
	raw, err := json.Marshal(cachedStats{
		TotalGroups:          stats.TotalGroups,
		CompletedGroups:      stats.CompletedGroups,
		ActiveGroups:         stats.ActiveGroups,
		TotalAmount:          stats.TotalAmount,
		PaidAmount:           stats.PaidAmount,
		RemainingAmount:      stats.RemainingAmount,
		CompletionPercentage: stats.CompletionPercentage,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, versionedKey(version, key), raw, c.ttl).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *redisStatsCache) Ping(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// currentVersion reads the cache generation. A missing version key reads as 0.
func (c *redisStatsCache) currentVersion(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return version, nil
}

// versionedKey returns "installment-stats:v<version>:<key>".
func versionedKey(version int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, key)
}

// noopStatsCache is used when caching is disabled. Every lookup misses.
type noopStatsCache struct{}

// NewNoopStatsCache returns a StatsCache that stores nothing.
func NewNoopStatsCache() adapter.StatsCache {
	return noopStatsCache{}
}

func (noopStatsCache) Get(context.Context, string) (adapter.StatsLookup, error) {
	return adapter.StatsLookup{}, nil
}

func (noopStatsCache) Set(context.Context, string, int64, *entity.InstallmentStatsSummary) error {
	return nil
}

func (noopStatsCache) Invalidate(context.Context) error {
	return nil
}

func (noopStatsCache) Ping(context.Context) bool {
	return false
}
