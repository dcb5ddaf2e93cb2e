package adapter

import (
	"context"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// StatsLookup is the result of a stats cache read. Stats is nil on a miss.
// Version identifies the cache generation the read saw; a summary computed after
// the miss must be stored under that same version.
type StatsLookup struct {
	Stats   *entity.InstallmentStatsSummary
	Version int64
}

// Hit reports whether the lookup found a cached summary.
func (l StatsLookup) Hit() bool {
	return l.Stats != nil
}

// StatsCache stores computed installment statistics keyed by query.
// Implementations must treat a miss and a backend failure alike from the
// caller's point of view: the caller recomputes.
type StatsCache interface {
	// Get returns the cached summary for key along with the current cache version.
	Get(ctx context.Context, key string) (StatsLookup, error)

	// Set stores the summary under key for the given version. Entries written for a
	// version that has since been invalidated are never read.
	Set(ctx context.Context, key string, version int64, stats *entity.InstallmentStatsSummary) error

	// Invalidate discards every cached summary.
	Invalidate(ctx context.Context) error

	// Ping reports whether the cache backend is reachable.
	Ping(ctx context.Context) bool
}
