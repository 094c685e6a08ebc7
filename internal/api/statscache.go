package api

import (
	"context"
	"sync"
	"time"
)

const (
	statsKeyBasic    = "stats"
	statsKeyAdvanced = "advanced"
)

type statsEntry struct {
	value   map[string]any
	err     error
	expires time.Time
}

// StatsCache serves statistics snapshots from a short-lived cache.
// Failures are cached for the same TTL as successes so repeated snapshot
// errors do not hammer the store. The clock is injected for tests.
type StatsCache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]statsEntry
}

func NewStatsCache(store Store, ttl time.Duration, now func() time.Time) *StatsCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &StatsCache{
		store:   store,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]statsEntry, 2),
	}
}

// Stats returns the basic snapshot, hitting the store only on a cache
// miss or when force is set.
func (c *StatsCache) Stats(ctx context.Context, force bool) (map[string]any, error) {
	return c.get(ctx, statsKeyBasic, force, c.store.Stats)
}

// AdvancedStats returns the permission-gated snapshot with the same
// caching behaviour as Stats.
func (c *StatsCache) AdvancedStats(ctx context.Context, force bool) (map[string]any, error) {
	return c.get(ctx, statsKeyAdvanced, force, c.store.AdvancedStats)
}

func (c *StatsCache) get(ctx context.Context, key string, force bool, fetch func(context.Context) (map[string]any, error)) (map[string]any, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !force && c.now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.value, entry.err
	}
	c.mu.Unlock()

	value, err := fetch(ctx)

	c.mu.Lock()
	c.entries[key] = statsEntry{value: value, err: err, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return value, err
}

// StartRefresher launches a goroutine that force-refreshes both snapshots
// on the given interval until ctx is cancelled. The interval must be
// shorter than the TTL so user-facing requests rarely miss the cache.
func (c *StatsCache) StartRefresher(ctx context.Context, interval time.Duration) {
	go func() {
		c.refresh(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refresh(ctx)
			}
		}
	}()
}

func (c *StatsCache) refresh(ctx context.Context) {
	if _, err := c.Stats(ctx, true); err != nil {
		statsRefreshTotal.WithLabelValues("error").Inc()
	} else {
		statsRefreshTotal.WithLabelValues("ok").Inc()
	}

	if _, err := c.AdvancedStats(ctx, true); err != nil {
		statsRefreshTotal.WithLabelValues("error").Inc()
	} else {
		statsRefreshTotal.WithLabelValues("ok").Inc()
	}
}
