package cache

import (
	"strings"
	"sync"
	"time"

	"wacc-calculator/src/interfaces"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
)

// -----------------------------------------------------------------------------
// MetricsCache
// -----------------------------------------------------------------------------

// MetricsCache memoizes fetched ticker metrics for a fixed time window.
// Keyed by the upper-cased symbol only; assumption parameters never affect
// the fetch. Concurrent first access for the same key may fetch twice, which
// wastes a network call but corrupts nothing.
type MetricsCache struct {
	Source interfaces.IMetricsSource
	Logger *logger.Logger
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	metrics   models.MTickerMetrics
	fetchedAt time.Time
}

// -----------------------------------------------------------------------------

const DefaultTTL = 5 * time.Minute

func NewMetricsCache(source interfaces.IMetricsSource, ttl time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MetricsCache{
		Source:  source,
		Logger:  logger.NewLogger(nil, "MetricsCache"),
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// -----------------------------------------------------------------------------

func (c *MetricsCache) Name() string {
	return c.Source.Name()
}

// -----------------------------------------------------------------------------

// FetchTickerMetrics returns the cached record when fresh, otherwise fetches
// through and stores the result (check-and-refresh on read).
func (c *MetricsCache) FetchTickerMetrics(symbol string) models.MTickerMetrics {
	metrics, _ := c.Lookup(symbol)
	return metrics
}

// -----------------------------------------------------------------------------

// Lookup is FetchTickerMetrics plus a cache-hit flag for request metrics.
func (c *MetricsCache) Lookup(symbol string) (models.MTickerMetrics, bool) {
	key := strings.ToUpper(strings.TrimSpace(symbol))

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < c.ttl {
		c.Logger.Debug("Cache hit for %s", key)
		return entry.metrics, true
	}

	metrics := c.Source.FetchTickerMetrics(key)

	c.mu.Lock()
	c.entries[key] = cacheEntry{metrics: metrics, fetchedAt: time.Now()}
	c.mu.Unlock()

	return metrics, false
}

// -----------------------------------------------------------------------------

// Invalidate drops one symbol from the cache.
func (c *MetricsCache) Invalidate(symbol string) {
	key := strings.ToUpper(strings.TrimSpace(symbol))

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
