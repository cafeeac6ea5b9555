package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wacc-calculator/src/models"
)

// countingSource records how often each symbol was fetched.
type countingSource struct {
	calls map[string]int
}

func newCountingSource() *countingSource {
	return &countingSource{calls: make(map[string]int)}
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) FetchTickerMetrics(symbol string) models.MTickerMetrics {
	s.calls[symbol]++
	price := 100.0
	return models.MTickerMetrics{Symbol: symbol, Price: &price, FetchedAt: time.Now()}
}

// -----------------------------------------------------------------------------

func TestMetricsCache_HitWithinWindow(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, time.Minute)

	_, hit := c.Lookup("AAPL")
	assert.False(t, hit)

	_, hit = c.Lookup("AAPL")
	assert.True(t, hit)

	assert.Equal(t, 1, source.calls["AAPL"])
}

func TestMetricsCache_KeyNormalized(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, time.Minute)

	c.Lookup("aapl")
	c.Lookup(" AAPL ")
	c.Lookup("Aapl")

	assert.Equal(t, 1, source.calls["AAPL"])
}

func TestMetricsCache_ExpiryRefetches(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, 10*time.Millisecond)

	c.Lookup("MSFT")
	time.Sleep(20 * time.Millisecond)
	_, hit := c.Lookup("MSFT")

	assert.False(t, hit)
	assert.Equal(t, 2, source.calls["MSFT"])
}

func TestMetricsCache_SeparateKeys(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, time.Minute)

	c.Lookup("AAPL")
	c.Lookup("MSFT")

	assert.Equal(t, 1, source.calls["AAPL"])
	assert.Equal(t, 1, source.calls["MSFT"])
}

func TestMetricsCache_Invalidate(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, time.Minute)

	c.Lookup("AAPL")
	c.Invalidate("aapl")
	_, hit := c.Lookup("AAPL")

	assert.False(t, hit)
	assert.Equal(t, 2, source.calls["AAPL"])
}

func TestMetricsCache_FetchTickerMetrics(t *testing.T) {
	source := newCountingSource()
	c := NewMetricsCache(source, 0) // 0 falls back to the default TTL

	metrics := c.FetchTickerMetrics("tsla")
	assert.Equal(t, "TSLA", metrics.Symbol)
	assert.NotNil(t, metrics.Price)
}
