package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ForwardGeocode(_ context.Context, _ string) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Lat: 35.66, Lon: 139.70, FormattedAddress: "東京都渋谷区"},
	}
	m := testMetrics()
	cached := NewCachedGeocoder(inner, 10, m)

	r1, err := cached.ForwardGeocode(context.Background(), testQuery)
	require.NoError(t, err)
	r2, err := cached.ForwardGeocode(context.Background(), testQuery)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{FormattedAddress: "某所"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ForwardGeocode(context.Background(), "東京都")
	_, _ = cached.ForwardGeocode(context.Background(), "大阪府")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ForwardGeocode(context.Background(), testQuery)
	_, _ = cached.ForwardGeocode(context.Background(), testQuery)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ForwardGeocode(context.Background(), testQuery)
	require.Error(t, err)
	_, err = cached.ForwardGeocode(context.Background(), testQuery)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache[string, domain.GeocodingResult](3)

	c.put("a", domain.GeocodingResult{FormattedAddress: "A"})
	c.put("b", domain.GeocodingResult{FormattedAddress: "B"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.FormattedAddress)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache[string, domain.GeocodingResult](2)

	c.put("a", domain.GeocodingResult{FormattedAddress: "A"})
	c.put("b", domain.GeocodingResult{FormattedAddress: "B"})
	c.put("c", domain.GeocodingResult{FormattedAddress: "C"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.FormattedAddress)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache[string, domain.GeocodingResult](2)

	c.put("a", domain.GeocodingResult{FormattedAddress: "A"})
	c.put("b", domain.GeocodingResult{FormattedAddress: "B"})
	c.get("a")
	c.put("c", domain.GeocodingResult{FormattedAddress: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache[string, domain.GeocodingResult](2)

	c.put("a", domain.GeocodingResult{FormattedAddress: "A1"})
	c.put("a", domain.GeocodingResult{FormattedAddress: "A2"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.FormattedAddress)
}

func TestLRUCache_NeverExceedsBudget(t *testing.T) {
	c := newLRUCache[int, int](3)
	for i := range 10 {
		c.put(i, i*i)
	}
	assert.Equal(t, 3, c.size())

	v, ok := c.get(9)
	assert.True(t, ok)
	assert.Equal(t, 81, v)
	_, ok = c.get(6)
	assert.False(t, ok)
}
