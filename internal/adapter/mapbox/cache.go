package mapbox

import (
	"context"
	"sync"

	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by the
// query string. Chains often list the same address under several names, so
// a single run sees repeated queries.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache[string, domain.GeocodingResult](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ForwardGeocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	if result, ok := c.cache.get(query); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ForwardGeocode(ctx, query)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so "not found" responses can be retried.
	if result.FormattedAddress != "" {
		c.cache.put(query, result)
	}
	return result, nil
}

// lruCache is a thread-safe LRU map with a fixed entry budget.
type lruCache[K comparable, V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[K]*lruEntry[K, V]
	newest     *lruEntry[K, V]
	oldest     *lruEntry[K, V]
}

type lruEntry[K comparable, V any] struct {
	key          K
	value        V
	newer, older *lruEntry[K, V]
}

func newLRUCache[K comparable, V any](maxEntries int) *lruCache[K, V] {
	return &lruCache[K, V]{
		maxEntries: maxEntries,
		entries:    make(map[K]*lruEntry[K, V]),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(e)
	return e.value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.touch(e)
		return
	}

	e := &lruEntry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.pushNewest(e)

	for len(c.entries) > c.maxEntries && c.oldest != nil {
		victim := c.oldest
		c.unlink(victim)
		delete(c.entries, victim.key)
	}
}

func (c *lruCache[K, V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// touch marks e as most recently used.
func (c *lruCache[K, V]) touch(e *lruEntry[K, V]) {
	if c.newest == e {
		return
	}
	c.unlink(e)
	c.pushNewest(e)
}

func (c *lruCache[K, V]) pushNewest(e *lruEntry[K, V]) {
	e.newer = nil
	e.older = c.newest
	if c.newest != nil {
		c.newest.newer = e
	}
	c.newest = e
	if c.oldest == nil {
		c.oldest = e
	}
}

func (c *lruCache[K, V]) unlink(e *lruEntry[K, V]) {
	if e.newer != nil {
		e.newer.older = e.older
	} else {
		c.newest = e.older
	}
	if e.older != nil {
		e.older.newer = e.newer
	} else {
		c.oldest = e.newer
	}
	e.newer, e.older = nil, nil
}
