package query

import (
	"sync"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// Metrics are the derived per-code values rendered next to every entity.
// They are a pure function of the code string alone, never of entity
// identity, so distinct entities sharing a code share metrics.
type Metrics struct {
	DominantLayer string               `json:"dominantLayer"`
	LayerCounts   [trait.NumLayers]int `json:"layerCounts"`
	TotalActive   int                  `json:"totalActiveTraits"`
}

// ComputeMetrics derives metrics for one code. Malformed codes decode to
// the zero vector and come back tagged "Unknown". The dominant layer is
// the first layer in canonical order with a strictly maximal count, so
// ties always resolve the same way regardless of map iteration order.
func ComputeMetrics(code string) Metrics {
	v := trait.Decode(code)
	m := Metrics{
		DominantLayer: trait.UnknownLayerName,
		TotalActive:   v.ActiveCount(),
	}

	best := 0
	for i, l := range trait.Layers {
		n := v.LayerCount(l)
		m.LayerCounts[i] = n
		if n > best {
			best = n
			m.DominantLayer = l.String()
		}
	}
	return m
}

// MetricsCache memoizes Metrics by code string. Entries are idempotent
// (the same code always computes identical metrics), so the cache is
// append-only within a session and a racing recompute merely does
// redundant work. Callers own the cache and may share one instance across
// concurrent pipeline runs.
type MetricsCache struct {
	mu      sync.RWMutex
	entries map[string]Metrics
}

// NewMetricsCache creates an empty cache.
func NewMetricsCache() *MetricsCache {
	return &MetricsCache{entries: make(map[string]Metrics)}
}

// Get returns the memoized metrics for code.
func (c *MetricsCache) Get(code string) (Metrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[code]
	return m, ok
}

// GetOrCompute returns memoized metrics, computing and storing on miss.
func (c *MetricsCache) GetOrCompute(code string) Metrics {
	c.mu.RLock()
	m, ok := c.entries[code]
	c.mu.RUnlock()
	if ok {
		return m
	}

	m = ComputeMetrics(code)

	c.mu.Lock()
	c.entries[code] = m
	c.mu.Unlock()
	return m
}

// Len reports the number of memoized codes.
func (c *MetricsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *MetricsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Metrics)
}
