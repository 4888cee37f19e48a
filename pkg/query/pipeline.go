// Package query implements the entity filter pipeline: a fixed chain of
// predicates (layer, minimum trait count, tri-state pins, per-layer hex
// prefix, free text) followed by a stable sort, over an in-memory entity
// collection, producing metrics-annotated view rows for virtualized lists.
//
// Run is a pure function of its inputs. Optional collaborators (a shared
// metrics cache, a prebuilt trait index) are injected per call and change
// performance only, never results.
package query

import (
	"sort"
	"strings"

	"github.com/uhtdeck/gouht/pkg/pattern"
	"github.com/uhtdeck/gouht/pkg/trait"
)

// Option tunes one pipeline run.
type Option func(*runConfig)

type runConfig struct {
	cache *MetricsCache
	index *TraitIndex
}

// WithCache reuses a caller-owned metrics cache across runs.
func WithCache(c *MetricsCache) Option {
	return func(rc *runConfig) { rc.cache = c }
}

// WithIndex prunes candidates through a prebuilt trait index. The index
// must have been built from the same entity slice in the same order;
// a size mismatch falls back to a full scan.
func WithIndex(ix *TraitIndex) Option {
	return func(rc *runConfig) { rc.index = ix }
}

// Run filters, annotates, and sorts entities. Predicates apply in a fixed
// cheap-to-expensive order; the order never changes the result set. The
// input slice is not mutated, and identical inputs produce identical
// ordered output.
//
// Entities with malformed codes are not dropped: they flow through as
// zero vectors tagged "Unknown" and are filtered only by the criteria.
func Run(entities []Entity, c Criteria, opts ...Option) []Row {
	var rc runConfig
	for _, opt := range opts {
		opt(&rc)
	}
	cache := rc.cache
	if cache == nil {
		cache = NewMetricsCache()
	}

	layers, unknown, layerOn := selectedLayers(c.Layers)

	var mask pattern.Mask
	maskOn := false
	if len(c.Pins) > 0 {
		pat := pattern.FromConstraints(pinSymbols(c.Pins))
		if !pattern.IsWildcard(pat) {
			mask, _ = pattern.Compile(pat)
			maskOn = true
		}
	}

	prefixes := normalizePrefixes(c.HexPrefixes)
	text := NewTextFilter(c.Text)

	rows := make([]Row, 0, len(entities))
	for _, ord := range candidateOrdinals(entities, rc.index, maskOn, mask) {
		e := entities[ord]
		m := cache.GetOrCompute(e.Code)

		// 1. Layer expression
		if layerOn && !passesLayer(m, layers, unknown) {
			continue
		}
		// 2. Minimum trait count
		if c.MinTraits > 0 && m.TotalActive < c.MinTraits {
			continue
		}
		// 3. Tri-state pins at tolerance 0
		if maskOn && !mask.Matches(trait.Decode(e.Code), 0) {
			continue
		}
		// 4. Per-layer hex prefixes
		if !passesPrefixes(e.Code, prefixes) {
			continue
		}
		// 5. Free text, last: the string scan costs the most
		if text.Active() && !text.MatchesEntity(e) {
			continue
		}

		rows = append(rows, Row{Entity: e, Metrics: m, LayerColor: layerColor(m)})
	}

	sortRows(rows, c.SortField, c.SortOrder)
	return rows
}

// candidateOrdinals yields entity positions in input order, pruned
// through the index when one applies.
func candidateOrdinals(entities []Entity, ix *TraitIndex, maskOn bool, m pattern.Mask) []int {
	if ix != nil && maskOn && ix.Size() == len(entities) {
		if cand := ix.Candidates(m); cand != nil {
			ords := make([]int, 0, cand.GetCardinality())
			it := cand.Iterator()
			for it.HasNext() {
				ords = append(ords, int(it.Next()))
			}
			return ords
		}
	}

	ords := make([]int, len(entities))
	for i := range ords {
		ords[i] = i
	}
	return ords
}

// passesLayer keeps entities expressing any selected layer.
func passesLayer(m Metrics, layers [trait.NumLayers]bool, unknown bool) bool {
	if unknown && m.TotalActive == 0 {
		return true
	}
	for i, selected := range layers {
		if selected && m.LayerCounts[i] > 0 {
			return true
		}
	}
	return false
}

// passesPrefixes requires every constrained layer's canonical hex slice
// to start with its prefix.
func passesPrefixes(code string, prefixes []layerPrefix) bool {
	for _, lp := range prefixes {
		if !strings.HasPrefix(trait.LayerHex(code, lp.layer), lp.prefix) {
			return false
		}
	}
	return true
}

// layerColor resolves the display color for a row.
func layerColor(m Metrics) string {
	if l, ok := trait.ParseLayer(m.DominantLayer); ok {
		return l.Color()
	}
	return trait.UnknownLayerColor
}

// sortRows orders rows stably on the configured field; ties keep input
// order. Unrecognized fields fall back to name ascending.
func sortRows(rows []Row, field SortField, order SortOrder) {
	var less func(a, b *Row) bool
	switch field {
	case SortByCode:
		less = func(a, b *Row) bool {
			return trait.Canonical(a.Entity.Code) < trait.Canonical(b.Entity.Code)
		}
	case SortByTraits:
		less = func(a, b *Row) bool {
			return a.Metrics.TotalActive < b.Metrics.TotalActive
		}
	case SortByCreated:
		less = func(a, b *Row) bool {
			return a.Entity.CreatedAt < b.Entity.CreatedAt
		}
	default:
		less = func(a, b *Row) bool {
			return strings.ToLower(a.Entity.Name) < strings.ToLower(b.Entity.Name)
		}
	}

	desc := order == Desc
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(&rows[j], &rows[i])
		}
		return less(&rows[i], &rows[j])
	})
}
