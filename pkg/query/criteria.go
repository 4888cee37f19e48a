package query

import (
	"sort"
	"strings"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// SortField selects the pipeline's ordering key.
type SortField string

const (
	SortByName    SortField = "name"
	SortByCode    SortField = "code"
	SortByTraits  SortField = "traits"
	SortByCreated SortField = "created"
)

// SortOrder selects ascending or descending output.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Criteria is the full set of independently settable filter knobs.
// The zero value filters nothing and sorts by name ascending.
type Criteria struct {
	// Layers keeps entities with at least one active bit in any named
	// layer. The name "Unknown" keeps entities with no active bits.
	Layers []string `json:"layers,omitempty"`

	// MinTraits drops entities with fewer total active bits.
	// Zero or negative disables the threshold.
	MinTraits int `json:"minTraits,omitempty"`

	// Pins holds 1-indexed positions pinned to "0" or "1". The pipeline
	// compiles them into a tri-state pattern matched at tolerance 0.
	Pins map[int]string `json:"pins,omitempty"`

	// HexPrefixes constrains a layer's canonical hex slice by a 0-2
	// character case-insensitive prefix, keyed by layer name.
	HexPrefixes map[string]string `json:"hexPrefixes,omitempty"`

	// Text is matched case-insensitively against name, description,
	// and code. Quoted phrases match as single units.
	Text string `json:"text,omitempty"`

	SortField SortField `json:"sortField,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// pinSymbols converts the JSON-friendly pin map into raw symbols.
// Entries that are not a single character are dropped here; symbols
// outside {0,1} are dropped later by pattern assembly.
func pinSymbols(pins map[int]string) map[int]byte {
	out := make(map[int]byte, len(pins))
	for pos, sym := range pins {
		if len(sym) == 1 {
			out[pos] = sym[0]
		}
	}
	return out
}

// selectedLayers resolves layer names into a selection mask. Unrecognized
// names other than "Unknown" select nothing; a non-empty Layers list with
// only such names therefore filters everything out, which is the
// deterministic reading of "must be in the selected set".
func selectedLayers(names []string) (layers [trait.NumLayers]bool, unknown bool, on bool) {
	if len(names) == 0 {
		return layers, false, false
	}
	for _, name := range names {
		if strings.EqualFold(name, trait.UnknownLayerName) {
			unknown = true
			continue
		}
		if l, ok := trait.ParseLayer(name); ok {
			layers[l] = true
		}
	}
	return layers, unknown, true
}

// layerPrefix is one resolved hex-prefix constraint.
type layerPrefix struct {
	layer  trait.Layer
	prefix string
}

// normalizePrefixes resolves the per-layer prefix map into a sorted slice
// so evaluation order never depends on map iteration. Empty prefixes and
// unknown layer names constrain nothing.
func normalizePrefixes(hp map[string]string) []layerPrefix {
	if len(hp) == 0 {
		return nil
	}
	out := make([]layerPrefix, 0, len(hp))
	for name, prefix := range hp {
		if prefix == "" {
			continue
		}
		l, ok := trait.ParseLayer(name)
		if !ok {
			continue
		}
		out = append(out, layerPrefix{layer: l, prefix: strings.ToUpper(prefix)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].layer < out[j].layer })
	return out
}
