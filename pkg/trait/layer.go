package trait

import "strings"

// Layer identifies one of the four 8-bit bands of a trait vector.
type Layer int

const (
	Physical Layer = iota
	Functional
	Abstract
	Social
)

// NumLayers is the fixed layer count; the four bands always cover all 32 bits.
const NumLayers = 4

// Layers is the canonical iteration order: Physical, Functional, Abstract, Social.
var Layers = [NumLayers]Layer{Physical, Functional, Abstract, Social}

// UnknownLayerName labels codes whose vector has no active bits.
const UnknownLayerName = "Unknown"

var layerNames = [NumLayers]string{"Physical", "Functional", "Abstract", "Social"}

// Display colors consumed by the dashboard view model.
var layerColors = [NumLayers]string{"#EF4444", "#3B82F6", "#A855F7", "#22C55E"}

// UnknownLayerColor is the neutral color for the no-active-bits case.
const UnknownLayerColor = "#9CA3AF"

func (l Layer) String() string {
	if l < 0 || l >= NumLayers {
		return UnknownLayerName
	}
	return layerNames[l]
}

// Color returns the layer's display color.
func (l Layer) Color() string {
	if l < 0 || l >= NumLayers {
		return UnknownLayerColor
	}
	return layerColors[l]
}

// ParseLayer resolves a layer by name, case-insensitively.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if strings.EqualFold(name, n) {
			return Layer(i), true
		}
	}
	return 0, false
}

// BitRange returns the layer's 1-indexed inclusive bit span.
func (l Layer) BitRange() (lo, hi int) {
	return int(l)*8 + 1, int(l)*8 + 8
}

// HexRange returns the layer's half-open character span within a code.
func (l Layer) HexRange() (lo, hi int) {
	return int(l) * 2, int(l)*2 + 2
}

// Mask returns the layer's bits as a vector mask.
func (l Layer) Mask() uint32 {
	if l < 0 || l >= NumLayers {
		return 0
	}
	return 0xFF000000 >> (8 * uint(l))
}
