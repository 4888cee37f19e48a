// Package similarity provides pairwise distance and overlap metrics over
// trait vectors, plus exact nearest-neighbor ranking for small collections.
// All operations take raw codes and inherit the codec's fail-closed
// decoding, so malformed input behaves as the zero vector throughout.
package similarity

import (
	"math/bits"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// HammingDistance counts differing bit positions between two codes.
// Range 0..32, symmetric. Distinct strings that decode identically
// (including two malformed ones) are distance 0.
func HammingDistance(a, b string) int {
	return bits.OnesCount32(uint32(trait.Decode(a)) ^ uint32(trait.Decode(b)))
}

// ActiveBits returns the 1-indexed active positions in ascending order.
// The zero vector yields an empty, non-nil slice.
func ActiveBits(code string) []int {
	return positions(uint32(trait.Decode(code)))
}

// Jaccard computes intersection over union of the two active-bit sets.
// Two empty sets are defined as maximally similar: 1.0.
func Jaccard(a, b string) float64 {
	va, vb := uint32(trait.Decode(a)), uint32(trait.Decode(b))
	union := bits.OnesCount32(va | vb)
	if union == 0 {
		return 1.0
	}
	return float64(bits.OnesCount32(va&vb)) / float64(union)
}

// Result pairs the two metrics for comparison views.
type Result struct {
	HammingDistance int     `json:"hammingDistance"`
	Jaccard         float64 `json:"jaccard"`
}

// Compare computes both metrics in one call.
func Compare(a, b string) Result {
	return Result{
		HammingDistance: HammingDistance(a, b),
		Jaccard:         Jaccard(a, b),
	}
}

// Comparison partitions all 32 positions for a pair of codes. The four
// sets are disjoint and their sizes always sum to 32.
type Comparison struct {
	Shared    []int `json:"shared"`
	UniqueToA []int `json:"uniqueToA"`
	UniqueToB []int `json:"uniqueToB"`
	Neither   []int `json:"neither"`
}

// CompareTraits buckets every position into exactly one of the four sets.
func CompareTraits(a, b string) Comparison {
	va, vb := uint32(trait.Decode(a)), uint32(trait.Decode(b))
	return Comparison{
		Shared:    positions(va & vb),
		UniqueToA: positions(va &^ vb),
		UniqueToB: positions(vb &^ va),
		Neither:   positions(^(va | vb)),
	}
}

// positions expands a mask into ascending 1-indexed bit positions.
func positions(mask uint32) []int {
	out := make([]int, 0, bits.OnesCount32(mask))
	for pos := 1; pos <= trait.VectorBits; pos++ {
		if mask&(1<<uint(trait.VectorBits-pos)) != 0 {
			out = append(out, pos)
		}
	}
	return out
}
