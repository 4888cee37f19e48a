package query

import (
	"math/bits"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/uhtdeck/gouht/pkg/pattern"
	"github.com/uhtdeck/gouht/pkg/trait"
)

// TraitIndex holds one posting bitmap per trait bit: the entity ordinals
// (positions in the source slice) with that bit active. It is a pure
// accelerator; pipeline results with and without an index are identical.
type TraitIndex struct {
	postings [trait.VectorBits]*roaring.Bitmap
	size     int
}

// BuildTraitIndex indexes entities by their active bits. Ordinals refer
// to positions in the given slice, so the index is only valid for runs
// over that exact slice in that order.
func BuildTraitIndex(entities []Entity) *TraitIndex {
	ix := &TraitIndex{size: len(entities)}
	for i := range ix.postings {
		ix.postings[i] = roaring.New()
	}
	for ord, e := range entities {
		v := trait.Decode(e.Code)
		for pos := 1; pos <= trait.VectorBits; pos++ {
			if v.Bit(pos) {
				ix.postings[pos-1].Add(uint32(ord))
			}
		}
	}
	return ix
}

// Size returns the number of indexed entities.
func (ix *TraitIndex) Size() int {
	return ix.size
}

// Postings returns the bitmap for a 1-indexed bit, or nil out of range.
// Callers must not mutate the returned bitmap.
func (ix *TraitIndex) Postings(pos int) *roaring.Bitmap {
	if pos < 1 || pos > trait.VectorBits {
		return nil
	}
	return ix.postings[pos-1]
}

// Candidates intersects the posting bitmaps of every '1'-pinned position
// in the mask, smallest cardinality first for early termination. Returns
// nil when the mask pins no '1' bits: the index cannot prune and the
// caller should scan everything.
func (ix *TraitIndex) Candidates(m pattern.Mask) *roaring.Bitmap {
	want := m.Care & m.Want
	if want == 0 {
		return nil
	}

	pos := make([]int, 0, bits.OnesCount32(want))
	for p := 1; p <= trait.VectorBits; p++ {
		if want&(1<<uint(trait.VectorBits-p)) != 0 {
			pos = append(pos, p)
		}
	}
	sort.Slice(pos, func(i, j int) bool {
		return ix.postings[pos[i]-1].GetCardinality() < ix.postings[pos[j]-1].GetCardinality()
	})

	out := ix.postings[pos[0]-1].Clone()
	for _, p := range pos[1:] {
		if out.IsEmpty() {
			break
		}
		out.And(ix.postings[p-1])
	}
	return out
}
