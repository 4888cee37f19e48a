// Package stats consumes externally computed aggregate statistics over
// trait bits: per-bit frequency tables, symmetric co-occurrence count
// matrices, and exclusivity pair scores. The host computes these
// out-of-process and ships them in as JSON; this package validates shape,
// answers lookups, and ranks pairs. It performs no aggregation itself.
//
// Constructors are the only place shape errors surface. Every lookup is a
// total function: out-of-range bits read as zero.
package stats

import (
	"fmt"
	"sort"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// Pair is one scored bit pair. Results always carry BitA < BitB.
type Pair struct {
	BitA  int     `json:"bitA"`
	BitB  int     `json:"bitB"`
	Score float64 `json:"score"`
}

// =============================================================================
// Frequency
// =============================================================================

// FrequencyTable holds per-bit activation counts over some population.
type FrequencyTable struct {
	total  int
	counts [trait.VectorBits]int
}

// NewFrequencyTable validates and wraps a 32-entry count slice.
func NewFrequencyTable(total int, counts []int) (*FrequencyTable, error) {
	if len(counts) != trait.VectorBits {
		return nil, fmt.Errorf("frequency table needs %d counts, got %d", trait.VectorBits, len(counts))
	}
	if total < 0 {
		return nil, fmt.Errorf("negative population size %d", total)
	}
	t := &FrequencyTable{total: total}
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("negative count %d for bit %d", n, i+1)
		}
		t.counts[i] = n
	}
	return t, nil
}

// Total returns the population size the counts were computed over.
func (t *FrequencyTable) Total() int {
	return t.total
}

// FrequencyOf returns the activation count for a 1-indexed bit.
func (t *FrequencyTable) FrequencyOf(bit int) int {
	if bit < 1 || bit > trait.VectorBits {
		return 0
	}
	return t.counts[bit-1]
}

// ActiveRatio returns the fraction of the population with the bit active,
// or 0 for an empty population.
func (t *FrequencyTable) ActiveRatio(bit int) float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.FrequencyOf(bit)) / float64(t.total)
}

// TopBits ranks bits by descending count, ties to the lower bit.
// n <= 0 ranks nothing; oversized n returns all 32.
func (t *FrequencyTable) TopBits(n int) []int {
	if n <= 0 {
		return nil
	}
	bits := make([]int, trait.VectorBits)
	for i := range bits {
		bits[i] = i + 1
	}
	sort.SliceStable(bits, func(i, j int) bool {
		a, b := t.counts[bits[i]-1], t.counts[bits[j]-1]
		if a != b {
			return a > b
		}
		return bits[i] < bits[j]
	})
	if n > len(bits) {
		n = len(bits)
	}
	return bits[:n]
}

// =============================================================================
// Co-occurrence
// =============================================================================

// Cooccurrence is a validated symmetric 32x32 co-activation count matrix.
type Cooccurrence struct {
	cells [trait.VectorBits][trait.VectorBits]int
}

// NewCooccurrence validates bounds, sign, and symmetry.
func NewCooccurrence(matrix [][]int) (*Cooccurrence, error) {
	if len(matrix) != trait.VectorBits {
		return nil, fmt.Errorf("co-occurrence matrix needs %d rows, got %d", trait.VectorBits, len(matrix))
	}
	m := &Cooccurrence{}
	for i, row := range matrix {
		if len(row) != trait.VectorBits {
			return nil, fmt.Errorf("co-occurrence row %d needs %d columns, got %d", i+1, trait.VectorBits, len(row))
		}
		for j, n := range row {
			if n < 0 {
				return nil, fmt.Errorf("negative count at (%d,%d)", i+1, j+1)
			}
			m.cells[i][j] = n
		}
	}
	for i := 0; i < trait.VectorBits; i++ {
		for j := i + 1; j < trait.VectorBits; j++ {
			if m.cells[i][j] != m.cells[j][i] {
				return nil, fmt.Errorf("asymmetric cells (%d,%d): %d vs %d", i+1, j+1, m.cells[i][j], m.cells[j][i])
			}
		}
	}
	return m, nil
}

// At returns the co-activation count of two 1-indexed bits. Symmetric by
// construction; out-of-range bits read 0.
func (m *Cooccurrence) At(a, b int) int {
	if a < 1 || a > trait.VectorBits || b < 1 || b > trait.VectorBits {
		return 0
	}
	return m.cells[a-1][b-1]
}

// rankedPairs materializes all 496 distinct off-diagonal pairs, ordered
// by score with (BitA, BitB) ascending tie-breaks.
func (m *Cooccurrence) rankedPairs(asc bool) []Pair {
	pairs := make([]Pair, 0, trait.VectorBits*(trait.VectorBits-1)/2)
	for a := 1; a <= trait.VectorBits; a++ {
		for b := a + 1; b <= trait.VectorBits; b++ {
			pairs = append(pairs, Pair{BitA: a, BitB: b, Score: float64(m.cells[a-1][b-1])})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			if asc {
				return pairs[i].Score < pairs[j].Score
			}
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].BitA != pairs[j].BitA {
			return pairs[i].BitA < pairs[j].BitA
		}
		return pairs[i].BitB < pairs[j].BitB
	})
	return pairs
}

// StrongestPairs returns the top n pairs by co-activation count.
func (m *Cooccurrence) StrongestPairs(n int) []Pair {
	return clampPairs(m.rankedPairs(false), n)
}

// WeakestPairs returns the bottom n pairs, lowest count first.
func (m *Cooccurrence) WeakestPairs(n int) []Pair {
	return clampPairs(m.rankedPairs(true), n)
}

// =============================================================================
// Exclusivity
// =============================================================================

// ExclusivitySet holds host-scored mutual-exclusivity pairs.
type ExclusivitySet struct {
	pairs  []Pair // normalized, sorted by descending score
	scores map[[2]int]float64
}

// NewExclusivitySet validates bit ranges and score bounds. A pair listed
// more than once (in either order) keeps its last score.
func NewExclusivitySet(pairs []Pair) (*ExclusivitySet, error) {
	s := &ExclusivitySet{scores: make(map[[2]int]float64, len(pairs))}
	for i, p := range pairs {
		a, b := p.BitA, p.BitB
		if a < 1 || a > trait.VectorBits || b < 1 || b > trait.VectorBits {
			return nil, fmt.Errorf("pair %d: bits (%d,%d) out of range", i, a, b)
		}
		if a == b {
			return nil, fmt.Errorf("pair %d: self-pair on bit %d", i, a)
		}
		if p.Score < 0 || p.Score > 1 {
			return nil, fmt.Errorf("pair %d: score %v outside [0,1]", i, p.Score)
		}
		if a > b {
			a, b = b, a
		}
		s.scores[[2]int{a, b}] = p.Score
	}

	s.pairs = make([]Pair, 0, len(s.scores))
	for key, score := range s.scores {
		s.pairs = append(s.pairs, Pair{BitA: key[0], BitB: key[1], Score: score})
	}
	sort.Slice(s.pairs, func(i, j int) bool {
		if s.pairs[i].Score != s.pairs[j].Score {
			return s.pairs[i].Score > s.pairs[j].Score
		}
		if s.pairs[i].BitA != s.pairs[j].BitA {
			return s.pairs[i].BitA < s.pairs[j].BitA
		}
		return s.pairs[i].BitB < s.pairs[j].BitB
	})
	return s, nil
}

// Len returns the number of distinct pairs.
func (s *ExclusivitySet) Len() int {
	return len(s.pairs)
}

// Score returns the exclusivity score for a pair in either order.
// Unlisted or out-of-range pairs score 0.
func (s *ExclusivitySet) Score(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	return s.scores[[2]int{a, b}]
}

// Top returns the n highest-scored pairs.
func (s *ExclusivitySet) Top(n int) []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return clampPairs(out, n)
}

// Bottom returns the n lowest-scored pairs, lowest first.
func (s *ExclusivitySet) Bottom(n int) []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		if out[i].BitA != out[j].BitA {
			return out[i].BitA < out[j].BitA
		}
		return out[i].BitB < out[j].BitB
	})
	return clampPairs(out, n)
}

// clampPairs applies the shared n semantics: nothing for n <= 0,
// everything for oversized n.
func clampPairs(pairs []Pair, n int) []Pair {
	if n <= 0 {
		return nil
	}
	if n > len(pairs) {
		n = len(pairs)
	}
	return pairs[:n]
}
