// Package pattern implements tri-state constraint patterns over trait
// vectors: 32 symbols from {0, 1, X}, one per bit position, where X leaves
// a position unconstrained. Matching tolerates a bounded mismatch count.
package pattern

import (
	"math/bits"
	"strings"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// Pattern symbols.
const (
	SymZero byte = '0'
	SymOne  byte = '1'
	SymWild byte = 'X'
)

// Length is the required symbol count for any matching operation.
const Length = trait.VectorBits

// Wildcard returns the all-X pattern, which constrains nothing.
func Wildcard() string {
	return strings.Repeat(string(SymWild), Length)
}

// canonicalSym maps any byte onto the pattern alphabet. Lowercase x and
// every out-of-alphabet symbol reset to wildcard.
func canonicalSym(c byte) byte {
	switch c {
	case SymZero, SymOne, SymWild:
		return c
	default:
		return SymWild
	}
}

// Canonical normalizes every symbol onto {0,1,X}, preserving length.
func Canonical(p string) string {
	b := []byte(p)
	for i := range b {
		b[i] = canonicalSym(b[i])
	}
	return string(b)
}

// CycleForward advances one symbol along X -> 1 -> 0 -> X.
// Out-of-alphabet symbols reset to X first, so they cycle to 1.
func CycleForward(sym byte) byte {
	switch canonicalSym(sym) {
	case SymWild:
		return SymOne
	case SymOne:
		return SymZero
	default:
		return SymWild
	}
}

// CycleBackward advances one symbol along X -> 0 -> 1 -> X.
// Out-of-alphabet symbols reset to X first, so they cycle to 0.
func CycleBackward(sym byte) byte {
	switch canonicalSym(sym) {
	case SymWild:
		return SymZero
	case SymZero:
		return SymOne
	default:
		return SymWild
	}
}

// Cycle returns a copy of p with the 1-indexed position cycled.
// Out-of-range positions return p unchanged.
func Cycle(p string, pos int, backward bool) string {
	if pos < 1 || pos > len(p) {
		return p
	}
	b := []byte(p)
	if backward {
		b[pos-1] = CycleBackward(b[pos-1])
	} else {
		b[pos-1] = CycleForward(b[pos-1])
	}
	return string(b)
}

// FromConstraints builds a 32-symbol pattern from individually pinned
// 1-indexed positions. Unpinned positions stay wildcards; pins outside
// 1..32 or with symbols other than '0'/'1' are ignored.
func FromConstraints(pins map[int]byte) string {
	b := []byte(Wildcard())
	for pos, sym := range pins {
		if pos < 1 || pos > Length {
			continue
		}
		if sym == SymZero || sym == SymOne {
			b[pos-1] = sym
		}
	}
	return string(b)
}

// IsWildcard reports whether the pattern constrains no position.
func IsWildcard(p string) bool {
	for i := 0; i < len(p); i++ {
		if canonicalSym(p[i]) != SymWild {
			return false
		}
	}
	return true
}

// Mask is a compiled pattern. Care marks constrained positions, Want holds
// their required values, both under the MSB-first addressing vectors use.
type Mask struct {
	Care uint32
	Want uint32
}

// Compile canonicalizes and compiles a pattern for repeated matching.
// ok is false when the pattern is not exactly 32 symbols long.
func Compile(p string) (Mask, bool) {
	if len(p) != Length {
		return Mask{}, false
	}
	var m Mask
	for i := 0; i < Length; i++ {
		bit := uint32(1) << uint(Length-1-i)
		switch canonicalSym(p[i]) {
		case SymOne:
			m.Care |= bit
			m.Want |= bit
		case SymZero:
			m.Care |= bit
		}
	}
	return m, true
}

// Distance counts constrained positions where the vector disagrees.
func (m Mask) Distance(v trait.Vector) int {
	return bits.OnesCount32((uint32(v) ^ m.Want) & m.Care)
}

// Matches reports whether the vector satisfies the mask within tolerance.
// Negative tolerance behaves as zero.
func (m Mask) Matches(v trait.Vector, tolerance int) bool {
	if tolerance < 0 {
		tolerance = 0
	}
	return m.Distance(v) <= tolerance
}

// Matches evaluates a pattern against a vector with bounded mismatch
// tolerance. Patterns that are not exactly 32 symbols never match.
// The masked XOR popcount equals the per-position mismatch walk over
// non-wildcard symbols, so short-circuiting would change nothing.
func Matches(v trait.Vector, p string, tolerance int) bool {
	m, ok := Compile(p)
	if !ok {
		return false
	}
	return m.Matches(v, tolerance)
}
