package pattern

import (
	"strings"
	"testing"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// TestCycleForward verifies the X -> 1 -> 0 -> X sequence
func TestCycleForward(t *testing.T) {
	steps := map[byte]byte{SymWild: SymOne, SymOne: SymZero, SymZero: SymWild}
	for from, to := range steps {
		if got := CycleForward(from); got != to {
			t.Errorf("CycleForward(%c) = %c, want %c", from, got, to)
		}
	}

	// Out-of-alphabet resets to X, then cycles
	if got := CycleForward('z'); got != SymOne {
		t.Errorf("CycleForward(z) = %c, want 1", got)
	}
}

// TestCycleBackward verifies the X -> 0 -> 1 -> X sequence
func TestCycleBackward(t *testing.T) {
	steps := map[byte]byte{SymWild: SymZero, SymZero: SymOne, SymOne: SymWild}
	for from, to := range steps {
		if got := CycleBackward(from); got != to {
			t.Errorf("CycleBackward(%c) = %c, want %c", from, got, to)
		}
	}

	if got := CycleBackward('?'); got != SymZero {
		t.Errorf("CycleBackward(?) = %c, want 0", got)
	}
}

// TestCycleIdentity verifies three applications restore the symbol
func TestCycleIdentity(t *testing.T) {
	for _, sym := range []byte{SymZero, SymOne, SymWild} {
		if got := CycleForward(CycleForward(CycleForward(sym))); got != sym {
			t.Errorf("triple forward cycle of %c = %c", sym, got)
		}
		if got := CycleBackward(CycleBackward(CycleBackward(sym))); got != sym {
			t.Errorf("triple backward cycle of %c = %c", sym, got)
		}
		if got := CycleBackward(CycleForward(sym)); got != sym {
			t.Errorf("backward(forward(%c)) = %c", sym, got)
		}
	}
}

// TestCyclePosition verifies position-addressed cycling
func TestCyclePosition(t *testing.T) {
	p := Wildcard()

	p = Cycle(p, 1, false)
	if p[0] != SymOne {
		t.Errorf("position 1 after forward cycle = %c, want 1", p[0])
	}
	p = Cycle(p, 32, true)
	if p[31] != SymZero {
		t.Errorf("position 32 after backward cycle = %c, want 0", p[31])
	}

	// Out-of-range positions leave the pattern unchanged
	if Cycle(p, 0, false) != p || Cycle(p, 33, false) != p {
		t.Error("out-of-range Cycle should return the pattern unchanged")
	}
}

// TestCanonical verifies symbol normalization
func TestCanonical(t *testing.T) {
	if got := Canonical("01x?a1"); got != "01XXX1" {
		t.Errorf("Canonical(01x?a1) = %s, want 01XXX1", got)
	}
}

// TestWildcardMatchesEverything verifies the no-constraint pattern
func TestWildcardMatchesEverything(t *testing.T) {
	vectors := []string{"00000000", "FFFFFFFF", "D6FE701D", "80000000"}

	for _, code := range vectors {
		if !Matches(trait.Decode(code), Wildcard(), 0) {
			t.Errorf("wildcard pattern should match %s at tolerance 0", code)
		}
	}

	if !IsWildcard(Wildcard()) {
		t.Error("Wildcard() should report IsWildcard")
	}
	if IsWildcard("1" + strings.Repeat("X", 31)) {
		t.Error("a pinned pattern should not report IsWildcard")
	}
}

// TestSingleBitPattern verifies pinning only bit 1
func TestSingleBitPattern(t *testing.T) {
	p := "1" + strings.Repeat("X", 31)

	matching := []string{"80000000", "D6FE701D", "FFFFFFFF"}
	for _, code := range matching {
		if !Matches(trait.Decode(code), p, 0) {
			t.Errorf("pattern should match %s (bit 1 set)", code)
		}
	}

	nonMatching := []string{"00000000", "7FFFFFFF", "40000000"}
	for _, code := range nonMatching {
		if Matches(trait.Decode(code), p, 0) {
			t.Errorf("pattern should not match %s (bit 1 clear)", code)
		}
	}
}

// TestWrongLengthPattern verifies non-32 patterns never match
func TestWrongLengthPattern(t *testing.T) {
	v := trait.Decode("FFFFFFFF")

	bad := []string{"", "X", strings.Repeat("X", 31), strings.Repeat("X", 33)}
	for _, p := range bad {
		if Matches(v, p, 32) {
			t.Errorf("pattern of length %d should never match", len(p))
		}
	}

	if _, ok := Compile("XXX"); ok {
		t.Error("Compile should reject wrong-length patterns")
	}
}

// TestToleranceAccounting verifies that only constrained positions
// count against the tolerance.
func TestToleranceAccounting(t *testing.T) {
	// Exact pattern of D6FE701D, then flip three constrained positions.
	v := trait.Decode("D6FE701D")
	exact := v.Binary()

	if !Matches(v, exact, 0) {
		t.Fatal("exact pattern should match its own vector at tolerance 0")
	}

	b := []byte(exact)
	for _, pos := range []int{1, 9, 17} {
		if b[pos-1] == '1' {
			b[pos-1] = '0'
		} else {
			b[pos-1] = '1'
		}
	}
	flipped := string(b)

	if Matches(v, flipped, 2) {
		t.Error("three mismatches should fail at tolerance 2")
	}
	if !Matches(v, flipped, 3) {
		t.Error("three mismatches should pass at tolerance 3")
	}

	// Monotonicity: once matching, every larger tolerance matches too
	for tol := 3; tol <= 32; tol++ {
		if !Matches(v, flipped, tol) {
			t.Errorf("match at tolerance 3 should imply match at %d", tol)
		}
	}
}

// TestNegativeTolerance verifies clamping to zero
func TestNegativeTolerance(t *testing.T) {
	v := trait.Decode("D6FE701D")
	if !Matches(v, v.Binary(), -1) {
		t.Error("negative tolerance should behave as zero for an exact match")
	}
	if Matches(v, trait.Vector(0).Binary(), -5) {
		t.Error("negative tolerance should not loosen matching")
	}
}

// TestFromConstraints verifies pattern assembly from pinned bits
func TestFromConstraints(t *testing.T) {
	p := FromConstraints(map[int]byte{1: '1', 32: '0', 40: '1', 5: 'Q'})

	if len(p) != Length {
		t.Fatalf("pattern length = %d, want %d", len(p), Length)
	}
	if p[0] != SymOne {
		t.Errorf("position 1 = %c, want 1", p[0])
	}
	if p[31] != SymZero {
		t.Errorf("position 32 = %c, want 0", p[31])
	}
	// Invalid pin position and symbol are ignored
	if p[4] != SymWild {
		t.Errorf("position 5 = %c, want X", p[4])
	}

	if FromConstraints(nil) != Wildcard() {
		t.Error("no pins should produce the wildcard pattern")
	}
}

// TestCompileMask verifies the compiled care/want planes
func TestCompileMask(t *testing.T) {
	p := "10" + strings.Repeat("X", 30)
	m, ok := Compile(p)
	if !ok {
		t.Fatal("Compile should accept a 32-symbol pattern")
	}
	if m.Care != 0xC0000000 {
		t.Errorf("Care = %08X, want C0000000", m.Care)
	}
	if m.Want != 0x80000000 {
		t.Errorf("Want = %08X, want 80000000", m.Want)
	}

	if d := m.Distance(trait.Decode("40000000")); d != 2 {
		t.Errorf("Distance = %d, want 2", d)
	}
}
