package trait

import "math/bits"

// Vector is a 32-bit trait vector. Bit 1 is the most significant bit and
// maps to the first character of the binary rendering; bit 32 is the least
// significant. The zero value is the all-traits-absent vector.
type Vector uint32

// VectorBits is the fixed width of every trait vector.
const VectorBits = 32

// Bit reports whether the 1-indexed position is active.
// Out-of-range positions are inactive.
func (v Vector) Bit(pos int) bool {
	if pos < 1 || pos > VectorBits {
		return false
	}
	return v&(1<<uint(VectorBits-pos)) != 0
}

// SetBit returns a copy with the 1-indexed position set or cleared.
// Out-of-range positions return v unchanged.
func (v Vector) SetBit(pos int, on bool) Vector {
	if pos < 1 || pos > VectorBits {
		return v
	}
	mask := Vector(1) << uint(VectorBits-pos)
	if on {
		return v | mask
	}
	return v &^ mask
}

// ActiveCount counts active bits.
func (v Vector) ActiveCount() int {
	return bits.OnesCount32(uint32(v))
}

// LayerCount counts active bits within one layer.
func (v Vector) LayerCount(l Layer) int {
	return bits.OnesCount32(uint32(v) & l.Mask())
}

// Binary renders the vector as 32 '0'/'1' characters, bit 1 first.
func (v Vector) Binary() string {
	var b [VectorBits]byte
	for i := 0; i < VectorBits; i++ {
		if v&(1<<uint(VectorBits-1-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b[:])
}

// Hex renders the canonical 8-character uppercase code.
func (v Vector) Hex() string {
	return Encode(v)
}
