// Package trait implements the UHT code codec: an 8-character uppercase
// hexadecimal code encoding a 32-bit trait vector split into four 8-bit
// layers (Physical, Functional, Abstract, Social).
//
// Every operation is total. Malformed input never raises: it decodes to the
// zero vector so that downstream consumers always have a vector to work
// with, and such codes surface as "Unknown" in derived metrics.
package trait

import (
	"fmt"
	"strconv"
)

// CodeLen is the character length of a canonical UHT code.
const CodeLen = 8

// ZeroCode is the canonical encoding of the zero vector and the fallback
// rendering for every malformed input.
const ZeroCode = "00000000"

// Valid reports whether code is exactly 8 hex characters (either case).
func Valid(code string) bool {
	if len(code) != CodeLen {
		return false
	}
	for i := 0; i < CodeLen; i++ {
		c := code[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// Decode parses a UHT code, case-insensitively. Malformed input (wrong
// length, non-hex characters, empty) decodes to the zero vector.
func Decode(code string) Vector {
	if !Valid(code) {
		return 0
	}
	n, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return 0
	}
	return Vector(n)
}

// Encode renders the canonical code: 8 uppercase hex characters, zero padded.
func Encode(v Vector) string {
	return fmt.Sprintf("%08X", uint32(v))
}

// Canonical normalizes a code to its canonical form. Equivalent to
// Encode(Decode(code)); malformed input canonicalizes to ZeroCode.
func Canonical(code string) string {
	return Encode(Decode(code))
}

// ParseBinary parses a 32-character '0'/'1' string, first character = bit 1.
// Malformed input parses to the zero vector.
func ParseBinary(bin string) Vector {
	if len(bin) != VectorBits {
		return 0
	}
	var v Vector
	for i := 0; i < VectorBits; i++ {
		switch bin[i] {
		case '1':
			v |= 1 << uint(VectorBits-1-i)
		case '0':
		default:
			return 0
		}
	}
	return v
}

// LayerHex returns the layer's two characters of the canonical encoding.
// Malformed codes decode to zero first and therefore slice to "00".
func LayerHex(code string, l Layer) string {
	if l < 0 || l >= NumLayers {
		return ZeroCode[:2]
	}
	lo, hi := l.HexRange()
	return Canonical(code)[lo:hi]
}

// LayerBinary returns the layer's eight characters of the binary rendering,
// with the same fallback as LayerHex.
func LayerBinary(code string, l Layer) string {
	if l < 0 || l >= NumLayers {
		return Vector(0).Binary()[:8]
	}
	lo, hi := l.HexRange()
	return Decode(code).Binary()[lo*4 : hi*4]
}
