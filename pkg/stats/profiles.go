package stats

import (
	"math"
	"sort"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// Profile returns a bit's co-occurrence row as a dense vector, one entry
// per partner bit. Out-of-range bits yield the zero profile.
func (m *Cooccurrence) Profile(bit int) []float64 {
	out := make([]float64, trait.VectorBits)
	if bit < 1 || bit > trait.VectorBits {
		return out
	}
	for i := 0; i < trait.VectorBits; i++ {
		out[i] = float64(m.cells[bit-1][i])
	}
	return out
}

// RelatedBit is one entry of a Related ranking.
type RelatedBit struct {
	Bit        int     `json:"bit"`
	Similarity float64 `json:"similarity"`
}

// Related ranks the other 31 bits by cosine similarity between
// co-occurrence profiles: bits that tend to activate in the same company
// rank first. Ties go to the lower bit. n follows the usual clamp.
func (m *Cooccurrence) Related(bit, n int) []RelatedBit {
	if n <= 0 || bit < 1 || bit > trait.VectorBits {
		return nil
	}

	base := m.Profile(bit)
	out := make([]RelatedBit, 0, trait.VectorBits-1)
	for other := 1; other <= trait.VectorBits; other++ {
		if other == bit {
			continue
		}
		out = append(out, RelatedBit{Bit: other, Similarity: cosine(base, m.Profile(other))})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Bit < out[j].Bit
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// cosine computes cosine similarity between two equal-length profiles.
// Zero-norm profiles compare as 0.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
