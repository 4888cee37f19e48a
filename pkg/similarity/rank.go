package similarity

import "sort"

// Neighbor is one ranked candidate from Nearest.
type Neighbor struct {
	Code     string  `json:"code"`
	Distance int     `json:"distance"`
	Jaccard  float64 `json:"jaccard"`
}

// Nearest ranks candidate codes by ascending Hamming distance to target,
// breaking ties by higher Jaccard and then by code string order. k <= 0 or
// k beyond the candidate count returns the full ranking. The target is not
// excluded when it appears among the candidates; it ranks first at
// distance 0.
func Nearest(target string, codes []string, k int) []Neighbor {
	out := make([]Neighbor, 0, len(codes))
	for _, code := range codes {
		out = append(out, Neighbor{
			Code:     code,
			Distance: HammingDistance(target, code),
			Jaccard:  Jaccard(target, code),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Jaccard != out[j].Jaccard {
			return out[i].Jaccard > out[j].Jaccard
		}
		return out[i].Code < out[j].Code
	})

	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
