package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonMatrix(m [][]int) ([]byte, error) {
	return json.Marshal(cooccurrencePayload{Matrix: m})
}

func freqCounts() []int {
	counts := make([]int, 32)
	counts[0] = 40 // bit 1
	counts[8] = 25 // bit 9
	counts[9] = 25 // bit 10
	counts[31] = 3 // bit 32
	return counts
}

func symMatrix() [][]int {
	m := make([][]int, 32)
	for i := range m {
		m[i] = make([]int, 32)
	}
	set := func(a, b, n int) {
		m[a-1][b-1] = n
		m[b-1][a-1] = n
	}
	set(1, 2, 9)
	set(1, 3, 7)
	set(2, 3, 7)
	set(5, 9, 1)
	return m
}

func TestNewFrequencyTable_Validation(t *testing.T) {
	_, err := NewFrequencyTable(10, make([]int, 31))
	assert.Error(t, err)

	_, err = NewFrequencyTable(-1, make([]int, 32))
	assert.Error(t, err)

	bad := make([]int, 32)
	bad[5] = -2
	_, err = NewFrequencyTable(10, bad)
	assert.Error(t, err)

	tbl, err := NewFrequencyTable(100, freqCounts())
	require.NoError(t, err)
	assert.Equal(t, 100, tbl.Total())
}

func TestFrequencyLookups(t *testing.T) {
	tbl, err := NewFrequencyTable(100, freqCounts())
	require.NoError(t, err)

	assert.Equal(t, 40, tbl.FrequencyOf(1))
	assert.Equal(t, 25, tbl.FrequencyOf(9))
	assert.Equal(t, 0, tbl.FrequencyOf(2))

	// Out-of-range bits read as zero
	assert.Equal(t, 0, tbl.FrequencyOf(0))
	assert.Equal(t, 0, tbl.FrequencyOf(33))

	assert.InDelta(t, 0.4, tbl.ActiveRatio(1), 1e-9)

	empty, err := NewFrequencyTable(0, make([]int, 32))
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.ActiveRatio(1))
}

func TestFrequencyTopBits(t *testing.T) {
	tbl, err := NewFrequencyTable(100, freqCounts())
	require.NoError(t, err)

	// Ties (bits 9 and 10, both 25) resolve to the lower bit
	assert.Equal(t, []int{1, 9, 10}, tbl.TopBits(3))

	assert.Nil(t, tbl.TopBits(0))
	assert.Len(t, tbl.TopBits(99), 32)
}

func TestNewCooccurrence_Validation(t *testing.T) {
	_, err := NewCooccurrence(make([][]int, 31))
	assert.Error(t, err)

	ragged := symMatrix()
	ragged[4] = make([]int, 30)
	_, err = NewCooccurrence(ragged)
	assert.Error(t, err)

	negative := symMatrix()
	negative[2][1] = -4
	negative[1][2] = -4
	_, err = NewCooccurrence(negative)
	assert.Error(t, err)

	asym := symMatrix()
	asym[0][1] = 9
	asym[1][0] = 8
	_, err = NewCooccurrence(asym)
	assert.Error(t, err)

	_, err = NewCooccurrence(symMatrix())
	assert.NoError(t, err)
}

func TestCooccurrence_SymmetricLookups(t *testing.T) {
	m, err := NewCooccurrence(symMatrix())
	require.NoError(t, err)

	assert.Equal(t, 9, m.At(1, 2))
	assert.Equal(t, 9, m.At(2, 1))
	assert.Equal(t, 1, m.At(9, 5))

	for a := 1; a <= 32; a++ {
		for b := 1; b <= 32; b++ {
			assert.Equal(t, m.At(a, b), m.At(b, a), "At(%d,%d)", a, b)
		}
	}

	// Out-of-range bits read as zero
	assert.Equal(t, 0, m.At(0, 1))
	assert.Equal(t, 0, m.At(1, 40))
}

func TestCooccurrence_RankedPairs(t *testing.T) {
	m, err := NewCooccurrence(symMatrix())
	require.NoError(t, err)

	top := m.StrongestPairs(3)
	require.Len(t, top, 3)
	assert.Equal(t, Pair{BitA: 1, BitB: 2, Score: 9}, top[0])
	// Tied scores resolve by ascending (BitA, BitB)
	assert.Equal(t, Pair{BitA: 1, BitB: 3, Score: 7}, top[1])
	assert.Equal(t, Pair{BitA: 2, BitB: 3, Score: 7}, top[2])

	weak := m.WeakestPairs(1)
	require.Len(t, weak, 1)
	assert.Equal(t, Pair{BitA: 1, BitB: 4, Score: 0}, weak[0])

	assert.Nil(t, m.StrongestPairs(0))
	assert.Len(t, m.StrongestPairs(1000), 496)
}

func TestCooccurrence_RelatedProfiles(t *testing.T) {
	m := make([][]int, 32)
	for i := range m {
		m[i] = make([]int, 32)
	}
	// Bits 1 and 2 share an identical company profile: both co-occur
	// only with bit 10
	m[0][9], m[9][0] = 4, 4
	m[1][9], m[9][1] = 4, 4

	cm, err := NewCooccurrence(m)
	require.NoError(t, err)

	related := cm.Related(1, 3)
	require.Len(t, related, 3)
	assert.Equal(t, 2, related[0].Bit)
	assert.InDelta(t, 1.0, related[0].Similarity, 1e-9)
	// Everything else ties at zero similarity, lowest bit first
	assert.Equal(t, 3, related[1].Bit)
	assert.Equal(t, 0.0, related[1].Similarity)

	assert.Nil(t, cm.Related(1, 0))
	assert.Nil(t, cm.Related(0, 5))
}

func TestNewExclusivitySet_Validation(t *testing.T) {
	_, err := NewExclusivitySet([]Pair{{BitA: 0, BitB: 5, Score: 0.5}})
	assert.Error(t, err)

	_, err = NewExclusivitySet([]Pair{{BitA: 7, BitB: 7, Score: 0.5}})
	assert.Error(t, err)

	_, err = NewExclusivitySet([]Pair{{BitA: 1, BitB: 2, Score: 1.5}})
	assert.Error(t, err)

	// Duplicates in either order keep the last score
	s, err := NewExclusivitySet([]Pair{
		{BitA: 1, BitB: 2, Score: 0.3},
		{BitA: 2, BitB: 1, Score: 0.8},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0.8, s.Score(1, 2))
}

func TestExclusivity_Rankings(t *testing.T) {
	s, err := NewExclusivitySet([]Pair{
		{BitA: 3, BitB: 17, Score: 0.92},
		{BitA: 1, BitB: 2, Score: 0.10},
		{BitA: 5, BitB: 30, Score: 0.55},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.92, s.Score(17, 3))
	assert.Equal(t, 0.0, s.Score(4, 9))

	top := s.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, Pair{BitA: 3, BitB: 17, Score: 0.92}, top[0])
	assert.Equal(t, Pair{BitA: 5, BitB: 30, Score: 0.55}, top[1])

	bottom := s.Bottom(1)
	require.Len(t, bottom, 1)
	assert.Equal(t, Pair{BitA: 1, BitB: 2, Score: 0.10}, bottom[0])

	assert.Nil(t, s.Top(0))
	assert.Len(t, s.Bottom(50), 3)
}

func TestParseFrequencyJSON(t *testing.T) {
	payload := []byte(`{"totalEntities": 4, "frequencies": [1,0,2,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,4]}`)
	tbl, err := ParseFrequencyJSON(payload)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Total())
	assert.Equal(t, 2, tbl.FrequencyOf(3))
	assert.Equal(t, 4, tbl.FrequencyOf(32))

	_, err = ParseFrequencyJSON([]byte(`{"frequencies": [1,2,3]}`))
	assert.Error(t, err)

	_, err = ParseFrequencyJSON([]byte(`{broken`))
	assert.Error(t, err)
}

func TestParseCooccurrenceJSON(t *testing.T) {
	good, err := jsonMatrix(symMatrix())
	require.NoError(t, err)

	m, err := ParseCooccurrenceJSON(good)
	require.NoError(t, err)
	assert.Equal(t, 9, m.At(1, 2))

	_, err = ParseCooccurrenceJSON([]byte(`{"matrix": [[1,2],[2,1]]}`))
	assert.Error(t, err)
}

func TestParseExclusivityJSON(t *testing.T) {
	s, err := ParseExclusivityJSON([]byte(`{"pairs": [{"bitA": 3, "bitB": 17, "score": 0.92}]}`))
	require.NoError(t, err)
	assert.Equal(t, 0.92, s.Score(3, 17))

	_, err = ParseExclusivityJSON([]byte(`{"pairs": [{"bitA": 3, "bitB": 3, "score": 0.5}]}`))
	assert.Error(t, err)
}
