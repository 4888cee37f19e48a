package stats

import (
	"encoding/json"
	"fmt"
)

// Wire payloads as produced by the host's aggregation layer.

type frequencyPayload struct {
	TotalEntities int   `json:"totalEntities"`
	Frequencies   []int `json:"frequencies"`
}

type cooccurrencePayload struct {
	Matrix [][]int `json:"matrix"`
}

type exclusivityPayload struct {
	Pairs []Pair `json:"pairs"`
}

// ParseFrequencyJSON decodes and validates a frequency payload.
func ParseFrequencyJSON(data []byte) (*FrequencyTable, error) {
	var p frequencyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("frequency payload: %w", err)
	}
	return NewFrequencyTable(p.TotalEntities, p.Frequencies)
}

// ParseCooccurrenceJSON decodes and validates a co-occurrence payload.
func ParseCooccurrenceJSON(data []byte) (*Cooccurrence, error) {
	var p cooccurrencePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("co-occurrence payload: %w", err)
	}
	return NewCooccurrence(p.Matrix)
}

// ParseExclusivityJSON decodes and validates an exclusivity payload.
func ParseExclusivityJSON(data []byte) (*ExclusivitySet, error) {
	var p exclusivityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("exclusivity payload: %w", err)
	}
	return NewExclusivitySet(p.Pairs)
}
