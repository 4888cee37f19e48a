package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/uhtdeck/gouht/internal/catalog"
	"github.com/uhtdeck/gouht/pkg/query"
)

// loadEntityFile reads a JSON array of entities, the same shape the
// seed command writes and the WASM host loads.
func loadEntityFile(path string) ([]catalog.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read entity file %s: %w", path, err)
	}
	var entities []catalog.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return entities, nil
}

func toQueryEntities(entities []catalog.Entity) []query.Entity {
	out := make([]query.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, query.Entity{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Code:        e.Code,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
