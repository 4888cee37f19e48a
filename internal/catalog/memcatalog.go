package catalog

import (
	"sort"
	"sync"
)

// MemCatalog is an in-memory implementation of Cataloger for testing.
type MemCatalog struct {
	mu       sync.RWMutex
	entities map[string]*Entity
}

// NewMemCatalog creates a new in-memory catalog.
func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		entities: make(map[string]*Entity),
	}
}

// Close is a no-op for MemCatalog.
func (c *MemCatalog) Close() error {
	return nil
}

func (c *MemCatalog) UpsertEntity(entity *Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Deep copy to avoid mutation issues
	cp := *entity
	c.entities[entity.ID] = &cp
	return nil
}

func (c *MemCatalog) GetEntity(id string) (*Entity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entity, ok := c.entities[id]; ok {
		cp := *entity
		return &cp, nil
	}
	return nil, nil
}

func (c *MemCatalog) DeleteEntity(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entities, id)
	return nil
}

func (c *MemCatalog) ListEntities() ([]*Entity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*Entity
	for _, entity := range c.entities {
		cp := *entity
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (c *MemCatalog) CountEntities() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities), nil
}

// Compile-time interface check
var _ Cataloger = (*MemCatalog)(nil)
