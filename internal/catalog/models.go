// Package catalog provides the entity record set the host hydrates
// before querying. Both backends run in-process: a plain map store for
// tests and small sessions, and in-memory SQLite with the sqlite-vec
// extension for SQL-side similarity lookups.
package catalog

import (
	"github.com/google/uuid"
)

// Entity is one cataloged record: a named thing carrying a trait code.
type Entity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// EnsureID assigns a fresh UUID when the entity has none.
func (e *Entity) EnsureID() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
}

// Touch maintains the timestamps around an upsert. CreatedAt is set
// once; UpdatedAt follows every call.
func (e *Entity) Touch(now int64) {
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

// Cataloger defines the interface for entity persistence.
// This allows swapping between MemCatalog (testing) and SQLiteCatalog.
type Cataloger interface {
	UpsertEntity(entity *Entity) error
	GetEntity(id string) (*Entity, error)
	DeleteEntity(id string) error
	ListEntities() ([]*Entity, error)
	CountEntities() (int, error)

	// Lifecycle
	Close() error
}
