package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/uhtdeck/gouht/pkg/similar"
	"github.com/uhtdeck/gouht/pkg/trait"
)

// SQLiteCatalog is the SQLite-backed catalog. Each entity row is paired
// with a vec0 row holding its 32-dim trait embedding, keyed by the
// entity's rowid, so similarity lookups run as plain SQL.
// Thread-safe for concurrent WASM callbacks.
type SQLiteCatalog struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the entity table and its companion vector table.
const schema = `
CREATE TABLE IF NOT EXISTS entities (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
CREATE INDEX IF NOT EXISTS idx_entities_code ON entities(code);

CREATE VIRTUAL TABLE IF NOT EXISTS entity_vectors USING vec0(
    embedding float[32]
);
`

// NewSQLiteCatalog creates a new in-memory SQLite catalog.
func NewSQLiteCatalog() (*SQLiteCatalog, error) {
	return NewSQLiteCatalogWithDSN(":memory:")
}

// NewSQLiteCatalogWithDSN creates a catalog with a specific data source
// name. Use ":memory:" for in-memory or a file path for persistent
// storage.
func NewSQLiteCatalogWithDSN(dsn string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

// Close closes the database connection.
func (c *SQLiteCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// UpsertEntity inserts or updates an entity and refreshes its embedding.
func (c *SQLiteCatalog) UpsertEntity(entity *Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO entities (id, name, description, code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			code = excluded.code,
			updated_at = excluded.updated_at
	`, entity.ID, entity.Name, entity.Description, entity.Code,
		entity.CreatedAt, entity.UpdatedAt)
	if err != nil {
		return err
	}

	var rowid int64
	if err := c.db.QueryRow(`SELECT rowid FROM entities WHERE id = ?`, entity.ID).Scan(&rowid); err != nil {
		return err
	}

	emb, err := json.Marshal(similar.Embed(trait.Decode(entity.Code)))
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	// vec0 has no upsert; replace under the same rowid
	if _, err := c.db.Exec(`DELETE FROM entity_vectors WHERE rowid = ?`, rowid); err != nil {
		return err
	}
	_, err = c.db.Exec(`INSERT INTO entity_vectors (rowid, embedding) VALUES (?, ?)`,
		rowid, string(emb))
	return err
}

// GetEntity retrieves an entity by ID.
func (c *SQLiteCatalog) GetEntity(id string) (*Entity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entity Entity
	err := c.db.QueryRow(`
		SELECT id, name, description, code, created_at, updated_at
		FROM entities WHERE id = ?
	`, id).Scan(
		&entity.ID, &entity.Name, &entity.Description, &entity.Code,
		&entity.CreatedAt, &entity.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// DeleteEntity removes an entity and its embedding.
func (c *SQLiteCatalog) DeleteEntity(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rowid int64
	err := c.db.QueryRow(`SELECT rowid FROM entities WHERE id = ?`, id).Scan(&rowid)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := c.db.Exec(`DELETE FROM entity_vectors WHERE rowid = ?`, rowid); err != nil {
		return err
	}
	_, err = c.db.Exec(`DELETE FROM entities WHERE id = ?`, id)
	return err
}

// ListEntities returns all entities ordered by name.
func (c *SQLiteCatalog) ListEntities() ([]*Entity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(`
		SELECT id, name, description, code, created_at, updated_at
		FROM entities ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		var entity Entity
		if err := rows.Scan(
			&entity.ID, &entity.Name, &entity.Description, &entity.Code,
			&entity.CreatedAt, &entity.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entities = append(entities, &entity)
	}
	return entities, rows.Err()
}

// CountEntities returns the total number of entities.
func (c *SQLiteCatalog) CountEntities() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM entities`).Scan(&count)
	return count, err
}

// SimilarEntities returns up to k entities nearest to the code's trait
// embedding. Distances are L2 over 0/1 embeddings, so the ordering is
// by trait hamming distance. Malformed codes embed fail-closed as the
// zero vector and rank by active trait count.
func (c *SQLiteCatalog) SimilarEntities(code string, k int) ([]*Entity, error) {
	if k <= 0 {
		return nil, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	emb, err := json.Marshal(similar.Embed(trait.Decode(code)))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT e.id, e.name, e.description, e.code, e.created_at, e.updated_at
		FROM (
			SELECT rowid, distance
			FROM entity_vectors
			WHERE embedding MATCH ?
			ORDER BY distance
			LIMIT ?
		) v
		JOIN entities e ON e.rowid = v.rowid
		ORDER BY v.distance
	`, string(emb), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		var entity Entity
		if err := rows.Scan(
			&entity.ID, &entity.Name, &entity.Description, &entity.Code,
			&entity.CreatedAt, &entity.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entities = append(entities, &entity)
	}
	return entities, rows.Err()
}

// Compile-time interface check
var _ Cataloger = (*SQLiteCatalog)(nil)
