// Package similar provides approximate nearest-neighbor lookup over trait
// vectors. Each indexed entity is embedded as a 32-dimensional activation
// vector (one dimension per trait bit) in an HNSW graph with cosine
// distance, so "entities like this one" queries stay fast as the catalog
// grows. Exact ranking for small collections lives in pkg/similarity.
package similar

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/uhtdeck/gouht/pkg/trait"
)

// Embed renders a trait vector as an activation embedding, one float32
// per bit position, 1 where the bit is active.
func Embed(v trait.Vector) []float32 {
	out := make([]float32, trait.VectorBits)
	for pos := 1; pos <= trait.VectorBits; pos++ {
		if v.Bit(pos) {
			out[pos-1] = 1
		}
	}
	return out
}

// Index maps entity IDs to trait embeddings and answers k-nearest
// queries. Persistence goes through an injected filesystem so the same
// code runs against IndexedDB in the browser and an in-memory FS in
// tests.
type Index struct {
	fs   hackpadfs.FS
	path string

	mu    sync.RWMutex
	graph *hnsw.HNSW[vector.VF32]
	ids   []string          // ordinal -> entity ID
	ords  map[string]uint32 // entity ID -> ordinal
}

// snapshot is the gob-encoded on-disk form: the HNSW nodes plus the
// ordinal table needed to rehydrate the ID mapping.
type snapshot struct {
	Nodes hnsw.Nodes[vector.VF32]
	IDs   []string
}

// New opens the index at path, loading a previous snapshot when one
// exists and starting empty otherwise.
func New(fs hackpadfs.FS, path string) (*Index, error) {
	x := &Index{
		fs:   fs,
		path: path,
		ords: make(map[string]uint32),
	}

	if err := x.load(); err != nil {
		// No snapshot yet, or an unreadable one: start clean.
		x.graph = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
		x.ids = nil
		x.ords = make(map[string]uint32)
	}

	return x, nil
}

// Add embeds the entity's code and inserts it. A code with no active
// traits embeds to the zero vector, which has no cosine direction, so it
// is rejected. Re-adding an indexed ID is also an error.
func (x *Index) Add(id, code string) error {
	v := trait.Decode(code)
	if v.ActiveCount() == 0 {
		return fmt.Errorf("entity %s: no active traits to embed", id)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.ords[id]; ok {
		return fmt.Errorf("entity %s already indexed", id)
	}

	ord := uint32(len(x.ids))
	x.ids = append(x.ids, id)
	x.ords[id] = ord
	x.graph.Insert(vector.VF32{Key: ord, Vec: Embed(v)})
	return nil
}

// Search returns up to k entity IDs nearest to the code's embedding,
// nearest first. The query code itself may be among the results when an
// indexed entity carries it.
func (x *Index) Search(code string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	v := trait.Decode(code)
	if v.ActiveCount() == 0 {
		return nil, fmt.Errorf("no active traits to embed")
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.ids) == 0 {
		return nil, nil
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}
	results := x.graph.Search(vector.VF32{Vec: Embed(v)}, k, ef)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if int(r.Key) < len(x.ids) {
			ids = append(ids, x.ids[r.Key])
		}
	}
	return ids, nil
}

// Len returns the number of indexed entities.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.ids)
}

// Save persists a snapshot through the injected FS.
func (x *Index) Save() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	snap := snapshot{
		Nodes: x.graph.Nodes(),
		IDs:   x.ids,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(x.fs, x.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

func (x *Index) load() error {
	content, err := hackpadfs.ReadFile(x.fs, x.path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	x.graph = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		snap.Nodes,
	)
	x.ids = snap.IDs
	x.ords = make(map[string]uint32, len(snap.IDs))
	for ord, id := range snap.IDs {
		x.ords[id] = uint32(ord)
	}
	return nil
}
