//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/uhtdeck/gouht/internal/catalog"
	"github.com/uhtdeck/gouht/pkg/pattern"
	"github.com/uhtdeck/gouht/pkg/query"
	"github.com/uhtdeck/gouht/pkg/similar"
	"github.com/uhtdeck/gouht/pkg/similarity"
	"github.com/uhtdeck/gouht/pkg/stats"
	"github.com/uhtdeck/gouht/pkg/trait"
)

// Version info
const Version = "0.1.0"

// Global state
var cat catalog.Cataloger
var metricsCache = query.NewMetricsCache()
var frequencies *stats.FrequencyTable
var cooccur *stats.Cooccurrence
var exclusivity *stats.ExclusivitySet
var similarIndex *similar.Index

func main() {
	cat = catalog.NewMemCatalog()
	println("[GoUHT] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("GoUHT", js.ValueOf(map[string]interface{}{
		"version":      js.FuncOf(getVersion),
		"loadEntities": js.FuncOf(loadEntities),
		"upsertEntity": js.FuncOf(upsertEntity),
		// Codec API
		"decode":   js.FuncOf(decode),
		"encode":   js.FuncOf(encode),
		"layerHex": js.FuncOf(layerHex),
		"metrics":  js.FuncOf(metrics),
		// Similarity API
		"compare":    js.FuncOf(compare),
		"activeBits": js.FuncOf(activeBits),
		"hamming":    js.FuncOf(hamming),
		"jaccard":    js.FuncOf(jaccard),
		// Pattern API
		"matchPattern": js.FuncOf(matchPattern),
		"cyclePattern": js.FuncOf(cyclePattern),
		// Query API
		"query": js.FuncOf(runQuery),
		// Stats API
		"loadFrequencies":  js.FuncOf(loadFrequencies),
		"loadCooccurrence": js.FuncOf(loadCooccurrence),
		"loadExclusivity":  js.FuncOf(loadExclusivity),
		"traitFrequency":   js.FuncOf(traitFrequency),
		"cooccurrence":     js.FuncOf(cooccurrence),
		"strongestPairs":   js.FuncOf(strongestPairs),
		"weakestPairs":     js.FuncOf(weakestPairs),
		"exclusiveTop":     js.FuncOf(exclusiveTop),
		// Similar Index API
		"initSimilar":   js.FuncOf(initSimilar),
		"indexSimilar":  js.FuncOf(indexSimilar),
		"searchSimilar": js.FuncOf(searchSimilar),
		"saveSimilar":   js.FuncOf(saveSimilar),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// =============================================================================
// Catalog
// =============================================================================

// loadEntities replaces the catalog wholesale
// Args: [entitiesJSON string] - JSON array of entities
func loadEntities(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: entitiesJSON (string)")
	}

	var entities []*catalog.Entity
	if err := json.Unmarshal([]byte(args[0].String()), &entities); err != nil {
		return errorResult("invalid entities json: " + err.Error())
	}

	fresh := catalog.NewMemCatalog()
	now := time.Now().UnixMilli()
	for _, e := range entities {
		e.EnsureID()
		if e.CreatedAt == 0 || e.UpdatedAt == 0 {
			e.Touch(now)
		}
		if err := fresh.UpsertEntity(e); err != nil {
			return errorResult("upsert failed: " + err.Error())
		}
	}

	if cat != nil {
		cat.Close()
	}
	cat = fresh

	println("[GoUHT] ✅ Catalog loaded:", len(entities), "entities")
	return successResult("loaded")
}

// upsertEntity inserts or updates one entity
// Args: [entityJSON string]
// Returns: the stored entity as JSON (with any assigned ID)
func upsertEntity(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: entityJSON (string)")
	}
	if cat == nil {
		return errorResult("catalog not initialized")
	}

	var entity catalog.Entity
	if err := json.Unmarshal([]byte(args[0].String()), &entity); err != nil {
		return errorResult("invalid entity json: " + err.Error())
	}

	entity.EnsureID()
	entity.Touch(time.Now().UnixMilli())

	if err := cat.UpsertEntity(&entity); err != nil {
		return errorResult("upsert failed: " + err.Error())
	}

	jsonBytes, _ := json.Marshal(entity)
	return string(jsonBytes)
}

// =============================================================================
// Codec
// =============================================================================

// decode parses a trait code
// Args: [code string]
// Returns: {code, binary, valid, activeTraits}
func decode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: code (string)")
	}
	code := args[0].String()
	v := trait.Decode(code)

	jsonBytes, _ := json.Marshal(map[string]interface{}{
		"code":         trait.Canonical(code),
		"binary":       v.Binary(),
		"valid":        trait.Valid(code),
		"activeTraits": v.ActiveCount(),
	})
	return string(jsonBytes)
}

// encode renders a 32-char binary string as a trait code
// Args: [binary string]
func encode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: binary (string)")
	}
	return trait.Encode(trait.ParseBinary(args[0].String()))
}

// layerHex returns the two hex chars of one layer
// Args: [code string, layerName string]
func layerHex(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: code (string), layer (string)")
	}
	l, ok := trait.ParseLayer(args[1].String())
	if !ok {
		return errorResult("unknown layer: " + args[1].String())
	}
	return trait.LayerHex(args[0].String(), l)
}

// metrics computes dominant layer, per-layer counts, and total
// Args: [code string]
func metrics(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: code (string)")
	}
	m := metricsCache.GetOrCompute(args[0].String())
	jsonBytes, _ := json.Marshal(m)
	return string(jsonBytes)
}

// =============================================================================
// Similarity
// =============================================================================

// compare partitions two codes' traits into shared/unique/neither
// Args: [a string, b string]
func compare(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: a (string), b (string)")
	}
	c := similarity.CompareTraits(args[0].String(), args[1].String())
	jsonBytes, _ := json.Marshal(c)
	return string(jsonBytes)
}

// activeBits lists the 1-indexed active positions of a code
// Args: [code string]
func activeBits(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: code (string)")
	}
	bits := similarity.ActiveBits(args[0].String())
	jsonBytes, _ := json.Marshal(bits)
	return string(jsonBytes)
}

// hamming returns the hamming distance between two codes
// Args: [a string, b string]
func hamming(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: a (string), b (string)")
	}
	return similarity.HammingDistance(args[0].String(), args[1].String())
}

// jaccard returns the jaccard similarity between two codes
// Args: [a string, b string]
func jaccard(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: a (string), b (string)")
	}
	return similarity.Jaccard(args[0].String(), args[1].String())
}

// =============================================================================
// Patterns
// =============================================================================

// matchPattern tests a code against a tri-state pattern
// Args: [code string, pattern string, tolerance int]
func matchPattern(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: code (string), pattern (string), tolerance (int)")
	}
	return pattern.Matches(trait.Decode(args[0].String()), args[1].String(), args[2].Int())
}

// cyclePattern advances one pattern position through its states
// Args: [pattern string, pos int, backward bool]
func cyclePattern(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: pattern (string), pos (int), backward (bool)")
	}
	return pattern.Cycle(args[0].String(), args[1].Int(), args[2].Bool())
}

// =============================================================================
// Query
// =============================================================================

// runQuery filters and sorts the catalog
// Args: [criteriaJSON string]
// Returns: JSON array of result rows
func runQuery(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: criteriaJSON (string)")
	}
	if cat == nil {
		return errorResult("catalog not initialized")
	}

	var criteria query.Criteria
	if err := json.Unmarshal([]byte(args[0].String()), &criteria); err != nil {
		return errorResult("invalid criteria json: " + err.Error())
	}

	stored, err := cat.ListEntities()
	if err != nil {
		return errorResult("list failed: " + err.Error())
	}

	entities := make([]query.Entity, len(stored))
	for i, e := range stored {
		entities[i] = query.Entity{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Code:        e.Code,
			CreatedAt:   e.CreatedAt,
		}
	}

	rows := query.Run(entities, criteria, query.WithCache(metricsCache))
	jsonBytes, _ := json.Marshal(rows)
	return string(jsonBytes)
}

// =============================================================================
// Stats
// =============================================================================

// loadFrequencies ingests a host-computed frequency payload
// Args: [payloadJSON string]
func loadFrequencies(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: payloadJSON (string)")
	}
	tbl, err := stats.ParseFrequencyJSON([]byte(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	frequencies = tbl
	return successResult("frequencies loaded")
}

// loadCooccurrence ingests a host-computed co-occurrence matrix
// Args: [payloadJSON string]
func loadCooccurrence(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: payloadJSON (string)")
	}
	m, err := stats.ParseCooccurrenceJSON([]byte(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	cooccur = m
	return successResult("co-occurrence loaded")
}

// loadExclusivity ingests host-scored exclusivity pairs
// Args: [payloadJSON string]
func loadExclusivity(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: payloadJSON (string)")
	}
	s, err := stats.ParseExclusivityJSON([]byte(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	exclusivity = s
	return successResult("exclusivity loaded")
}

// traitFrequency reports one bit's population stats
// Args: [bit int]
func traitFrequency(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: bit (int)")
	}
	if frequencies == nil {
		return errorResult("frequencies not loaded")
	}
	bit := args[0].Int()

	jsonBytes, _ := json.Marshal(map[string]interface{}{
		"bit":   bit,
		"count": frequencies.FrequencyOf(bit),
		"ratio": frequencies.ActiveRatio(bit),
		"total": frequencies.Total(),
	})
	return string(jsonBytes)
}

// cooccurrence reports the co-activation count of two bits
// Args: [a int, b int]
func cooccurrence(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: a (int), b (int)")
	}
	if cooccur == nil {
		return errorResult("co-occurrence not loaded")
	}
	return cooccur.At(args[0].Int(), args[1].Int())
}

// strongestPairs ranks the top co-occurring bit pairs
// Args: [n int]
func strongestPairs(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: n (int)")
	}
	if cooccur == nil {
		return errorResult("co-occurrence not loaded")
	}
	jsonBytes, _ := json.Marshal(cooccur.StrongestPairs(args[0].Int()))
	return string(jsonBytes)
}

// weakestPairs ranks the bottom co-occurring bit pairs
// Args: [n int]
func weakestPairs(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: n (int)")
	}
	if cooccur == nil {
		return errorResult("co-occurrence not loaded")
	}
	jsonBytes, _ := json.Marshal(cooccur.WeakestPairs(args[0].Int()))
	return string(jsonBytes)
}

// exclusiveTop ranks the most mutually exclusive bit pairs
// Args: [n int]
func exclusiveTop(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: n (int)")
	}
	if exclusivity == nil {
		return errorResult("exclusivity not loaded")
	}
	jsonBytes, _ := json.Marshal(exclusivity.Top(args[0].Int()))
	return string(jsonBytes)
}

// =============================================================================
// Similar Index
// =============================================================================

// initSimilar opens the IndexedDB-backed similarity index
// Args: [] (uses default "gouht" DB and "similar.bin" path)
func initSimilar(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "gouht", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}

	similarIndex, err = similar.New(fs, "similar.bin")
	if err != nil {
		return errorResult("failed to load similar index: " + err.Error())
	}

	return successResult("similar index initialized")
}

// indexSimilar adds one entity to the similarity index
// Args: [id string, code string]
func indexSimilar(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: id (string), code (string)")
	}
	if similarIndex == nil {
		return errorResult("similar index not initialized")
	}

	if err := similarIndex.Add(args[0].String(), args[1].String()); err != nil {
		return errorResult("add failed: " + err.Error())
	}
	return successResult("indexed")
}

// searchSimilar finds the k nearest indexed entities
// Args: [code string, k int]
// Returns: JSON array of entity IDs
func searchSimilar(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: code (string), k (int)")
	}
	if similarIndex == nil {
		return errorResult("similar index not initialized")
	}

	ids, err := similarIndex.Search(args[0].String(), args[1].Int())
	if err != nil {
		return errorResult("search failed: " + err.Error())
	}
	if ids == nil {
		ids = []string{}
	}

	jsonBytes, _ := json.Marshal(ids)
	return string(jsonBytes)
}

// saveSimilar persists the index to IndexedDB
func saveSimilar(this js.Value, args []js.Value) interface{} {
	if similarIndex == nil {
		return errorResult("similar index not initialized")
	}

	if err := similarIndex.Save(); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return successResult("saved")
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
