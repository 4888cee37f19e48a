package main

import (
	"fmt"
	"log"

	"github.com/uhtdeck/gouht/internal/catalog"
)

func main() {
	fmt.Println("Testing MemCatalog...")
	testMemCatalog()

	fmt.Println("\nTesting SQLiteCatalog...")
	testSQLiteCatalog()

	fmt.Println("\n✅ All tests passed!")
}

func testMemCatalog() {
	c := catalog.NewMemCatalog()
	defer c.Close()

	entity := &catalog.Entity{
		ID:        "test-entity-1",
		Name:      "Aria Blackwood",
		Code:      "D6FE701D",
		CreatedAt: 1234567890,
		UpdatedAt: 1234567890,
	}

	if err := c.UpsertEntity(entity); err != nil {
		log.Fatalf("UpsertEntity failed: %v", err)
	}
	fmt.Println("  ✓ UpsertEntity works")

	retrieved, err := c.GetEntity("test-entity-1")
	if err != nil {
		log.Fatalf("GetEntity failed: %v", err)
	}
	if retrieved == nil {
		log.Fatal("GetEntity returned nil")
	}
	fmt.Println("  ✓ GetEntity works")

	count, err := c.CountEntities()
	if err != nil {
		log.Fatalf("CountEntities failed: %v", err)
	}
	if count != 1 {
		log.Fatalf("CountEntities expected 1, got %d", count)
	}
	fmt.Println("  ✓ CountEntities works")
}

func testSQLiteCatalog() {
	c, err := catalog.NewSQLiteCatalog()
	if err != nil {
		log.Fatalf("NewSQLiteCatalog failed: %v", err)
	}
	defer c.Close()

	entities := []*catalog.Entity{
		{ID: "test-entity-1", Name: "Aria Blackwood", Code: "D6FE701D", CreatedAt: 1234567890, UpdatedAt: 1234567890},
		{ID: "test-entity-2", Name: "Bastion Kale", Code: "F0000000", CreatedAt: 1234567891, UpdatedAt: 1234567891},
		{ID: "test-entity-3", Name: "Cinder Fox", Code: "D6FE701C", CreatedAt: 1234567892, UpdatedAt: 1234567892},
	}
	for _, e := range entities {
		if err := c.UpsertEntity(e); err != nil {
			log.Fatalf("UpsertEntity failed: %v", err)
		}
	}
	fmt.Println("  ✓ UpsertEntity works")

	retrieved, err := c.GetEntity("test-entity-1")
	if err != nil {
		log.Fatalf("GetEntity failed: %v", err)
	}
	if retrieved == nil {
		log.Fatal("GetEntity returned nil")
	}
	fmt.Println("  ✓ GetEntity works")

	count, err := c.CountEntities()
	if err != nil {
		log.Fatalf("CountEntities failed: %v", err)
	}
	if count != 3 {
		log.Fatalf("CountEntities expected 3, got %d", count)
	}
	fmt.Println("  ✓ CountEntities works")

	// The vec0 table only runs in native builds, so check the KNN path here.
	neighbors, err := c.SimilarEntities("D6FE701D", 2)
	if err != nil {
		log.Fatalf("SimilarEntities failed: %v", err)
	}
	if len(neighbors) != 2 {
		log.Fatalf("SimilarEntities expected 2 results, got %d", len(neighbors))
	}
	if neighbors[0].ID != "test-entity-1" || neighbors[1].ID != "test-entity-3" {
		log.Fatalf("SimilarEntities wrong order: %s, %s", neighbors[0].ID, neighbors[1].ID)
	}
	fmt.Println("  ✓ SimilarEntities works")
}
