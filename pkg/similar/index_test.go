package similar

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"

	"github.com/uhtdeck/gouht/pkg/trait"
)

func TestEmbed(t *testing.T) {
	emb := Embed(trait.Decode("80000001"))
	if len(emb) != trait.VectorBits {
		t.Fatalf("expected %d dimensions, got %d", trait.VectorBits, len(emb))
	}
	if emb[0] != 1 {
		t.Errorf("expected dimension for bit 1 active, got %v", emb[0])
	}
	if emb[31] != 1 {
		t.Errorf("expected dimension for bit 32 active, got %v", emb[31])
	}
	active := 0
	for _, f := range emb {
		if f == 1 {
			active++
		}
	}
	if active != 2 {
		t.Errorf("expected 2 active dimensions, got %d", active)
	}
}

func TestIndex_AddAndSearch(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}
	idx, err := New(fs, "similar.bin")
	if err != nil {
		t.Fatal(err)
	}

	// e3 differs from e1 by a single trait; e2 shares only 3 of e1's 19
	if err := idx.Add("e1", "D6FE701D"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Add("e2", "F0000000"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Add("e3", "D6FE701C"); err != nil {
		t.Fatal(err)
	}

	if idx.Len() != 3 {
		t.Fatalf("expected 3 indexed entities, got %d", idx.Len())
	}

	got, err := idx.Search("D6FE701D", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0] != "e1" {
		t.Errorf("expected exact match e1 first, got %s", got[0])
	}
	if got[1] != "e3" {
		t.Errorf("expected near match e3 second, got %s", got[1])
	}
}

func TestIndex_RejectsEmptyEmbeddings(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}
	idx, err := New(fs, "similar.bin")
	if err != nil {
		t.Fatal(err)
	}

	if err := idx.Add("zero", "00000000"); err == nil {
		t.Error("expected error adding a zero-trait code")
	}
	// Malformed codes decode fail-closed to the zero vector
	if err := idx.Add("bad", "not-hex!"); err == nil {
		t.Error("expected error adding a malformed code")
	}
	if _, err := idx.Search("00000000", 3); err == nil {
		t.Error("expected error searching a zero-trait code")
	}
	if idx.Len() != 0 {
		t.Errorf("expected nothing indexed, got %d", idx.Len())
	}
}

func TestIndex_DuplicateID(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}
	idx, err := New(fs, "similar.bin")
	if err != nil {
		t.Fatal(err)
	}

	if err := idx.Add("e1", "D6FE701D"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Add("e1", "F0000000"); err == nil {
		t.Error("expected error re-adding an indexed ID")
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 indexed entity, got %d", idx.Len())
	}
}

func TestIndex_SearchEmpty(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}
	idx, err := New(fs, "similar.bin")
	if err != nil {
		t.Fatal(err)
	}

	got, err := idx.Search("D6FE701D", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results from an empty index, got %v", got)
	}

	got, err = idx.Search("D6FE701D", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil for k=0, got %v", got)
	}
}

func TestIndex_RoundTrip(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}

	// 1. Build and persist
	{
		idx, err := New(fs, "similar.bin")
		if err != nil {
			t.Fatal(err)
		}
		if err := idx.Add("e1", "D6FE701D"); err != nil {
			t.Fatal(err)
		}
		if err := idx.Add("e2", "F0000000"); err != nil {
			t.Fatal(err)
		}
		if err := idx.Add("e3", "D6FE701C"); err != nil {
			t.Fatal(err)
		}
		if err := idx.Save(); err != nil {
			t.Fatal(err)
		}
	}

	// 2. Reload and query
	{
		idx, err := New(fs, "similar.bin")
		if err != nil {
			t.Fatal(err)
		}
		if idx.Len() != 3 {
			t.Fatalf("expected 3 entities after reload, got %d", idx.Len())
		}

		got, err := idx.Search("D6FE701D", 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0] != "e1" || got[1] != "e3" {
			t.Errorf("expected [e1 e3] after reload, got %v", got)
		}

		// Ordinals keep growing past the reloaded set
		if err := idx.Add("e4", "D6FE701D"); err != nil {
			t.Fatal(err)
		}
		if idx.Len() != 4 {
			t.Errorf("expected 4 entities after append, got %d", idx.Len())
		}
	}
}
