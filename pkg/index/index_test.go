package index

import (
	"testing"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

func testProducts() []types.Product {
	return []types.Product{
		{Id: 1, Sku: "P1", Name: "Paleta Vertex", Category: "Paletas", Brand: "Bullpadel", Price: "$90.000", Stock: 3},
		{Id: 2, Sku: "B1", Name: "Pelotas x3", Category: "Pelotas", Brand: "Head", Price: "$4.500", Stock: 10},
		{Id: 3, Sku: "", Name: "fila vacia"},
	}
}

func TestApplyAcceptsNewerToken(t *testing.T) {
	ci := NewCatalogIndex(nil)
	token := ci.BeginRefresh()
	if token != 1 {
		t.Fatalf("first token = %d, want 1", token)
	}
	if !ci.Apply(token, testProducts()) {
		t.Fatal("fresh token rejected")
	}
	if !ci.Loaded() {
		t.Error("index should report loaded")
	}
	if got := ci.Len(); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
	if got := ci.Sequence(); got != 1 {
		t.Errorf("sequence = %d, want 1", got)
	}
}

func TestApplyDiscardsOutOfOrderSnapshot(t *testing.T) {
	ci := NewCatalogIndex(nil)
	slow := ci.BeginRefresh()
	fast := ci.BeginRefresh()

	if !ci.Apply(fast, testProducts()) {
		t.Fatal("newer refresh rejected")
	}
	if ci.Apply(slow, nil) {
		t.Fatal("stale refresh must be discarded")
	}
	if got := ci.Len(); got != 3 {
		t.Errorf("stale apply clobbered the snapshot, len = %d", got)
	}
	if got := ci.Sequence(); got != fast {
		t.Errorf("sequence = %d, want %d", got, fast)
	}
}

func TestApplyForeignTokenMovesSequence(t *testing.T) {
	// a listening node applies tokens minted by the fetcher
	ci := NewCatalogIndex(nil)
	if !ci.Apply(42, testProducts()) {
		t.Fatal("foreign token rejected")
	}
	if got := ci.BeginRefresh(); got != 43 {
		t.Errorf("next token = %d, want 43", got)
	}
}

func TestResultsMemoized(t *testing.T) {
	ci := NewCatalogIndex(nil)
	ci.Apply(ci.BeginRefresh(), testProducts())

	state := types.FilterState{Category: "Paletas"}
	first, _ := ci.Results(state)
	second, _ := ci.Results(state.Normalized())
	if len(first) != 1 || first[0].Sku != "P1" {
		t.Fatalf("got %v", first)
	}
	// identical state must return the identical slice, not a fresh copy
	if &first[0] != &second[0] {
		t.Error("memo returned a new object for the same state")
	}

	ci.Apply(ci.BeginRefresh(), testProducts())
	third, _ := ci.Results(state)
	if &first[0] == &third[0] {
		t.Error("memo survived a snapshot change")
	}
}

func TestResultsTraceFromMemo(t *testing.T) {
	ci := NewCatalogIndex(nil)
	ci.Apply(ci.BeginRefresh(), testProducts())

	_, trace := ci.Results(types.FilterState{})
	if trace.Input != 3 || trace.Valid != 2 || trace.Searched != 2 {
		t.Errorf("trace = %+v", trace)
	}
}

func TestFacetsMemoizedPerCategory(t *testing.T) {
	ci := NewCatalogIndex(nil)
	ci.Apply(ci.BeginRefresh(), testProducts())

	all := ci.Facets(types.FilterState{})
	again := ci.Facets(types.FilterState{Brand: "Head", Search: "x"})
	if all != again {
		t.Error("facets should only key on the selected category")
	}
	scoped := ci.Facets(types.FilterState{Category: "Paletas"})
	if len(scoped.Brands) != 2 || scoped.Brands[1] != "Bullpadel" {
		t.Errorf("scoped brands = %v", scoped.Brands)
	}
}

func TestBySku(t *testing.T) {
	ci := NewCatalogIndex(nil)
	ci.Apply(ci.BeginRefresh(), testProducts())

	p, ok := ci.BySku("B1")
	if !ok || p.Name != "Pelotas x3" {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}
	if _, ok := ci.BySku("missing"); ok {
		t.Error("unknown sku should not resolve")
	}
	if _, ok := ci.BySku(""); ok {
		t.Error("empty sku should not resolve")
	}
}
