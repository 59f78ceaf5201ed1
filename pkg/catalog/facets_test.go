package catalog

import (
	"slices"
	"testing"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

func TestFacetsSentinelFirstThenFirstSeenOrder(t *testing.T) {
	got := Facets(sampleProducts(), types.DefaultFilterState())
	wantCategories := []string{"ALL", "Paletas", "Pelotas", "Accesorios"}
	if !slices.Equal(got.Categories, wantCategories) {
		t.Errorf("categories = %v, want %v", got.Categories, wantCategories)
	}
	wantBrands := []string{"ALL", "Bullpadel", "Adidas", "Head"}
	if !slices.Equal(got.Brands, wantBrands) {
		t.Errorf("brands = %v, want %v", got.Brands, wantBrands)
	}
}

func TestFacetsIgnoreStockAndSearch(t *testing.T) {
	// P2 is sold out and nothing matches the search, its facets must stay
	state := types.FilterState{Search: "no existe", ShowOutOfStock: false}
	got := Facets(sampleProducts(), state)
	if !slices.Contains(got.Brands, "Adidas") {
		t.Errorf("sold out product lost its brand facet: %v", got.Brands)
	}
	if !slices.Contains(got.Categories, "Pelotas") {
		t.Errorf("search must not narrow categories: %v", got.Categories)
	}
}

func TestFacetsSkipInvalidSku(t *testing.T) {
	products := []types.Product{
		{Sku: " ", Name: "fila rota", Category: "Fantasma", Brand: "Fantasma", Stock: 1},
		{Sku: "P1", Name: "Paleta", Category: "Paletas", Brand: "Nox", Stock: 1},
	}
	got := Facets(products, types.DefaultFilterState())
	if slices.Contains(got.Categories, "Fantasma") || slices.Contains(got.Brands, "Fantasma") {
		t.Errorf("invalid sku row contributed facets: %+v", got)
	}
}

func TestFacetsBrandScopedToCategory(t *testing.T) {
	state := types.DefaultFilterState()
	state.Category = "Paletas"
	got := Facets(sampleProducts(), state)

	wantBrands := []string{"ALL", "Bullpadel", "Adidas"}
	if !slices.Equal(got.Brands, wantBrands) {
		t.Errorf("brands = %v, want %v", got.Brands, wantBrands)
	}
	// the category list itself never narrows
	if !slices.Contains(got.Categories, "Pelotas") {
		t.Errorf("category selection removed other categories: %v", got.Categories)
	}

	state.Category = types.FacetAll
	all := Facets(sampleProducts(), state)
	if !slices.Equal(all.Brands, []string{"ALL", "Bullpadel", "Adidas", "Head"}) {
		t.Errorf("selecting ALL should restore the full brand list, got %v", all.Brands)
	}
}

func TestFacetsExcludeEmptyBrandOnly(t *testing.T) {
	// rows without brand still carry their category, the brand list drops them
	products := []types.Product{
		{Sku: "G1", Name: "Grip", Category: "Accesorios", Brand: "", Stock: 5},
	}
	got := Facets(products, types.DefaultFilterState())
	if !slices.Equal(got.Categories, []string{"ALL", "Accesorios"}) {
		t.Errorf("categories = %v", got.Categories)
	}
	if !slices.Equal(got.Brands, []string{"ALL"}) {
		t.Errorf("brands = %v, want only the sentinel", got.Brands)
	}
}
