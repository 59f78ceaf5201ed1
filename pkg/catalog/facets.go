package catalog

import (
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// Facets derives the selectable category and brand options from one
// snapshot. Only SKU validity gates participation, sold out products keep
// contributing so their facets do not flicker while stock moves.
//
// The brand list narrows to the selected category. The category list never
// narrows, switching categories stays one click.
func Facets(products []types.Product, state types.FilterState) types.FacetSet {
	categories := []string{types.FacetAll}
	brands := []string{types.FacetAll}
	seenCategory := map[string]struct{}{}
	seenBrand := map[string]struct{}{}

	for i := range products {
		p := &products[i]
		if !p.HasValidSku() {
			continue
		}
		if _, ok := seenCategory[p.Category]; !ok {
			seenCategory[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
		if p.Brand == "" {
			continue
		}
		if state.HasCategory() && p.Category != state.Category {
			continue
		}
		if _, ok := seenBrand[p.Brand]; !ok {
			seenBrand[p.Brand] = struct{}{}
			brands = append(brands, p.Brand)
		}
	}
	return types.FacetSet{Categories: categories, Brands: brands}
}
