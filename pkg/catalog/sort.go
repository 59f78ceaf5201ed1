package catalog

import (
	"cmp"
	"slices"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// ReferencePrice is the amount price ordering compares: the parsed price,
// doubled when the product sells under the minimum quantity rule, because
// the storefront quotes those as a pack.
func ReferencePrice(p *types.Product, rule types.AccessoryRule) int {
	price := types.ParsePrice(p.Price)
	if rule != nil && rule.IsMinQuantityAccessory(p) {
		return price * 2
	}
	return price
}

// SortByReferencePrice stable sorts products in place. PriceOrderNone
// keeps the given order untouched. The rule is asked once per product, not
// once per comparison.
func SortByReferencePrice(products []types.Product, order types.PriceOrder, rule types.AccessoryRule) {
	if order == types.PriceOrderNone || len(products) < 2 {
		return
	}
	type priced struct {
		ref  int
		item types.Product
	}
	decorated := make([]priced, len(products))
	for i := range products {
		decorated[i] = priced{ref: ReferencePrice(&products[i], rule), item: products[i]}
	}
	slices.SortStableFunc(decorated, func(a, b priced) int {
		if order == types.PriceOrderDesc {
			return cmp.Compare(b.ref, a.ref)
		}
		return cmp.Compare(a.ref, b.ref)
	})
	for i := range decorated {
		products[i] = decorated[i].item
	}
}
