package cart

import (
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// MinQuantityPolicy is the wholesale accessory rule: products in one of
// the configured accessory categories only sell from the minimum quantity
// up, and price ordering counts them per pack. It satisfies the accessory
// rule the catalog sorting asks for.
type MinQuantityPolicy struct{}

func (MinQuantityPolicy) IsMinQuantityAccessory(p *types.Product) bool {
	return types.CurrentSettings.IsAccessoryCategory(p.Category)
}

// MinQuantity returns the smallest quantity the product can be bought in.
func (MinQuantityPolicy) MinQuantity(p *types.Product) uint {
	if types.CurrentSettings.IsAccessoryCategory(p.Category) {
		return types.CurrentSettings.GetMinQuantity()
	}
	return 1
}
