package catalog

import (
	"testing"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

func accessoriesIn(category string) types.AccessoryRule {
	return types.AccessoryRuleFunc(func(p *types.Product) bool {
		return p.Category == category
	})
}

func TestReferencePrice(t *testing.T) {
	plain := &types.Product{Sku: "A", Category: "Paletas", Price: "$500"}
	accessory := &types.Product{Sku: "B", Category: "Accesorios", Price: "$500"}
	rule := accessoriesIn("Accesorios")

	if got := ReferencePrice(plain, rule); got != 500 {
		t.Errorf("plain product = %d, want 500", got)
	}
	if got := ReferencePrice(accessory, rule); got != 1000 {
		t.Errorf("accessory = %d, want 1000", got)
	}
	if got := ReferencePrice(accessory, nil); got != 500 {
		t.Errorf("without a rule = %d, want 500", got)
	}
}

func TestSortByReferencePriceAscending(t *testing.T) {
	products := []types.Product{
		{Sku: "P1", Price: "$90.000"},
		{Sku: "B1", Price: "$4.500"},
		{Sku: "G1", Price: "$1.200"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, nil)
	assertSkus(t, products, "G1", "B1", "P1")
}

func TestSortByReferencePriceDescending(t *testing.T) {
	products := []types.Product{
		{Sku: "P1", Price: "$90.000"},
		{Sku: "B1", Price: "$4.500"},
		{Sku: "G1", Price: "$1.200"},
	}
	SortByReferencePrice(products, types.PriceOrderDesc, nil)
	assertSkus(t, products, "P1", "B1", "G1")
}

func TestSortNoneKeepsOrder(t *testing.T) {
	products := []types.Product{
		{Sku: "P1", Price: "$90.000"},
		{Sku: "G1", Price: "$1.200"},
	}
	SortByReferencePrice(products, types.PriceOrderNone, nil)
	assertSkus(t, products, "P1", "G1")
}

func TestSortIsStable(t *testing.T) {
	products := []types.Product{
		{Sku: "A", Price: "$100"},
		{Sku: "B", Price: "$200"},
		{Sku: "C", Price: "$100"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, nil)
	assertSkus(t, products, "A", "C", "B")

	// flipping direction reverses distinct prices, ties keep their order
	SortByReferencePrice(products, types.PriceOrderDesc, nil)
	assertSkus(t, products, "B", "A", "C")
}

func TestSortSameDirectionIsIdempotent(t *testing.T) {
	products := []types.Product{
		{Sku: "A", Price: "$300"},
		{Sku: "B", Price: "$100"},
		{Sku: "C", Price: "$100"},
		{Sku: "D", Price: "$200"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, nil)
	first := skus(products)
	SortByReferencePrice(products, types.PriceOrderAsc, nil)
	assertSkus(t, products, first...)
}

func TestSortAccessoryDoublingChangesOrder(t *testing.T) {
	products := []types.Product{
		{Sku: "G1", Category: "Accesorios", Price: "$500"},
		{Sku: "P1", Category: "Paletas", Price: "$800"},
		{Sku: "P2", Category: "Paletas", Price: "$1.100"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, accessoriesIn("Accesorios"))
	// the accessory counts as 1000, landing between the two paletas
	assertSkus(t, products, "P1", "G1", "P2")
}

func TestSortUnparsablePriceCountsAsZero(t *testing.T) {
	products := []types.Product{
		{Sku: "A", Price: "$100"},
		{Sku: "B", Price: "consultar"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, nil)
	assertSkus(t, products, "B", "A")
}

func TestSortAsksRuleOncePerProduct(t *testing.T) {
	calls := 0
	rule := types.AccessoryRuleFunc(func(p *types.Product) bool {
		calls++
		return false
	})
	products := []types.Product{
		{Sku: "A", Price: "$3"},
		{Sku: "B", Price: "$1"},
		{Sku: "C", Price: "$2"},
		{Sku: "D", Price: "$5"},
		{Sku: "E", Price: "$4"},
	}
	SortByReferencePrice(products, types.PriceOrderAsc, rule)
	if calls != len(products) {
		t.Errorf("rule called %d times, want %d", calls, len(products))
	}
}
