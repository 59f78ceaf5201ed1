package cart

import (
	"testing"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/catalog"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

func TestMinQuantityPolicy(t *testing.T) {
	types.CurrentSettings.SetAccessoryCategories([]string{"Accesorios"})
	types.CurrentSettings.SetMinQuantity(2)

	policy := MinQuantityPolicy{}
	grip := &types.Product{Sku: "G1", Category: "Accesorios", Price: "$500"}
	paleta := &types.Product{Sku: "P1", Category: "Paletas", Price: "$500"}

	if !policy.IsMinQuantityAccessory(grip) || policy.IsMinQuantityAccessory(paleta) {
		t.Fatal("policy should follow the configured categories")
	}
	if got := policy.MinQuantity(grip); got != 2 {
		t.Errorf("accessory min quantity = %d, want 2", got)
	}
	if got := policy.MinQuantity(paleta); got != 1 {
		t.Errorf("regular min quantity = %d, want 1", got)
	}

	// the same rule drives the doubled reference price in sorting
	if got := catalog.ReferencePrice(grip, policy); got != 1000 {
		t.Errorf("reference price = %d, want 1000", got)
	}
	if got := catalog.ReferencePrice(paleta, policy); got != 500 {
		t.Errorf("reference price = %d, want 500", got)
	}
}
