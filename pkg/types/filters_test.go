package types

import "testing"

func TestFilterStateNormalized(t *testing.T) {
	state := FilterState{Search: "pro", PriceOrder: "cheapest"}
	got := state.Normalized()

	if got.Category != FacetAll {
		t.Errorf("category = %q, want %q", got.Category, FacetAll)
	}
	if got.Brand != FacetAll {
		t.Errorf("brand = %q, want %q", got.Brand, FacetAll)
	}
	if got.PriceOrder != PriceOrderNone {
		t.Errorf("priceOrder = %q, want none", got.PriceOrder)
	}
	if got.Search != "pro" {
		t.Errorf("search = %q, want %q", got.Search, "pro")
	}

	same := DefaultFilterState()
	same.Search = "pro"
	if got != same {
		t.Errorf("normalized state %+v does not equal default with search %+v", got, same)
	}
}

func TestFilterStateHasFacetSelection(t *testing.T) {
	state := DefaultFilterState()
	if state.HasCategory() || state.HasBrand() {
		t.Fatalf("default state should not restrict facets: %+v", state)
	}
	state.Category = "Paletas"
	state.Brand = "Bullpadel"
	if !state.HasCategory() || !state.HasBrand() {
		t.Fatalf("selection not detected: %+v", state)
	}
}

func TestSettingsMinQuantityDefault(t *testing.T) {
	s := &Settings{}
	if got := s.GetMinQuantity(); got != 2 {
		t.Errorf("empty settings min quantity = %d, want 2", got)
	}
	s.SetMinQuantity(6)
	if got := s.GetMinQuantity(); got != 6 {
		t.Errorf("min quantity = %d, want 6", got)
	}
}

func TestIsAccessoryCategory(t *testing.T) {
	s := &Settings{AccessoryCategories: []string{"Accesorios", "Grips"}}
	if !s.IsAccessoryCategory("Grips") {
		t.Error("Grips should be an accessory category")
	}
	if s.IsAccessoryCategory("grips") {
		t.Error("matching must be exact, got a hit for lowercase")
	}
	if s.IsAccessoryCategory("Paletas") {
		t.Error("Paletas should not be an accessory category")
	}
}
