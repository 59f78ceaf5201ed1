package cart

import (
	"testing"
)

func TestAddItemMergesBySku(t *testing.T) {
	s := NewMemoryCartStorage()
	first, err := s.AddItem("c1", &CartItem{Sku: "G1", Name: "Grip", Price: 1200, Quantity: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Items) != 1 || first.TotalPrice != 2400 {
		t.Fatalf("cart = %+v", first)
	}

	// same sku again, with a fresher price
	second, err := s.AddItem("c1", &CartItem{Sku: "G1", Name: "Grip", Price: 1500, Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Items) != 1 {
		t.Fatalf("items = %+v", second.Items)
	}
	if second.Items[0].Quantity != 3 || second.Items[0].Price != 1500 {
		t.Errorf("merged item = %+v", second.Items[0])
	}
	if second.TotalPrice != 4500 {
		t.Errorf("total = %d, want 4500", second.TotalPrice)
	}
}

func TestChangeQuantityAndRemove(t *testing.T) {
	s := NewMemoryCartStorage()
	if _, err := s.AddItem("c1", &CartItem{Sku: "P1", Price: 90000, Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	cart, err := s.ChangeQuantity("c1", "P1", 4)
	if err != nil {
		t.Fatal(err)
	}
	if cart.TotalPrice != 360000 {
		t.Errorf("total = %d, want 360000", cart.TotalPrice)
	}

	if _, err := s.ChangeQuantity("c1", "nope", 1); err == nil {
		t.Error("changing an unknown sku should fail")
	}

	cart, err = s.RemoveItem("c1", "P1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || cart.TotalPrice != 0 {
		t.Errorf("cart after remove = %+v", cart)
	}
	if _, err := s.RemoveItem("c1", "P1"); err == nil {
		t.Error("removing twice should fail")
	}
}

func TestGetCartUnknownIdIsEmpty(t *testing.T) {
	s := NewMemoryCartStorage()
	cart, err := s.GetCart("nuevo")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || cart.Id != "nuevo" {
		t.Fatalf("cart = %+v", cart)
	}
}

func TestStorageHandsOutCopies(t *testing.T) {
	s := NewMemoryCartStorage()
	cart, _ := s.AddItem("c1", &CartItem{Sku: "G1", Price: 100, Quantity: 1})
	cart.Items[0].Quantity = 99

	fresh, _ := s.GetCart("c1")
	if fresh.Items[0].Quantity != 1 {
		t.Error("mutating a returned cart leaked into storage")
	}
}
