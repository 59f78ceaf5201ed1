package catalog

import (
	"math"
	"testing"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

func TestCoerceStock(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 4, 4},
		{"float", 2.5, 2.5},
		{"numeric string", "12", 12},
		{"decimal comma", "1,5", 1.5},
		{"padded string", " 3 ", 3},
		{"garbage string", "mucho", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"negative", -2, 0},
		{"negative string", "-5", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"bool", true, 0},
	}
	for _, c := range cases {
		if got := CoerceStock(c.in); got != c.want {
			t.Errorf("%s: CoerceStock(%v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestNormalizeKeepsEveryRow(t *testing.T) {
	raw := []types.RawProduct{
		{Id: 1, Sku: "A1", Name: "Paleta Pro", Price: "$1.000", Stock: "5"},
		{Id: 2, Sku: "", Name: "broken", Stock: nil},
	}
	products := Normalize(raw)
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Stock != 5 {
		t.Errorf("stock = %v, want 5", products[0].Stock)
	}
	if products[0].Price != "$1.000" {
		t.Errorf("price must pass through raw, got %q", products[0].Price)
	}
	if products[1].Stock != 0 {
		t.Errorf("stock = %v, want 0", products[1].Stock)
	}
	if products[1].Sku != "" || products[1].Name != "broken" {
		t.Errorf("fields should pass through unchanged: %+v", products[1])
	}
}
