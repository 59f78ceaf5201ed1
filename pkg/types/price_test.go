package types

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"12500", 12500},
		{"$12.500", 12500},
		{"$ 1.234,00", 123400},
		{"U$D 1.200", 1200},
		{"1,5", 15},
		{"", 0},
		{"consultar", 0},
		{"$", 0},
	}
	for _, c := range cases {
		if got := ParsePrice(c.raw); got != c.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestParsePriceOrder(t *testing.T) {
	if got := ParsePriceOrder("asc"); got != PriceOrderAsc {
		t.Errorf("got %q, want asc", got)
	}
	if got := ParsePriceOrder("desc"); got != PriceOrderDesc {
		t.Errorf("got %q, want desc", got)
	}
	for _, raw := range []string{"", "ASC", "price", "descending"} {
		if got := ParsePriceOrder(raw); got != PriceOrderNone {
			t.Errorf("ParsePriceOrder(%q) = %q, want none", raw, got)
		}
	}
}
