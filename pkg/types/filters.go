package types

// FacetAll is the sentinel option meaning "no restriction" for the category
// and brand facets. The storefront renders it as the first entry of every
// facet list.
const FacetAll = "ALL"

// PriceOrder selects the price sort direction. The zero value leaves the
// snapshot order untouched.
type PriceOrder string

const (
	PriceOrderNone PriceOrder = ""
	PriceOrderAsc  PriceOrder = "asc"
	PriceOrderDesc PriceOrder = "desc"
)

// ParsePriceOrder maps a raw query value to a PriceOrder. Anything that is
// not a known direction means no price sorting.
func ParsePriceOrder(v string) PriceOrder {
	switch PriceOrder(v) {
	case PriceOrderAsc, PriceOrderDesc:
		return PriceOrder(v)
	}
	return PriceOrderNone
}

// FilterState is the complete filter selection for one storefront view.
// All fields are value types so the state can key a memo map directly.
type FilterState struct {
	Category       string     `json:"category" schema:"category,default:ALL"`
	Brand          string     `json:"brand" schema:"brand,default:ALL"`
	Search         string     `json:"search" schema:"search"`
	ShowOutOfStock bool       `json:"showOutOfStock" schema:"outofstock"`
	PriceOrder     PriceOrder `json:"priceOrder" schema:"price"`
}

// DefaultFilterState is the selection a fresh storefront session starts
// with: everything visible that has stock, in sheet order.
func DefaultFilterState() FilterState {
	return FilterState{
		Category: FacetAll,
		Brand:    FacetAll,
	}
}

// HasCategory reports whether the state restricts the category facet.
func (f *FilterState) HasCategory() bool {
	return f.Category != "" && f.Category != FacetAll
}

// HasBrand reports whether the state restricts the brand facet.
func (f *FilterState) HasBrand() bool {
	return f.Brand != "" && f.Brand != FacetAll
}

// Normalized returns a copy with unset facets replaced by the sentinel and
// the price order reduced to a known direction, so two states that select
// the same thing compare equal.
func (f FilterState) Normalized() FilterState {
	if f.Category == "" {
		f.Category = FacetAll
	}
	if f.Brand == "" {
		f.Brand = FacetAll
	}
	f.PriceOrder = ParsePriceOrder(string(f.PriceOrder))
	return f
}

// FacetSet holds the selectable options derived from one snapshot. Both
// lists start with the FacetAll sentinel and keep first-seen order after it.
type FacetSet struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}
