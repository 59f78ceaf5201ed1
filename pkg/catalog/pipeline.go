package catalog

import (
	"fmt"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// Trace counts the products surviving each filter stage, in the order the
// stages run. The API exposes it as a debug header on search responses.
type Trace struct {
	Input       int `json:"input"`
	Valid       int `json:"valid"`
	Stocked     int `json:"stocked"`
	Categorized int `json:"categorized"`
	Branded     int `json:"branded"`
	Searched    int `json:"searched"`
}

func (t Trace) String() string {
	return fmt.Sprintf("input=%d valid=%d stock=%d category=%d brand=%d search=%d",
		t.Input, t.Valid, t.Stocked, t.Categorized, t.Branded, t.Searched)
}

// Filter runs the filter stages over one snapshot and returns the
// survivors in snapshot order. The input slice is never modified.
func Filter(products []types.Product, state types.FilterState) []types.Product {
	result, _ := FilterTrace(products, state)
	return result
}

// FilterTrace is Filter with per stage survivor counts.
//
// Stage order matters for the counts: SKU validity first, then stock,
// category, brand and free text search. A product skipped by one stage is
// not seen by the later ones.
func FilterTrace(products []types.Product, state types.FilterState) ([]types.Product, Trace) {
	trace := Trace{Input: len(products)}
	result := make([]types.Product, 0, len(products))
	terms := SearchTerms(state.Search)
	for i := range products {
		p := &products[i]
		if !p.HasValidSku() {
			continue
		}
		trace.Valid++
		if !state.ShowOutOfStock && !p.HasStock() {
			continue
		}
		trace.Stocked++
		if state.HasCategory() && p.Category != state.Category {
			continue
		}
		trace.Categorized++
		if state.HasBrand() && p.Brand != state.Brand {
			continue
		}
		trace.Branded++
		if !MatchesSearch(p, terms) {
			continue
		}
		trace.Searched++
		result = append(result, *p)
	}
	return result, trace
}

// Results filters one snapshot and applies price ordering when the state
// asks for it. rule may be nil, then no product carries the accessory
// markup when sorting.
func Results(products []types.Product, state types.FilterState, rule types.AccessoryRule) []types.Product {
	result, _ := ResultsTrace(products, state, rule)
	return result
}

func ResultsTrace(products []types.Product, state types.FilterState, rule types.AccessoryRule) ([]types.Product, Trace) {
	result, trace := FilterTrace(products, state)
	SortByReferencePrice(result, state.PriceOrder, rule)
	return result, trace
}
