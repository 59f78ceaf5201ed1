package index

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/catalog"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

var (
	snapshotsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_snapshots_applied_total",
		Help: "Product snapshots applied to the index",
	})
	snapshotsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_snapshots_discarded_total",
		Help: "Snapshots dropped because a newer refresh was already applied",
	})
	productsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalogo_products_loaded",
		Help: "Products in the current snapshot",
	})
)

// results and facets are memoized per filter state, a burst of odd search
// queries must not grow the maps without bound
const memoLimit = 512

type memoEntry struct {
	products []types.Product
	trace    catalog.Trace
}

// CatalogIndex holds the current product snapshot and memoizes the facet
// and result derivations for it. Snapshots replace each other wholesale,
// guarded by a refresh sequence so a slow fetch can never clobber a newer
// one. All methods are safe for concurrent use.
type CatalogIndex struct {
	mu   sync.RWMutex
	rule types.AccessoryRule

	seq       uint64
	applied   uint64
	products  []types.Product
	bySku     map[string]int
	updatedAt time.Time

	results map[types.FilterState]*memoEntry
	facets  map[string]*types.FacetSet
}

// NewCatalogIndex returns an empty index. rule decides the accessory
// markup during price sorting and may be nil.
func NewCatalogIndex(rule types.AccessoryRule) *CatalogIndex {
	return &CatalogIndex{
		rule:    rule,
		results: map[types.FilterState]*memoEntry{},
		facets:  map[string]*types.FacetSet{},
	}
}

// BeginRefresh hands out the sequence token for a refresh that is about to
// start. Call it before fetching, pass the token to Apply when done.
func (ci *CatalogIndex) BeginRefresh() uint64 {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.seq++
	return ci.seq
}

// Apply installs a new snapshot and reports whether it was accepted. A
// token at or below the applied one means a newer refresh finished first,
// the stale snapshot is dropped. Accepting a token also moves the local
// sequence forward so tokens minted on another node keep working after a
// restart.
func (ci *CatalogIndex) Apply(token uint64, products []types.Product) bool {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	if token <= ci.applied {
		snapshotsDiscarded.Inc()
		return false
	}
	if token > ci.seq {
		ci.seq = token
	}
	ci.applied = token
	ci.products = products
	ci.bySku = make(map[string]int, len(products))
	for i := range products {
		p := &products[i]
		if !p.HasValidSku() {
			continue
		}
		if _, ok := ci.bySku[p.Sku]; !ok {
			ci.bySku[p.Sku] = i
		}
	}
	ci.updatedAt = time.Now()
	ci.results = make(map[types.FilterState]*memoEntry, len(ci.results))
	ci.facets = make(map[string]*types.FacetSet, len(ci.facets))
	snapshotsApplied.Inc()
	productsLoaded.Set(float64(len(products)))
	return true
}

// Loaded reports whether any snapshot was ever applied. An empty catalog
// after filtering is a valid state, an index that never loaded is not.
func (ci *CatalogIndex) Loaded() bool {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.applied > 0
}

func (ci *CatalogIndex) Sequence() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.applied
}

func (ci *CatalogIndex) Len() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return len(ci.products)
}

func (ci *CatalogIndex) UpdatedAt() time.Time {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.updatedAt
}

// Products returns the current snapshot. Callers must treat it as read
// only, it is shared with every other caller.
func (ci *CatalogIndex) Products() []types.Product {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.products
}

// BySku finds a product in the current snapshot. Rows without a valid SKU
// are not reachable this way; with duplicate SKUs the first row wins.
func (ci *CatalogIndex) BySku(sku string) (*types.Product, bool) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	i, ok := ci.bySku[sku]
	if !ok {
		return nil, false
	}
	return &ci.products[i], true
}

// Results runs the filter stages for the state, memoized per snapshot.
// Equal states return the identical slice until the next Apply.
func (ci *CatalogIndex) Results(state types.FilterState) ([]types.Product, catalog.Trace) {
	state = state.Normalized()
	for {
		ci.mu.RLock()
		if entry, ok := ci.results[state]; ok {
			ci.mu.RUnlock()
			return entry.products, entry.trace
		}
		applied := ci.applied
		products := ci.products
		ci.mu.RUnlock()

		result, trace := catalog.ResultsTrace(products, state, ci.rule)

		ci.mu.Lock()
		if ci.applied != applied {
			// a snapshot landed while deriving, redo on the new one
			ci.mu.Unlock()
			continue
		}
		if len(ci.results) >= memoLimit {
			ci.results = make(map[types.FilterState]*memoEntry, memoLimit)
		}
		ci.results[state] = &memoEntry{products: result, trace: trace}
		ci.mu.Unlock()
		return result, trace
	}
}

// Facets derives the facet options for the state, memoized per snapshot.
// Only the selected category influences the outcome, so that is the key.
func (ci *CatalogIndex) Facets(state types.FilterState) *types.FacetSet {
	category := state.Normalized().Category
	for {
		ci.mu.RLock()
		if set, ok := ci.facets[category]; ok {
			ci.mu.RUnlock()
			return set
		}
		applied := ci.applied
		products := ci.products
		ci.mu.RUnlock()

		derived := catalog.Facets(products, types.FilterState{Category: category})

		ci.mu.Lock()
		if ci.applied != applied {
			ci.mu.Unlock()
			continue
		}
		if len(ci.facets) >= memoLimit {
			ci.facets = make(map[string]*types.FacetSet, memoLimit)
		}
		ci.facets[category] = &derived
		ci.mu.Unlock()
		return &derived
	}
}
