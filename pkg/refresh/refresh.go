package refresh

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/catalog"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/index"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/storage"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

var (
	refreshRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_refresh_runs_total",
		Help: "Refresh attempts started",
	})
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_refresh_failures_total",
		Help: "Refresh attempts that could not fetch or decode the sheet",
	})
)

// Fetcher returns the full current product list from the sheet.
type Fetcher interface {
	Fetch(ctx context.Context) ([]types.RawProduct, error)
}

// Publisher broadcasts an applied snapshot to the serving nodes.
type Publisher interface {
	PublishCatalog(snapshot *types.Snapshot) error
}

const refreshTimeout = 2 * time.Minute

// Refresher drives one full refresh cycle: fetch the sheet, normalize,
// apply to the index, persist and broadcast. A failed fetch keeps the last
// applied snapshot untouched. Storage and Publisher are optional.
type Refresher struct {
	Source    Fetcher
	Index     *index.CatalogIndex
	Storage   *storage.DiskStorage
	Publisher Publisher

	mu        sync.Mutex
	lastTry   time.Time
	lastError string
}

// Refresh runs one cycle. The sequence token is taken before the fetch
// starts, so a slow fetch finishing after a newer one gets discarded by
// the index instead of applied.
func (r *Refresher) Refresh(ctx context.Context) error {
	token := r.Index.BeginRefresh()
	refreshRuns.Inc()

	raw, err := r.Source.Fetch(ctx)
	r.noteTry(err)
	if err != nil {
		refreshFailures.Inc()
		log.Printf("Refresh %d failed, keeping current snapshot: %v", token, err)
		return err
	}

	products := catalog.Normalize(raw)
	if !r.Index.Apply(token, products) {
		log.Printf("Refresh %d finished after a newer one, discarded", token)
		return nil
	}
	log.Printf("Applied snapshot %d with %d products", token, len(products))

	snapshot := &types.Snapshot{Seq: token, FetchedAt: time.Now(), Products: products}
	if r.Storage != nil {
		if err := r.Storage.SaveSnapshot(snapshot); err != nil {
			log.Printf("Could not persist snapshot %d: %v", token, err)
		}
	}
	if r.Publisher != nil {
		if err := r.Publisher.PublishCatalog(snapshot); err != nil {
			log.Printf("Could not publish snapshot %d: %v", token, err)
		}
	}
	return nil
}

// Restore loads the persisted snapshot so the catalog serves immediately
// while the first fetch runs. No file yet is not an error.
func (r *Refresher) Restore() error {
	if r.Storage == nil {
		return nil
	}
	snapshot, err := r.Storage.LoadSnapshot()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if snapshot.Seq == 0 {
		// snapshot files from before sequence tracking
		snapshot.Seq = 1
	}
	if r.Index.Apply(snapshot.Seq, snapshot.Products) {
		log.Printf("Restored snapshot %d with %d products", snapshot.Seq, len(snapshot.Products))
	}
	return nil
}

// Schedule refreshes on a cron expression until the scheduler is stopped.
// Errors inside a run are already logged and land in Status.
func (r *Refresher) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		_ = r.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func (r *Refresher) noteTry(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastTry = time.Now()
	if err != nil {
		r.lastError = err.Error()
	} else {
		r.lastError = ""
	}
}

// Status describes the refresh loop for the admin endpoint.
type Status struct {
	Loaded    bool      `json:"loaded"`
	Seq       uint64    `json:"seq"`
	Products  int       `json:"products"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastTry   time.Time `json:"lastTry"`
	LastError string    `json:"lastError,omitempty"`
}

func (r *Refresher) Status() Status {
	r.mu.Lock()
	lastTry, lastError := r.lastTry, r.lastError
	r.mu.Unlock()
	return Status{
		Loaded:    r.Index.Loaded(),
		Seq:       r.Index.Sequence(),
		Products:  r.Index.Len(),
		UpdatedAt: r.Index.UpdatedAt(),
		LastTry:   lastTry,
		LastError: lastError,
	}
}
