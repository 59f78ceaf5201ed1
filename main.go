package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/cart"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/common"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/index"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/refresh"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/server"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/sheet"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/storage"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var listenAddress = ":8080"
var debugAddress = ":8081"

var store = "ar"
var dataFolder = "data"
var fetchSchedule = "@every 15m"

func init() {
	_ = godotenv.Load()
	if s, ok := os.LookupEnv("STORE"); ok {
		store = s
	}
	if d, ok := os.LookupEnv("DATA_DIR"); ok {
		dataFolder = d
	}
	if s, ok := os.LookupEnv("FETCH_SCHEDULE"); ok {
		fetchSchedule = s
	}
}

// Standalone node: fetches the sheet, serves the storefront and admin
// APIs and keeps the cart, all in one process. The fetcher and server
// commands split this over several nodes.
func main() {
	flag.Parse()

	sheetUrl := os.Getenv("SHEET_URL")
	if sheetUrl == "" {
		log.Fatal("SHEET_URL environment variable is not set")
	}

	if err := os.MkdirAll(path.Join(dataFolder, store), 0755); err != nil {
		log.Fatalf("Could not create data folder: %v", err)
	}
	diskStorage := storage.NewDiskStorage(store, dataFolder)
	if err := diskStorage.LoadSettings(); err != nil {
		log.Printf("Could not load settings from file: %v", err)
	}

	idx := index.NewCatalogIndex(cart.MinQuantityPolicy{})
	refresher := &refresh.Refresher{
		Source:  sheet.NewSource(sheetUrl),
		Index:   idx,
		Storage: diskStorage,
	}
	if err := refresher.Restore(); err != nil {
		log.Printf("Could not restore snapshot: %v", err)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_ = refresher.Refresh(ctx)
	}()
	cronRunner, err := refresher.Schedule(fetchSchedule)
	if err != nil {
		log.Fatalf("Invalid FETCH_SCHEDULE %q: %v", fetchSchedule, err)
	}
	defer cronRunner.Stop()

	var cartStorage cart.CartStorage = cart.NewMemoryCartStorage()
	if redisUrl, ok := os.LookupEnv("REDIS_URL"); ok {
		cartStorage = cart.NewRedisCartStorage(redisUrl, os.Getenv("REDIS_PASSWORD"), 0)
		log.Printf("Cart storage on redis, url: %s", redisUrl)
	}

	var auth server.AuthHandler
	googleAuth, err := server.NewGoogleAuth()
	if err != nil {
		log.Printf("Google auth disabled (%v), admin endpoints are open", err)
		auth = &server.MockAuth{}
	} else {
		auth = googleAuth
	}

	ws := &server.WebServer{
		Index:     idx,
		Refresher: refresher,
		Storage:   diskStorage,
		Auth:      auth,
		Cart: &cart.CartServer{
			Storage: cartStorage,
			Index:   idx,
			Policy:  cart.MinQuantityPolicy{},
		},
	}

	go func() {
		debugMux := http.NewServeMux()
		debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if !idx.Loaded() {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		debugMux.Handle("/metrics", promhttp.Handler())
		if enableProfiling != nil && *enableProfiling {
			log.Println("Profiling enabled")
			debugMux.HandleFunc("/debug/pprof/", pprof.Index)
			debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
			debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		}
		log.Printf("Starting debug server %v", debugAddress)
		log.Fatal(http.ListenAndServe(debugAddress, debugMux))
	}()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      60 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{Addr: listenAddress, Handler: ws.Handler()}, timeouts)
	common.RunServerWithShutdown(httpServer, "catalog", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			return diskStorage.SaveSettings()
		})
}
