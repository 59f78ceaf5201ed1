package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/cart"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/common"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/index"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/messaging"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/refresh"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/server"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/sheet"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/storage"
)

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

// Fetcher node: owns the refresh sequence, fetches the sheet on a
// schedule and broadcasts every applied snapshot over RabbitMQ. The
// storefront is served by server nodes.
func main() {
	sheetUrl := os.Getenv("SHEET_URL")
	if sheetUrl == "" {
		log.Fatal("SHEET_URL environment variable is not set")
	}
	amqpUrl, ok := os.LookupEnv("RABBIT_HOST")
	if !ok {
		log.Fatal("RABBIT_HOST environment variable is not set")
	}

	if err := os.MkdirAll(path.Join(dataFolder, store), 0755); err != nil {
		log.Fatalf("Could not create data folder: %v", err)
	}
	diskStorage := storage.NewDiskStorage(store, dataFolder)
	if err := diskStorage.LoadSettings(); err != nil {
		log.Printf("Could not load settings from file: %v", err)
	}

	transport, err := messaging.NewRabbitTransport(amqpUrl, store)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer transport.Close()

	idx := index.NewCatalogIndex(cart.MinQuantityPolicy{})
	refresher := &refresh.Refresher{
		Source:    sheet.NewSource(sheetUrl),
		Index:     idx,
		Storage:   diskStorage,
		Publisher: transport,
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
		Transport: transport,
		Auth:      auth,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/admin/", http.StripPrefix("/admin", ws.AdminHandler()))
	mux.Handle("/metrics", promhttp.Handler())

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      60 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{Addr: ":8080", Handler: mux}, timeouts)
	common.RunServerWithShutdown(httpServer, "fetcher", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			return diskStorage.SaveSettings()
		})
}
