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
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/server"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/storage"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

var store = "ar"
var dataFolder = "data"

func init() {
	_ = godotenv.Load()
	if s, ok := os.LookupEnv("STORE"); ok {
		store = s
	}
	if d, ok := os.LookupEnv("DATA_DIR"); ok {
		dataFolder = d
	}
}

// Server node: holds a read copy of the catalog, applies snapshots the
// fetcher broadcasts and serves the storefront and cart APIs. Without
// RABBIT_HOST it serves whatever snapshot is on disk.
func main() {
	if err := os.MkdirAll(path.Join(dataFolder, store), 0755); err != nil {
		log.Fatalf("Could not create data folder: %v", err)
	}
	diskStorage := storage.NewDiskStorage(store, dataFolder)
	if err := diskStorage.LoadSettings(); err != nil {
		log.Printf("Could not load settings from file: %v", err)
	}

	idx := index.NewCatalogIndex(cart.MinQuantityPolicy{})

	snapshot, err := diskStorage.LoadSnapshot()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not load snapshot from disk: %v", err)
		}
	} else if idx.Apply(max(snapshot.Seq, 1), snapshot.Products) {
		log.Printf("Restored snapshot %d with %d products", idx.Sequence(), len(snapshot.Products))
	}

	var transport *messaging.RabbitTransport
	if amqpUrl, ok := os.LookupEnv("RABBIT_HOST"); ok {
		transport, err = messaging.NewRabbitTransport(amqpUrl, store)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer transport.Close()

		err = transport.ListenForCatalog(func(snapshot *types.Snapshot) error {
			if !idx.Apply(snapshot.Seq, snapshot.Products) {
				log.Printf("Snapshot %d arrived after a newer one, discarded", snapshot.Seq)
				return nil
			}
			log.Printf("Applied snapshot %d with %d products", snapshot.Seq, len(snapshot.Products))
			if err := diskStorage.SaveSnapshot(snapshot); err != nil {
				log.Printf("Could not persist snapshot %d: %v", snapshot.Seq, err)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to listen for catalog updates: %v", err)
		}
		err = transport.ListenForSettings(func() error {
			return diskStorage.SaveSettings()
		})
		if err != nil {
			log.Fatalf("Failed to listen for settings updates: %v", err)
		}
		log.Println("Listening for catalog and settings updates")
	} else {
		log.Println("RABBIT_HOST not set, serving the snapshot on disk only")
	}

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
		Storage:   diskStorage,
		Transport: transport,
		Auth:      auth,
		Cart: &cart.CartServer{
			Storage: cartStorage,
			Index:   idx,
			Policy:  cart.MinQuantityPolicy{},
		},
	}

	mux := ws.Handler()
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
	common.RunServerWithShutdown(httpServer, "catalog server", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			return diskStorage.SaveSettings()
		})
}
