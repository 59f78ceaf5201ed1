package server

import (
	"net/http"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/cart"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/index"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/messaging"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/refresh"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/storage"
)

// WebServer holds the handlers for the storefront and admin APIs.
// Refresher and Transport are nil on nodes that only listen for snapshots,
// Cart is nil when the cart API is not mounted.
type WebServer struct {
	Index     *index.CatalogIndex
	Refresher *refresh.Refresher
	Storage   *storage.DiskStorage
	Transport *messaging.RabbitTransport
	Auth      AuthHandler
	Cart      *cart.CartServer
}

// Handler assembles the full API surface. The admin routes sit behind
// Auth, the cart keeps its own sub mux.
func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/admin/", http.StripPrefix("/admin", ws.AdminHandler()))
	mux.Handle("/api/", http.StripPrefix("/api", ws.ClientHandler()))
	if ws.Cart != nil {
		mux.Handle("/api/cart/", http.StripPrefix("/api/cart", ws.Cart.CartHandler()))
	}
	return mux
}
