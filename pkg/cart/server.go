package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/index"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

type CartServer struct {
	Storage CartStorage
	Index   *index.CatalogIndex
	Policy  MinQuantityPolicy
}

const cartCookie = "cartid"

func handleCartCookie(w http.ResponseWriter, r *http.Request, create bool) (string, error) {
	c, err := r.Cookie(cartCookie)
	if err == nil && c.Value != "" {
		return c.Value, nil
	}
	if !create {
		return "", errors.New("no cart session")
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// cartItemFor builds a cart line from the current catalog, with the
// accessory minimum already enforced.
func (s *CartServer) cartItemFor(input *CartInputItem) (*CartItem, error) {
	product, ok := s.Index.BySku(input.Sku)
	if !ok {
		return nil, errors.New("unknown sku")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	minQuantity := s.Policy.MinQuantity(product)
	if quantity < minQuantity {
		quantity = minQuantity
	}
	item := &CartItem{
		Sku:      product.Sku,
		Name:     product.Name,
		Price:    types.ParsePrice(product.Price),
		Quantity: quantity,
	}
	if minQuantity > 1 {
		item.MinQuantity = minQuantity
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	return item, nil
}

func writeCart(w http.ResponseWriter, cart *Cart) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cart); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *CartServer) GetSessionCart(w http.ResponseWriter, req *http.Request) {
	cartId, err := handleCartCookie(w, req, false)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No cart session"))
		return
	}
	cart, err := s.Storage.GetCart(cartId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error getting cart"))
		return
	}
	writeCart(w, cart)
}

func (s *CartServer) AddSessionItem(w http.ResponseWriter, req *http.Request) {
	cartId, err := handleCartCookie(w, req, true)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Unable to create cart session"))
		return
	}
	var input CartInputItem
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid item"))
		return
	}
	item, err := s.cartItemFor(&input)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	cart, err := s.Storage.AddItem(cartId, item)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error adding item"))
		return
	}
	writeCart(w, cart)
}

func (s *CartServer) ChangeQuantitySessionItem(w http.ResponseWriter, req *http.Request) {
	cartId, err := handleCartCookie(w, req, false)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No cart session"))
		return
	}
	var input CartInputItem
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid item"))
		return
	}

	var cart *Cart
	if input.Quantity == 0 {
		cart, err = s.Storage.RemoveItem(cartId, input.Sku)
	} else {
		quantity := input.Quantity
		if product, ok := s.Index.BySku(input.Sku); ok {
			if min := s.Policy.MinQuantity(product); quantity < min {
				quantity = min
			}
		}
		cart, err = s.Storage.ChangeQuantity(cartId, input.Sku, quantity)
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error changing quantity"))
		return
	}
	writeCart(w, cart)
}

func (s *CartServer) RemoveSessionItem(w http.ResponseWriter, req *http.Request) {
	cartId, err := handleCartCookie(w, req, false)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No cart session"))
		return
	}
	sku := req.PathValue("sku")
	cart, err := s.Storage.RemoveItem(cartId, sku)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error removing item"))
		return
	}
	writeCart(w, cart)
}

func (s *CartServer) CartHandler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.GetSessionCart)
	mux.HandleFunc("POST /", s.AddSessionItem)
	mux.HandleFunc("PUT /", s.ChangeQuantitySessionItem)
	mux.HandleFunc("DELETE /{sku}", s.RemoveSessionItem)
	return mux
}
