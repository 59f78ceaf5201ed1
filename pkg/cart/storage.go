package cart

import (
	"fmt"
	"sync"
	"time"
)

// CartInputItem is what the storefront posts when adding to the cart.
type CartInputItem struct {
	Sku      string `json:"sku"`
	Quantity uint   `json:"quantity"`
}

type CartItem struct {
	Sku         string `json:"sku"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Quantity    uint   `json:"quantity"`
	Image       string `json:"image,omitempty"`
	MinQuantity uint   `json:"min_quantity,omitempty"`
}

type Cart struct {
	Id         string     `json:"id"`
	Items      []CartItem `json:"items"`
	TotalPrice int        `json:"total_price"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartStorage keeps session carts between requests. Implementations load,
// mutate and persist whole carts per operation.
type CartStorage interface {
	GetCart(cartId string) (*Cart, error)
	AddItem(cartId string, item *CartItem) (*Cart, error)
	ChangeQuantity(cartId string, sku string, quantity uint) (*Cart, error)
	RemoveItem(cartId string, sku string) (*Cart, error)
}

func cartTotalPrice(cart *Cart) int {
	total := 0
	for _, item := range cart.Items {
		total += item.Price * int(item.Quantity)
	}
	return total
}

func recalculate(cart *Cart) {
	cart.TotalPrice = cartTotalPrice(cart)
	cart.UpdatedAt = time.Now()
}

// addItem merges by SKU. Re-adding refreshes name, price and image from
// the current catalog and bumps the quantity.
func addItem(cart *Cart, item *CartItem) {
	for i := range cart.Items {
		if cart.Items[i].Sku == item.Sku {
			quantity := cart.Items[i].Quantity + item.Quantity
			cart.Items[i] = *item
			cart.Items[i].Quantity = quantity
			recalculate(cart)
			return
		}
	}
	cart.Items = append(cart.Items, *item)
	recalculate(cart)
}

func changeQuantity(cart *Cart, sku string, quantity uint) error {
	for i := range cart.Items {
		if cart.Items[i].Sku == sku {
			cart.Items[i].Quantity = quantity
			recalculate(cart)
			return nil
		}
	}
	return fmt.Errorf("item %s not found in cart %s", sku, cart.Id)
}

func removeItem(cart *Cart, sku string) error {
	for i := range cart.Items {
		if cart.Items[i].Sku == sku {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			recalculate(cart)
			return nil
		}
	}
	return fmt.Errorf("item %s not found in cart %s", sku, cart.Id)
}

// MemoryCartStorage keeps carts in process memory, for single node setups
// and tests. Carts vanish on restart.
type MemoryCartStorage struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{carts: make(map[string]*Cart)}
}

func (s *MemoryCartStorage) getOrCreate(cartId string) *Cart {
	cart, ok := s.carts[cartId]
	if !ok {
		cart = &Cart{Id: cartId, Items: []CartItem{}}
		s.carts[cartId] = cart
	}
	return cart
}

// clone hands each caller its own copy, the stored cart never escapes the
// lock.
func clone(cart *Cart) *Cart {
	copied := *cart
	copied.Items = append([]CartItem{}, cart.Items...)
	return &copied
}

func (s *MemoryCartStorage) GetCart(cartId string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartId]
	if !ok {
		return &Cart{Id: cartId, Items: []CartItem{}}, nil
	}
	return clone(cart), nil
}

func (s *MemoryCartStorage) AddItem(cartId string, item *CartItem) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.getOrCreate(cartId)
	addItem(cart, item)
	return clone(cart), nil
}

func (s *MemoryCartStorage) ChangeQuantity(cartId string, sku string, quantity uint) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.getOrCreate(cartId)
	if err := changeQuantity(cart, sku, quantity); err != nil {
		return nil, err
	}
	return clone(cart), nil
}

func (s *MemoryCartStorage) RemoveItem(cartId string, sku string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.getOrCreate(cartId)
	if err := removeItem(cart, sku); err != nil {
		return nil, err
	}
	return clone(cart), nil
}
