package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

// RedisCartStorage shares carts between serving nodes. Carts live under
// "cart_<id>" as JSON blobs and expire after a month of inactivity, an
// expired cart reads back as empty.
type RedisCartStorage struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCartStorage(addr, password string, db int) *RedisCartStorage {
	return &RedisCartStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ctx: context.Background(),
	}
}

func (s *RedisCartStorage) Close() error {
	return s.client.Close()
}

func cartKey(cartId string) string {
	return "cart_" + cartId
}

func (s *RedisCartStorage) load(cartId string) (*Cart, error) {
	data, err := s.client.Get(s.ctx, cartKey(cartId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{Id: cartId, Items: []CartItem{}}, nil
		}
		return nil, err
	}
	cart := &Cart{}
	if err := json.Unmarshal([]byte(data), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStorage) save(cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, cartKey(cart.Id), data, cartTTL).Err()
}

func (s *RedisCartStorage) GetCart(cartId string) (*Cart, error) {
	return s.load(cartId)
}

func (s *RedisCartStorage) AddItem(cartId string, item *CartItem) (*Cart, error) {
	cart, err := s.load(cartId)
	if err != nil {
		return nil, err
	}
	addItem(cart, item)
	if err := s.save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStorage) ChangeQuantity(cartId string, sku string, quantity uint) (*Cart, error) {
	cart, err := s.load(cartId)
	if err != nil {
		return nil, err
	}
	if err := changeQuantity(cart, sku, quantity); err != nil {
		return nil, err
	}
	if err := s.save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStorage) RemoveItem(cartId string, sku string) (*Cart, error) {
	cart, err := s.load(cartId)
	if err != nil {
		return nil, err
	}
	if err := removeItem(cart, sku); err != nil {
		return nil, err
	}
	if err := s.save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}
