package localstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phenrril/munek/internal/domain"
)

type OrderRepo struct {
	kv domain.KVStore
	mu sync.Mutex
}

func NewOrderRepo(kv domain.KVStore) *OrderRepo { return &OrderRepo{kv: kv} }

func (r *OrderRepo) load(ctx context.Context) []domain.Order {
	orders := []domain.Order{}
	raw, ok := readKey(ctx, r.kv, OrdersKey)
	if !ok {
		return orders
	}
	for _, item := range decodeList(raw, OrdersKey) {
		var o domain.Order
		if err := json.Unmarshal(item, &o); err != nil {
			continue
		}
		if o.ID == "" || !o.Status.Valid() {
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

func (r *OrderRepo) All(ctx context.Context) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.load(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save reemplaza la orden con el mismo ID o la agrega al final.
func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := r.load(ctx)
	replaced := false
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = *o
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, *o)
	}
	return writeKey(ctx, r.kv, OrdersKey, orders)
}
