package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phenrril/munek/internal/adapters/repo/localstore"
	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
)

// shrinkingCatalog simula variantes retiradas del catálogo.
type shrinkingCatalog struct {
	*catalog.Catalog
	mu      sync.Mutex
	removed map[string]bool
}

func newShrinkingCatalog() *shrinkingCatalog {
	return &shrinkingCatalog{Catalog: catalog.Default(), removed: map[string]bool{}}
}

func (c *shrinkingCatalog) Remove(id string) {
	c.mu.Lock()
	c.removed[id] = true
	c.mu.Unlock()
}

func (c *shrinkingCatalog) Lookup(id string) (domain.CatalogHit, bool) {
	c.mu.Lock()
	gone := c.removed[id]
	c.mu.Unlock()
	if gone {
		return domain.CatalogHit{}, false
	}
	return c.Catalog.Lookup(id)
}

type brokenWrites struct{ domain.KVStore }

func (brokenWrites) Put(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func newCart(t *testing.T, kv domain.KVStore) *CartUC {
	t.Helper()
	cat := catalog.Default()
	return NewCartUC(context.Background(), cat, localstore.NewCartRepo(kv, cat))
}

func newAuth(t *testing.T, kv domain.KVStore) *AuthUC {
	t.Helper()
	uc := NewAuthUC(context.Background(), localstore.NewUserRepo(kv), localstore.NewSessionRepo(kv), 0)
	uc.Now = fixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	return uc
}

func newOrders(kv domain.KVStore, now func() time.Time) *OrderUC {
	return &OrderUC{Orders: localstore.NewOrderRepo(kv), Shipping: DefaultShippingPolicy(), Now: now}
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
