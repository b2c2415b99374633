package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/munek/internal/adapters/repo/localstore"
	"github.com/phenrril/munek/internal/adapters/storage/memory"
	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "CHAT_TIMEOUT", "AUTH_LATENCY", "SHIPPING_COST", "CHAT_AUTO_ADD", "DB_DSN", "DB_NAME", "POSTGRES_DB"} {
		t.Setenv(k, "")
	}
	c := LoadConfig()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "localfs", c.StorageDriver)
	assert.Equal(t, 30*time.Second, c.ChatTimeout)
	assert.Equal(t, 500*time.Millisecond, c.AuthLatency)
	assert.Equal(t, int64(999), c.FreeShippingThreshold)
	assert.Equal(t, int64(150), c.ShippingCost)
	assert.False(t, c.ChatAutoAdd)
	assert.Contains(t, c.DatabaseDSN, "dbname=munek")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("CHAT_TIMEOUT", "5s")
	t.Setenv("AUTH_LATENCY", "nope")
	t.Setenv("SHIPPING_COST", "99")
	t.Setenv("CHAT_AUTO_ADD", "true")
	t.Setenv("DB_DSN", "postgres://x")
	c := LoadConfig()
	assert.Equal(t, "memory", c.StorageDriver)
	assert.Equal(t, 5*time.Second, c.ChatTimeout)
	assert.Equal(t, 500*time.Millisecond, c.AuthLatency)
	assert.Equal(t, int64(99), c.ShippingCost)
	assert.True(t, c.ChatAutoAdd)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
}

func TestNewAppMemory(t *testing.T) {
	a, err := NewApp(Config{StorageDriver: "memory", AppEnv: "production", FreeShippingThreshold: 999, ShippingCost: 150})
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.HTTPHandler())
	assert.Nil(t, a.OAuthConfig)
	assert.Nil(t, a.OrderUC.Notifier)
	assert.Equal(t, 5, a.Catalog.Len())
}

func TestNewAppUnknownDriver(t *testing.T) {
	_, err := NewApp(Config{StorageDriver: "redis"})
	assert.Error(t, err)
}

func newRegistry(kv *memory.Store, now *time.Time) *Storefronts {
	cat := catalog.Default()
	return &Storefronts{
		KV:      kv,
		Catalog: cat,
		Users:   localstore.NewUserRepo(kv),
		Orders:  &usecase.OrderUC{Orders: localstore.NewOrderRepo(kv), Shipping: usecase.DefaultShippingPolicy()},
		Now:     func() time.Time { return *now },
	}
}

func TestStorefrontsAreScopedByNamespace(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	reg := newRegistry(memory.New(), &now)

	a, err := reg.Storefront(ctx, "a")
	require.NoError(t, err)
	b, err := reg.Storefront(ctx, "b")
	require.NoError(t, err)
	again, err := reg.Storefront(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = a.Cart.Add(ctx, "v-crea-250", 2)
	require.NoError(t, err)
	assert.Empty(t, b.Cart.Lines())

	// directorio compartido: lo que registra a lo ve b
	_, err = a.Auth.Register(ctx, domain.Registration{Email: "eva@correo.com", Password: "secreto1", Name: "Eva"})
	require.NoError(t, err)
	assert.Nil(t, b.Auth.Current())
	_, err = b.Auth.Login(ctx, "eva@correo.com", "secreto1")
	require.NoError(t, err)
	assert.Same(t, a.Orders, b.Orders)
}

func TestSweepRehydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	reg := newRegistry(memory.New(), &now)

	sf, err := reg.Storefront(ctx, "a")
	require.NoError(t, err)
	_, err = sf.Cart.Add(ctx, "v-bcaa-30", 3)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 0, reg.Sweep(30*time.Minute))
	now = now.Add(31 * time.Minute)
	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 0, reg.Len())

	back, err := reg.Storefront(ctx, "a")
	require.NoError(t, err)
	assert.NotSame(t, sf, back)
	assert.Equal(t, 3, back.Cart.TotalItems())
}

func TestStorefrontsShareBackendChanges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	kv := memory.New()
	one := newRegistry(kv, &now)
	two := newRegistry(kv, &now)

	a, err := one.Storefront(ctx, "tab")
	require.NoError(t, err)
	b, err := two.Storefront(ctx, "tab")
	require.NoError(t, err)

	_, err = a.Cart.Add(ctx, "v-mass-3lb", 1)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return b.Cart.TotalItems() == 1 }, time.Second, 5*time.Millisecond)

	one.Close()
	two.Close()
}
