package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/adapters/repo/localstore"
	"github.com/phenrril/munek/internal/adapters/storage"
	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

// Storefronts guarda un Storefront por namespace de navegador. Carrito,
// sesión y chat viven bajo el prefijo del namespace; el directorio de
// usuarios y las órdenes son compartidos.
type Storefronts struct {
	KV      domain.KVStore
	Catalog *catalog.Catalog
	Users   domain.UserRepo
	Orders  *usecase.OrderUC
	LLM     domain.ChatCompleter

	AuthLatency  time.Duration
	ChatTimeout  time.Duration
	ChatAutoAdd  bool
	FreeShipping int64
	Now          func() time.Time

	mu   sync.Mutex
	byNS map[string]*usecase.Storefront
}

func (r *Storefronts) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Storefronts) Storefront(ctx context.Context, ns string) (*usecase.Storefront, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byNS == nil {
		r.byNS = map[string]*usecase.Storefront{}
	}
	if sf, ok := r.byNS[ns]; ok {
		sf.Touch(r.now())
		return sf, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sf := r.build(context.WithoutCancel(ctx), ns)
	sf.Touch(r.now())
	r.byNS[ns] = sf
	return sf, nil
}

func (r *Storefronts) build(ctx context.Context, ns string) *usecase.Storefront {
	kv := storage.WithPrefix(r.KV, storage.NamespaceKey(ns))
	cart := usecase.NewCartUC(ctx, r.Catalog, localstore.NewCartRepo(kv, r.Catalog))
	auth := usecase.NewAuthUC(ctx, r.Users, localstore.NewSessionRepo(kv), r.AuthLatency)
	assistant := &usecase.AssistantUC{
		Catalog:      r.Catalog,
		LLM:          r.LLM,
		Timeout:      r.ChatTimeout,
		FreeShipping: r.FreeShipping,
	}
	if r.ChatAutoAdd {
		assistant.Cart = cart
	}
	sf := &usecase.Storefront{
		Catalog:   r.Catalog,
		Cart:      cart,
		Auth:      auth,
		Orders:    r.Orders,
		Assistant: assistant,
	}
	// otra instancia sobre el mismo backend puede escribir estas claves
	bg := context.Background()
	sf.OnClose(kv.Watch(localstore.CartKey, func() { cart.Resync(bg) }))
	sf.OnClose(kv.Watch(localstore.SessionKey, func() { auth.Resync(bg) }))
	return sf
}

// Sweep descarta los storefronts sin actividad en ttl. Su estado queda en
// storage y se rehidrata en el próximo request.
func (r *Storefronts) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	r.mu.Lock()
	var stale []*usecase.Storefront
	for ns, sf := range r.byNS {
		if sf.LastSeen().Before(cutoff) && !sf.Assistant.Busy() {
			stale = append(stale, sf)
			delete(r.byNS, ns)
		}
	}
	r.mu.Unlock()
	for _, sf := range stale {
		sf.Close()
	}
	if len(stale) > 0 {
		log.Debug().Int("count", len(stale)).Msg("storefronts inactivos descartados")
	}
	return len(stale)
}

func (r *Storefronts) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byNS)
}

// Close libera las suscripciones de todos los storefronts.
func (r *Storefronts) Close() {
	r.mu.Lock()
	all := r.byNS
	r.byNS = nil
	r.mu.Unlock()
	for _, sf := range all {
		sf.Close()
	}
}
