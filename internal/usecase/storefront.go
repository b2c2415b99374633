package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

// Storefront agrupa el estado de un navegador: carrito, sesión y conversación.
// El directorio de usuarios y las órdenes se comparten entre todos.
type Storefront struct {
	Catalog   domain.CatalogReader
	Cart      *CartUC
	Auth      *AuthUC
	Orders    *OrderUC
	Assistant *AssistantUC

	mu       sync.Mutex
	lastSeen time.Time
	cancels  []func()
}

type CheckoutInput struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// Checkout convierte el carrito en una orden del usuario en sesión y saca del
// carrito lo que se ordenó.
// Dirección y teléfono vacíos se completan con los del perfil.
func (s *Storefront) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	user := s.Auth.Current()
	if user == nil {
		return nil, domain.ErrNoSession
	}
	items := s.Cart.OrderItems()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	addr := strings.TrimSpace(in.Address)
	if addr == "" {
		addr = user.Address
	}
	if city := strings.TrimSpace(in.City); city != "" && addr != "" {
		addr += ", " + city
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		phone = user.Phone
	}
	o, err := s.Orders.Create(ctx, *user, domain.NewOrder{Items: items, ShippingAddress: addr, Phone: phone, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	if err := s.Cart.Consume(ctx, o.Items); err != nil {
		log.Warn().Err(err).Str("order", o.ID).Msg("no se pudo vaciar el carrito tras la compra")
	}
	return o, nil
}

// Resync recarga carrito y sesión desde storage.
func (s *Storefront) Resync(ctx context.Context) {
	s.Cart.Resync(ctx)
	s.Auth.Resync(ctx)
}

// OnClose registra una función a ejecutar al descartar el storefront.
func (s *Storefront) OnClose(fn func()) {
	s.mu.Lock()
	s.cancels = append(s.cancels, fn)
	s.mu.Unlock()
}

func (s *Storefront) Close() {
	s.mu.Lock()
	fns := s.cancels
	s.cancels = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Storefront) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Storefront) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
