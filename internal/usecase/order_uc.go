package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

const (
	DefaultFreeShippingThreshold int64 = 999
	DefaultShippingCost          int64 = 150
)

// notifyTimeout acota cada aviso de orden nueva.
const notifyTimeout = 30 * time.Second

type ShippingPolicy struct {
	FreeThreshold int64
	FlatFee       int64
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{FreeThreshold: DefaultFreeShippingThreshold, FlatFee: DefaultShippingCost}
}

// For devuelve el costo de envío para un subtotal.
func (p ShippingPolicy) For(subtotal int64) int64 {
	if subtotal >= p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

type OrderUC struct {
	Orders   domain.OrderRepo
	Shipping ShippingPolicy
	Notifier domain.OrderNotifier
	Now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// nextID genera ORD-<ms>, estrictamente creciente aunque dos órdenes caigan
// en el mismo milisegundo. Requiere uc.mu.
func (uc *OrderUC) nextID(ctx context.Context, at time.Time) string {
	if uc.lastID == 0 {
		for _, o := range uc.Orders.All(ctx) {
			if n, err := strconv.ParseInt(strings.TrimPrefix(o.ID, "ORD-"), 10, 64); err == nil && n > uc.lastID {
				uc.lastID = n
			}
		}
	}
	ms := at.UnixMilli()
	if ms <= uc.lastID {
		ms = uc.lastID + 1
	}
	uc.lastID = ms
	return "ORD-" + strconv.FormatInt(ms, 10)
}

func (uc *OrderUC) Create(ctx context.Context, user domain.User, in domain.NewOrder) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	addr := strings.TrimSpace(in.ShippingAddress)
	phone := strings.TrimSpace(in.Phone)
	if addr == "" || phone == "" {
		return nil, domain.NewValidationError("", "Por favor completa todos los campos")
	}
	var subtotal int64
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 || it.Price < 0 {
			return nil, domain.NewValidationError("items", fmt.Sprintf("ítem inválido: %s", it.VariantID))
		}
		subtotal += it.LineTotal()
		items = append(items, it)
	}
	shipping := uc.Shipping.For(subtotal)

	uc.mu.Lock()
	at := uc.now().UTC()
	o := &domain.Order{
		ID:              uc.nextID(ctx, at),
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Items:           items,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal + shipping,
		Status:          domain.OrderStatusPending,
		ShippingAddress: addr,
		Phone:           phone,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       at,
		UpdatedAt:       at,
	}
	err := uc.Orders.Save(ctx, o)
	uc.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("guardar orden: %w", err)
	}

	if uc.Notifier != nil {
		cp := *o
		go func() {
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()
			if err := uc.Notifier.OrderCreated(nctx, &cp); err != nil {
				log.Warn().Err(err).Str("order", cp.ID).Msg("notificación de orden falló")
			}
		}()
	}
	return o, nil
}

// UpdateStatus sólo toca status y updatedAt; los montos no cambian.
func (uc *OrderUC) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado inválido: %s", status))
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	o.UpdatedAt = uc.now().UTC()
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("guardar orden: %w", err)
	}
	return o, nil
}

func (uc *OrderUC) Get(ctx context.Context, id string) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) All(ctx context.Context) []domain.Order {
	return uc.Orders.All(ctx)
}

func (uc *OrderUC) ByUser(ctx context.Context, userID string) []domain.Order {
	out := []domain.Order{}
	for _, o := range uc.Orders.All(ctx) {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// FilterByStatus con status vacío devuelve todas, más nuevas primero.
func (uc *OrderUC) FilterByStatus(ctx context.Context, status domain.OrderStatus) []domain.Order {
	out := []domain.Order{}
	for _, o := range newestFirst(uc.Orders.All(ctx)) {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Overview resume las órdenes para el panel de admin. Las canceladas no suman ingresos.
func (uc *OrderUC) Overview(ctx context.Context, recent int) domain.OrdersOverview {
	orders := newestFirst(uc.Orders.All(ctx))
	ov := domain.OrdersOverview{TotalOrders: len(orders), Recent: []domain.Order{}}
	for _, o := range orders {
		if o.Status != domain.OrderStatusCancelled {
			ov.Revenue += o.Total
		}
		if o.Status == domain.OrderStatusPending {
			ov.Pending++
		}
	}
	if recent > len(orders) {
		recent = len(orders)
	}
	ov.Recent = append(ov.Recent, orders[:recent]...)
	return ov
}

// CustomerSummaries cuenta órdenes y gasto (sin canceladas) por cliente.
func (uc *OrderUC) CustomerSummaries(ctx context.Context, users []domain.User) []domain.CustomerSummary {
	orders := uc.Orders.All(ctx)
	out := make([]domain.CustomerSummary, 0, len(users))
	for _, u := range users {
		s := domain.CustomerSummary{User: u}
		for _, o := range orders {
			if o.UserID != u.ID {
				continue
			}
			s.Orders++
			if o.Status != domain.OrderStatusCancelled {
				s.TotalSpent += o.Total
			}
		}
		out = append(out, s)
	}
	return out
}

func newestFirst(orders []domain.Order) []domain.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}
