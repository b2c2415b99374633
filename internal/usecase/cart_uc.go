package usecase

import (
	"context"
	"sync"

	"github.com/phenrril/munek/internal/domain"
)

// CartUC es el motor del carrito de un navegador. Todas las mutaciones
// reescriben la lista completa en storage; si la escritura falla el estado en
// memoria se conserva y se devuelve el error.
type CartUC struct {
	Catalog domain.CatalogLookup
	Repo    domain.CartRepo

	mu    sync.Mutex
	lines []domain.CartLine
	open  bool
}

// NewCartUC rehidrata el carrito desde storage.
func NewCartUC(ctx context.Context, catalog domain.CatalogLookup, repo domain.CartRepo) *CartUC {
	uc := &CartUC{Catalog: catalog, Repo: repo}
	uc.lines = repo.Load(ctx)
	return uc
}

// Add suma qty (acotada a [1,99]) a la línea de la variante, creándola si no
// existe, y abre el drawer. Devuelve false si la variante no existe o está agotada.
func (uc *CartUC) Add(ctx context.Context, variantID string, qty int) (bool, error) {
	hit, ok := uc.Catalog.Lookup(variantID)
	if !ok || !hit.Variant.InStock {
		return false, nil
	}
	q := domain.ClampQty(qty)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	merged := false
	for i := range uc.lines {
		if uc.lines[i].VariantID == variantID {
			uc.lines[i].Qty = domain.ClampQty(uc.lines[i].Qty + q)
			merged = true
			break
		}
	}
	if !merged {
		uc.lines = append(uc.lines, domain.CartLine{VariantID: variantID, Qty: q})
	}
	uc.open = true
	return true, uc.persist(ctx)
}

func (uc *CartUC) Remove(ctx context.Context, variantID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartLine, 0, len(uc.lines))
	for _, l := range uc.lines {
		if l.VariantID != variantID {
			out = append(out, l)
		}
	}
	uc.lines = out
	return uc.persist(ctx)
}

// SetQty pisa la cantidad de una línea existente; no crea líneas.
func (uc *CartUC) SetQty(ctx context.Context, variantID string, qty int) error {
	q := domain.ClampQty(qty)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.lines {
		if uc.lines[i].VariantID == variantID {
			uc.lines[i].Qty = q
		}
	}
	return uc.persist(ctx)
}

func (uc *CartUC) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = []domain.CartLine{}
	return uc.persist(ctx)
}

// Consume descuenta del carrito lo que se llevó una orden. Lo agregado
// después de armar la orden queda en el carrito.
func (uc *CartUC) Consume(ctx context.Context, items []domain.OrderItem) error {
	ordered := map[string]int{}
	for _, it := range items {
		ordered[it.VariantID] += it.Quantity
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartLine, 0, len(uc.lines))
	for _, l := range uc.lines {
		l.Qty -= ordered[l.VariantID]
		if l.Qty > 0 {
			out = append(out, l)
		}
	}
	uc.lines = out
	return uc.persist(ctx)
}

// Resync vuelve a leer storage; lo usa la suscripción a cambios de otra pestaña.
// Lee bajo uc.mu: una mutación concurrente persiste antes o después, nunca en el medio.
func (uc *CartUC) Resync(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = uc.Repo.Load(ctx)
}

func (uc *CartUC) Lines() []domain.CartLine {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartLine, len(uc.lines))
	copy(out, uc.lines)
	return out
}

func (uc *CartUC) TotalItems() int {
	return uc.Snapshot().TotalItems
}

func (uc *CartUC) Subtotal() int64 {
	return uc.Snapshot().Subtotal
}

func (uc *CartUC) DrawerOpen() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.open
}

func (uc *CartUC) SetDrawerOpen(open bool) {
	uc.mu.Lock()
	uc.open = open
	uc.mu.Unlock()
}

// Snapshot resuelve las líneas contra el catálogo. Las que ya no existen no
// suman al subtotal ni a los ítems.
func (uc *CartUC) Snapshot() domain.CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	v := domain.CartView{Lines: []domain.CartLineView{}, DrawerOpen: uc.open}
	for _, l := range uc.lines {
		hit, ok := uc.Catalog.Lookup(l.VariantID)
		if !ok {
			continue
		}
		total := hit.Variant.Price * int64(l.Qty)
		v.Lines = append(v.Lines, domain.CartLineView{CartLine: l, Product: hit.Product, Variant: hit.Variant, LineTotal: total})
		v.TotalItems += l.Qty
		v.Subtotal += total
	}
	return v
}

// OrderItems arma la foto de las líneas vigentes para crear una orden.
func (uc *CartUC) OrderItems() []domain.OrderItem {
	items := []domain.OrderItem{}
	for _, l := range uc.Snapshot().Lines {
		items = append(items, domain.OrderItem{
			ProductID:    l.Product.ID,
			VariantID:    l.Variant.ID,
			ProductName:  l.Product.Name,
			VariantLabel: l.Variant.Label,
			Price:        l.Variant.Price,
			Quantity:     l.Qty,
			Image:        l.Product.Image,
		})
	}
	return items
}

// persist requiere uc.mu.
func (uc *CartUC) persist(ctx context.Context) error {
	lines := make([]domain.CartLine, len(uc.lines))
	copy(lines, uc.lines)
	return uc.Repo.Save(ctx, lines)
}
