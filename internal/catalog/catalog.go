package catalog

import (
	"fmt"
	"strings"

	"github.com/phenrril/munek/internal/domain"
)

// Catalog es inmutable una vez construido; es seguro compartirlo entre goroutines.
type Catalog struct {
	products  []domain.Product
	byID      map[string]int
	byVariant map[string]domain.CatalogHit
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products:  make([]domain.Product, 0, len(products)),
		byID:      map[string]int{},
		byVariant: map[string]domain.CatalogHit{},
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("producto sin id: %q", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("producto duplicado: %s", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("producto %s: categoría inválida %q", p.ID, p.Category)
		}
		for _, v := range p.Variants {
			if v.ID == "" {
				return nil, fmt.Errorf("producto %s: variante sin id", p.ID)
			}
			if _, dup := c.byVariant[v.ID]; dup {
				return nil, fmt.Errorf("variante duplicada: %s", v.ID)
			}
			if v.Price <= 0 {
				return nil, fmt.Errorf("variante %s: precio inválido %d", v.ID, v.Price)
			}
			c.byVariant[v.ID] = domain.CatalogHit{Product: p, Variant: v}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default devuelve el catálogo de la tienda.
func Default() *Catalog {
	c, err := New(seedProducts())
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := c.products[i]
	return &p, nil
}

func (c *Catalog) Lookup(variantID string) (domain.CatalogHit, bool) {
	h, ok := c.byVariant[variantID]
	return h, ok
}

func (c *Catalog) Len() int { return len(c.products) }

// Categories devuelve las categorías con productos, en orden de aparición.
func (c *Catalog) Categories() []domain.Category {
	seen := map[domain.Category]bool{}
	out := []domain.Category{}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func (c *Catalog) ByCategory(cat domain.Category) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Search busca q (sin distinguir mayúsculas) en nombre, marca o categoría.
// Una consulta vacía no devuelve nada.
func (c *Catalog) Search(q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.Product{}
	if q == "" {
		return out
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) {
			out = append(out, p)
		}
	}
	return out
}

// Related devuelve hasta limit productos de la misma categoría, sin incluir el propio.
func (c *Catalog) Related(productID string, limit int) []domain.Product {
	out := []domain.Product{}
	i, ok := c.byID[productID]
	if !ok {
		return out
	}
	cat := c.products[i].Category
	for _, p := range c.products {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.Category == cat && p.ID != productID {
			out = append(out, p)
		}
	}
	return out
}
