package domain

const (
	MinLineQty = 1
	MaxLineQty = 99
)

type CartLine struct {
	VariantID string `json:"variantId"`
	Qty       int    `json:"qty"`
}

// ClampQty lleva q al rango permitido para una línea de carrito.
func ClampQty(q int) int {
	if q < MinLineQty {
		return MinLineQty
	}
	if q > MaxLineQty {
		return MaxLineQty
	}
	return q
}

// CartLineView es una línea resuelta contra el catálogo.
type CartLineView struct {
	CartLine
	Product   Product `json:"product"`
	Variant   Variant `json:"variant"`
	LineTotal int64   `json:"lineTotal"`
}

type CartView struct {
	Lines      []CartLineView `json:"lines"`
	TotalItems int            `json:"totalItems"`
	Subtotal   int64          `json:"subtotal"`
	DrawerOpen bool           `json:"drawerOpen"`
}
