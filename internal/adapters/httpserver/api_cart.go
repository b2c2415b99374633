package httpserver

import (
	"net/http"

	"github.com/phenrril/munek/internal/domain"
)

type cartTotals struct {
	Subtotal              int64 `json:"subtotal"`
	Shipping              int64 `json:"shipping"`
	Total                 int64 `json:"total"`
	FreeShippingRemaining int64 `json:"freeShippingRemaining"`
}

type cartResponse struct {
	domain.CartView
	Totals cartTotals `json:"totals"`
}

func (s *Server) cartTotals(v domain.CartView) cartTotals {
	ship := s.shipping.For(v.Subtotal)
	t := cartTotals{Subtotal: v.Subtotal, Shipping: ship, Total: v.Subtotal + ship}
	if rem := s.shipping.FreeThreshold - v.Subtotal; rem > 0 {
		t.FreeShippingRemaining = rem
	}
	return t
}

func (s *Server) cartResponse(v domain.CartView) cartResponse {
	return cartResponse{CartView: v, Totals: s.cartTotals(v)}
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := s.catalog.Products()
	switch {
	case q.Get("q") != "":
		products = s.catalog.Search(q.Get("q"))
	case q.Get("category") != "":
		products = s.catalog.ByCategory(domain.Category(q.Get("category")))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products, "categories": s.catalog.Categories()})
}

func (s *Server) apiProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Product(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p, "related": s.catalog.Related(p.ID, 4)})
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.cartResponse(sf.Cart.Snapshot()))
}

type cartItemRequest struct {
	VariantID string `json:"variantId"`
	Qty       int    `json:"qty"`
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}
	added, err := sf.Cart.Add(r.Context(), req.VariantID, req.Qty)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": added, "cart": s.cartResponse(sf.Cart.Snapshot())})
}

func (s *Server) apiCartSetQty(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := sf.Cart.SetQty(r.Context(), r.PathValue("variantId"), req.Qty); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.cartResponse(sf.Cart.Snapshot()))
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	if err := sf.Cart.Remove(r.Context(), r.PathValue("variantId")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.cartResponse(sf.Cart.Snapshot()))
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	if err := sf.Cart.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.cartResponse(sf.Cart.Snapshot()))
}

func (s *Server) apiCartDrawer(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sf.Cart.SetDrawerOpen(req.Open)
	writeJSON(w, http.StatusOK, s.cartResponse(sf.Cart.Snapshot()))
}
