package httpserver

import (
	"net/http"
	"strings"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

// gate redirige si el usuario no puede ver la ruta pedida.
func (s *Server) gate(w http.ResponseWriter, r *http.Request, sf *usecase.Storefront) bool {
	dest := usecase.ResolveRoute(r.URL.Path, sf.Auth.Current())
	if dest != r.URL.Path {
		http.Redirect(w, r, dest, http.StatusFound)
		return false
	}
	return true
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "No encontrado"})
		return
	}
	http.Redirect(w, r, usecase.ResolveRoute(r.URL.Path, nil), http.StatusFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	category := domain.Category(r.URL.Query().Get("category"))

	products := s.catalog.Products()
	switch {
	case q != "":
		products = s.catalog.Search(q)
	case category != "":
		products = s.catalog.ByCategory(category)
	}
	s.render(w, http.StatusOK, "home.html", sf, map[string]any{
		"Products": products,
		"Query":    q,
		"Category": string(category),
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	p, err := s.catalog.Product(r.PathValue("id"))
	if err != nil {
		s.render(w, http.StatusNotFound, "product.html", sf, map[string]any{"NotFound": true})
		return
	}
	s.render(w, http.StatusOK, "product.html", sf, map[string]any{
		"Product": p,
		"Related": s.catalog.Related(p.ID, 4),
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok || !s.gate(w, r, sf) {
		return
	}
	s.render(w, http.StatusOK, "checkout.html", sf, map[string]any{"Totals": s.cartTotals(sf.Cart.Snapshot())})
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok || !s.gate(w, r, sf) {
		return
	}
	next := r.URL.Query().Get("next")
	if !safeNext(next) {
		next = ""
	}
	s.render(w, http.StatusOK, "auth.html", sf, map[string]any{
		"Next":   next,
		"Google": s.oauthCfg != nil,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok || !s.gate(w, r, sf) {
		return
	}
	u := sf.Auth.Current()
	s.render(w, http.StatusOK, "dashboard.html", sf, map[string]any{
		"User":   u,
		"Orders": sf.Orders.ByUser(r.Context(), u.ID),
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok || !s.gate(w, r, sf) {
		return
	}
	ctx := r.Context()
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		status = ""
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	products := s.catalog.Products()
	if q != "" {
		products = s.catalog.Search(q)
	}
	s.render(w, http.StatusOK, "admin.html", sf, map[string]any{
		"Overview":  sf.Orders.Overview(ctx, 5),
		"Orders":    sf.Orders.FilterByStatus(ctx, status),
		"Status":    string(status),
		"Statuses":  domain.OrderStatuses,
		"Customers": sf.Orders.CustomerSummaries(ctx, sf.Auth.Clients(ctx)),
		"Products":  products,
		"Query":     q,
	})
}
