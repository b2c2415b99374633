package httpserver

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/adapters/notify"
	"github.com/phenrril/munek/internal/adapters/report/xlsx"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request, sf *usecase.Storefront) (*domain.User, bool) {
	u := sf.Auth.Current()
	if u == nil {
		writeError(w, r, domain.ErrNoSession)
		return nil, false
	}
	return u, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (*usecase.Storefront, bool) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return nil, false
	}
	u, ok := s.requireUser(w, r, sf)
	if !ok {
		return nil, false
	}
	if !u.IsAdmin() {
		writeError(w, r, domain.ErrForbidden)
		return nil, false
	}
	return sf, true
}

type checkoutResponse struct {
	Order       *domain.Order `json:"order"`
	WhatsAppURL string        `json:"whatsappUrl"`
	Redirect    string        `json:"redirect"`
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var in usecase.CheckoutInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := sf.Checkout(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("order", o.ID).Str("user", o.UserID).Int64("total", o.Total).Msg("orden creada")
	writeJSON(w, http.StatusCreated, checkoutResponse{
		Order:       o,
		WhatsAppURL: notify.WhatsAppURL(s.whatsapp, o),
		Redirect:    usecase.RouteDashboard,
	})
}

func (s *Server) apiMyOrders(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	u, ok := s.requireUser(w, r, sf)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": sf.Orders.ByUser(r.Context(), u.ID)})
}

func (s *Server) apiAdminOverview(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sf.Orders.Overview(r.Context(), 5))
}

func (s *Server) apiAdminOrders(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && status != "all" && !status.Valid() {
		writeError(w, r, domain.NewValidationError("status", "Estado inválido"))
		return
	}
	if status == "all" {
		status = ""
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": sf.Orders.FilterByStatus(r.Context(), status)})
}

func (s *Server) apiAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := sf.Orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) apiAdminExport(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := xlsx.WriteOrders(&buf, sf.Orders.FilterByStatus(r.Context(), "")); err != nil {
		writeError(w, r, err)
		return
	}
	name := "pedidos-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) apiAdminCustomers(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	writeJSON(w, http.StatusOK, map[string]any{"customers": sf.Orders.CustomerSummaries(ctx, sf.Auth.Clients(ctx))})
}

func (s *Server) apiAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	deleted, err := sf.Auth.DeleteUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
