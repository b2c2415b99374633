package httpserver

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

// Storefronts resuelve el estado de un navegador a partir de su namespace.
type Storefronts interface {
	Storefront(ctx context.Context, ns string) (*usecase.Storefront, error)
}

type Config struct {
	Templates      *template.Template
	Catalog        *catalog.Catalog
	Storefronts    Storefronts
	OAuth          *oauth2.Config
	SessionKey     string
	WhatsAppNumber string
	Shipping       usecase.ShippingPolicy
	SecureCookies  bool
}

type Server struct {
	mux         *http.ServeMux
	tmpl        *template.Template
	catalog     *catalog.Catalog
	storefronts Storefronts
	oauthCfg    *oauth2.Config
	shipping    usecase.ShippingPolicy
	whatsapp    string

	secret        []byte
	secureCookies bool
}

func New(cfg Config) http.Handler {
	s := &Server{
		mux:           http.NewServeMux(),
		tmpl:          cfg.Templates,
		catalog:       cfg.Catalog,
		storefronts:   cfg.Storefronts,
		oauthCfg:      cfg.OAuth,
		shipping:      cfg.Shipping,
		whatsapp:      cfg.WhatsAppNumber,
		secret:        secretKey(cfg.SessionKey),
		secureCookies: cfg.SecureCookies,
	}
	if s.shipping == (usecase.ShippingPolicy{}) {
		s.shipping = usecase.DefaultShippingPolicy()
	}
	s.routes()
	return Chain(s.mux,
		SecurityHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// páginas
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /product/{id}", s.handleProduct)
	s.mux.HandleFunc("GET /checkout", s.handleCheckout)
	s.mux.HandleFunc("GET /auth", s.handleAuth)
	s.mux.HandleFunc("GET /dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /admin", s.handleAdmin)
	s.mux.HandleFunc("/", s.handleUnknown)

	// catálogo
	s.mux.HandleFunc("GET /api/products", s.apiProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.apiProduct)

	// carrito
	s.mux.HandleFunc("GET /api/cart", s.apiCart)
	s.mux.HandleFunc("POST /api/cart/items", s.apiCartAdd)
	s.mux.HandleFunc("PATCH /api/cart/items/{variantId}", s.apiCartSetQty)
	s.mux.HandleFunc("DELETE /api/cart/items/{variantId}", s.apiCartRemove)
	s.mux.HandleFunc("DELETE /api/cart", s.apiCartClear)
	s.mux.HandleFunc("POST /api/cart/drawer", s.apiCartDrawer)

	// auth y perfil
	s.mux.HandleFunc("GET /api/session", s.apiSession)
	s.mux.HandleFunc("POST /api/auth/login", s.apiLogin)
	s.mux.HandleFunc("POST /api/auth/register", s.apiRegister)
	s.mux.HandleFunc("POST /api/auth/logout", s.apiLogout)
	s.mux.HandleFunc("PATCH /api/profile", s.apiUpdateProfile)
	s.mux.HandleFunc("DELETE /api/profile", s.apiDeleteAccount)
	s.mux.HandleFunc("GET /auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)

	// órdenes
	s.mux.HandleFunc("POST /api/checkout", s.apiCheckout)
	s.mux.HandleFunc("GET /api/orders", s.apiMyOrders)

	// admin
	s.mux.HandleFunc("GET /api/admin/overview", s.apiAdminOverview)
	s.mux.HandleFunc("GET /api/admin/orders", s.apiAdminOrders)
	s.mux.HandleFunc("PATCH /api/admin/orders/{id}", s.apiAdminOrderStatus)
	s.mux.HandleFunc("GET /api/admin/orders.xlsx", s.apiAdminExport)
	s.mux.HandleFunc("GET /api/admin/customers", s.apiAdminCustomers)
	s.mux.HandleFunc("DELETE /api/admin/users/{id}", s.apiAdminDeleteUser)

	// asistente
	s.mux.HandleFunc("GET /api/chat", s.apiChat)
	s.mux.HandleFunc("POST /api/chat", s.apiChatSend)
	s.mux.HandleFunc("DELETE /api/chat", s.apiChatReset)
}

// storefront devuelve el estado del navegador que hace el request.
func (s *Server) storefront(w http.ResponseWriter, r *http.Request) (*usecase.Storefront, bool) {
	ns := s.namespace(w, r)
	sf, err := s.storefronts.Storefront(r.Context(), ns)
	if err != nil {
		log.Error().Err(err).Str("ns", ns).Msg("storefront")
		http.Error(w, "storefront", http.StatusInternalServerError)
		return nil, false
	}
	return sf, true
}

func (s *Server) render(w http.ResponseWriter, status int, name string, sf *usecase.Storefront, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if sf != nil {
		if _, ok := data["User"]; !ok {
			data["User"] = sf.Auth.Current()
		}
		data["Cart"] = sf.Cart.Snapshot()
	}
	data["Categories"] = s.catalog.Categories()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

const maxBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("", "Solicitud inválida")
	}
	return nil
}

func secretKey(k string) []byte {
	if strings.TrimSpace(k) == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}
