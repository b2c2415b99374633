package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/munek/internal/adapters/httpserver"
	"github.com/phenrril/munek/internal/adapters/report/xlsx"
	"github.com/phenrril/munek/internal/adapters/repo/localstore"
	"github.com/phenrril/munek/internal/adapters/storage/memory"
	"github.com/phenrril/munek/internal/app"
	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
	"github.com/phenrril/munek/internal/views"
)

type cannedLLM string

func (c cannedLLM) Complete(context.Context, []domain.ChatMessage) (string, error) {
	return string(c), nil
}

func newTestServer(t *testing.T, llm domain.ChatCompleter) *httptest.Server {
	t.Helper()
	tmpl, err := views.Parse()
	require.NoError(t, err)
	kv := memory.New()
	cat := catalog.Default()
	reg := &app.Storefronts{
		KV:          kv,
		Catalog:     cat,
		Users:       localstore.NewUserRepo(kv),
		Orders:      &usecase.OrderUC{Orders: localstore.NewOrderRepo(kv), Shipping: usecase.DefaultShippingPolicy()},
		LLM:         llm,
		ChatAutoAdd: true,
	}
	srv := httptest.NewServer(httpserver.New(httpserver.Config{
		Templates:      tmpl,
		Catalog:        cat,
		Storefronts:    reg,
		SessionKey:     "test-key",
		WhatsAppNumber: "5210000000",
	}))
	t.Cleanup(func() {
		srv.Close()
		reg.Close()
	})
	return srv
}

type browser struct {
	t    *testing.T
	base string
	c    *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: srv.URL, c: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func (b *browser) do(method, path string, body any) (*http.Response, map[string]any) {
	b.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, b.base+path, rd)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := b.c.Do(req)
	require.NoError(b.t, err)
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	out := map[string]any{}
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(b.t, json.Unmarshal(raw, &out), string(raw))
	} else {
		out["body"] = string(raw)
	}
	return res, out
}

func (b *browser) login(email, password string) map[string]any {
	res, out := b.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(b.t, http.StatusOK, res.StatusCode, out)
	return out
}

func TestHomeRendersCatalogAndIssuesNamespace(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)

	res, out := b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	html := out["body"].(string)
	assert.Contains(t, html, "Whey Protein Isolate 90")
	assert.Contains(t, html, "Desde $349")
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	var ns *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "munek_ns" {
			ns = c
		}
	}
	require.NotNil(t, ns)
	assert.True(t, ns.HttpOnly)

	res, out = b.do(http.MethodGet, "/?q=creatina", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, out["body"], "Creatina Monohidratada")
	assert.NotContains(t, out["body"], "Mass Gainer")
}

func TestProductPage(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)

	res, out := b.do(http.MethodGet, "/product/p-pre-01", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, out["body"], "Pre-Entreno Clean Focus")
	assert.Contains(t, out["body"], "Agotado")

	res, out = b.do(http.MethodGet, "/product/nada", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, out["body"], "Producto no encontrado")
}

func TestPageGating(t *testing.T) {
	srv := newTestServer(t, nil)
	anon := newBrowser(t, srv)

	for path, want := range map[string]string{
		"/checkout":  "/auth?next=%2Fcheckout",
		"/dashboard": "/auth?next=%2Fdashboard",
		"/admin":     "/auth?next=%2Fadmin",
		"/nada":      "/",
	} {
		res, _ := anon.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, res.StatusCode, path)
		assert.Equal(t, want, res.Header.Get("Location"), path)
	}
	res, _ := anon.do(http.MethodGet, "/auth", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	admin := newBrowser(t, srv)
	out := admin.login("ADMIN@munek.com", "admin123")
	assert.Equal(t, "/admin", out["redirect"])
	res, _ = admin.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, "/admin", res.Header.Get("Location"))
	res, _ = admin.do(http.MethodGet, "/auth", nil)
	assert.Equal(t, "/admin", res.Header.Get("Location"))
	res, body := admin.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body["body"], "Panel de administración")

	client := newBrowser(t, srv)
	res, out = client.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "ana@correo.com", "password": "secreto1", "confirmPassword": "secreto1", "name": "Ana", "next": "/checkout",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)
	assert.Equal(t, "/checkout", out["redirect"])
	res, _ = client.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, "/dashboard", res.Header.Get("Location"))
	res, _ = client.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCartIsPerBrowser(t *testing.T) {
	srv := newTestServer(t, nil)
	one := newBrowser(t, srv)
	two := newBrowser(t, srv)

	res, out := one.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-crea-500", "qty": 2})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, out["added"])

	res, out = one.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-pre-30-serv-u"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, out["added"])

	_, out = one.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, float64(2), out["totalItems"])
	totals := out["totals"].(map[string]any)
	assert.Equal(t, float64(1098), totals["subtotal"])
	assert.Equal(t, float64(0), totals["shipping"])
	assert.Equal(t, float64(1098), totals["total"])

	_, out = two.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, float64(0), out["totalItems"])

	res, out = one.do(http.MethodPatch, "/api/cart/items/v-crea-500", map[string]any{"qty": 500})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(99), out["totalItems"])

	res, out = one.do(http.MethodDelete, "/api/cart/items/v-crea-500", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(0), out["totalItems"])
}

func TestTamperedNamespaceCookieIsReplaced(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)
	_, _ = b.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-bcaa-30", "qty": 1})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "munek_ns", Value: "forged.value"})
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, float64(0), out["totalItems"])
	assert.NotEmpty(t, res.Cookies())
}

func TestLoginErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)

	res, out := b.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nadie@correo.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Usuario no encontrado", out["error"])

	res, out = b.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@munek.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Contraseña incorrecta", out["error"])

	res, out = b.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Por favor completa todos los campos", out["error"])

	_, out = b.do(http.MethodGet, "/api/session", nil)
	assert.Nil(t, out["user"])

	res, out = b.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "Admin@Munek.com", "password": "secreto1", "name": "X"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Este correo ya está registrado", out["error"])
}

func TestCheckoutFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)

	_, _ = b.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-bcaa-30", "qty": 1})
	res, out := b.do(http.MethodPost, "/api/checkout", map[string]string{"address": "Calle 1", "phone": "246"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "/auth", out["redirect"])

	res, out = b.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "leo@correo.com", "password": "secreto1", "name": "Leo"})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)

	res, out = b.do(http.MethodPost, "/api/checkout", map[string]string{"address": "Calle 1", "city": "Zacatelco", "phone": "246"})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)
	order := out["order"].(map[string]any)
	assert.Equal(t, float64(449), order["subtotal"])
	assert.Equal(t, float64(150), order["shipping"])
	assert.Equal(t, float64(599), order["total"])
	assert.Equal(t, "pending", order["status"])
	assert.True(t, strings.HasPrefix(out["whatsappUrl"].(string), "https://wa.me/5210000000?text="))

	_, out = b.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, float64(0), out["totalItems"])

	_, out = b.do(http.MethodGet, "/api/orders", nil)
	assert.Len(t, out["orders"], 1)

	res, out = b.do(http.MethodPost, "/api/checkout", map[string]string{"address": "Calle 1", "phone": "246"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Tu carrito está vacío", out["error"])

	res, out = b.do(http.MethodGet, "/api/admin/overview", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "/dashboard", out["redirect"])
}

func TestAdminAPI(t *testing.T) {
	srv := newTestServer(t, nil)
	client := newBrowser(t, srv)
	res, out := client.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "mia@correo.com", "password": "secreto1", "name": "Mía", "phone": "246", "address": "Centro",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)
	_, _ = client.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-whey-5lb-fresa", "qty": 1})
	res, out = client.do(http.MethodPost, "/api/checkout", map[string]string{})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)
	orderID := out["order"].(map[string]any)["id"].(string)
	userID := out["order"].(map[string]any)["userId"].(string)

	admin := newBrowser(t, srv)
	admin.login("admin@munek.com", "admin123")

	_, out = admin.do(http.MethodGet, "/api/admin/overview", nil)
	assert.Equal(t, float64(1999), out["revenue"])
	assert.Equal(t, float64(1), out["pending"])

	res, out = admin.do(http.MethodPatch, "/api/admin/orders/"+orderID, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, res.StatusCode, out)
	assert.Equal(t, "shipped", out["status"])
	assert.Equal(t, float64(1999), out["total"])

	res, out = admin.do(http.MethodPatch, "/api/admin/orders/"+orderID, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, out)
	res, _ = admin.do(http.MethodPatch, "/api/admin/orders/ORD-1", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	_, out = admin.do(http.MethodGet, "/api/admin/orders?status=shipped", nil)
	assert.Len(t, out["orders"], 1)
	_, out = admin.do(http.MethodGet, "/api/admin/orders?status=pending", nil)
	assert.Len(t, out["orders"], 0)

	_, out = admin.do(http.MethodGet, "/api/admin/customers", nil)
	customers := out["customers"].([]any)
	require.Len(t, customers, 1)

	res, _ = admin.do(http.MethodGet, "/api/admin/orders.xlsx", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, xlsx.ContentType, res.Header.Get("Content-Type"))

	res, _ = admin.do(http.MethodDelete, "/api/admin/users/admin-001", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res, _ = admin.do(http.MethodDelete, "/api/admin/users/"+userID, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestChatAddsToCart(t *testing.T) {
	reply := "¡Listo! 💪\n```json\n{\"action\": \"add_to_cart\", \"variantId\": \"v-mass-6lb\"}\n```"
	srv := newTestServer(t, cannedLLM(reply))
	b := newBrowser(t, srv)

	_, out := b.do(http.MethodGet, "/api/chat", nil)
	assert.Len(t, out["messages"], 1)

	res, out := b.do(http.MethodPost, "/api/chat", map[string]string{"message": "quiero ganar masa"})
	require.Equal(t, http.StatusOK, res.StatusCode, out)
	assert.Equal(t, "¡Listo! 💪", out["text"])
	assert.Len(t, out["actions"], 1)
	assert.Equal(t, float64(1), out["cart"].(map[string]any)["totalItems"])

	res, out = b.do(http.MethodPost, "/api/chat", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Escribe un mensaje", out["error"])

	_, out = b.do(http.MethodDelete, "/api/chat", nil)
	assert.Len(t, out["messages"], 1)
}

func TestUnknownAPI(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)
	res, out := b.do(http.MethodGet, "/api/nada", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "No encontrado", out["error"])

	res, _ = b.do(http.MethodGet, "/auth/google/login", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPagesReachChatAndCartLineEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	b := newBrowser(t, srv)

	res, out := b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	html := out["body"].(string)
	assert.Contains(t, html, `id="chat-form"`)
	assert.Contains(t, html, `api('POST', '/api/chat'`)
	assert.Contains(t, html, `'Agregar ' + a.productName`)
	assert.Contains(t, html, "send.disabled = busy")

	res, out = b.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "eva@correo.com", "password": "secreto1", "name": "Eva",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, out)
	res, _ = b.do(http.MethodPost, "/api/cart/items", map[string]any{"variantId": "v-crea-500", "qty": 2})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, out = b.do(http.MethodGet, "/checkout", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	html = out["body"].(string)
	assert.Contains(t, html, `data-variant="v-crea-500"`)
	assert.Contains(t, html, `api('PATCH', '/api/cart/items/'`)
	assert.Contains(t, html, `api('DELETE', '/api/cart/items/'`)

	res, out = b.do(http.MethodPatch, "/api/cart/items/v-crea-500", map[string]int{"qty": 3})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(3), out["totalItems"])
	res, out = b.do(http.MethodDelete, "/api/cart/items/v-crea-500", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(0), out["totalItems"])
}
