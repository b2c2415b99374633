package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const nsCookie = "munek_ns"

// sign devuelve "firma.payload" en base64 url.
func sign(key, payload []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write(payload)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return sig + "." + base64.RawURLEncoding.EncodeToString(payload)
}

func verify(key []byte, value string) ([]byte, bool) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	h := hmac.New(sha256.New, key)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil, false
	}
	return payload, true
}

// readNamespace devuelve el namespace del navegador si la cookie es válida.
func (s *Server) readNamespace(r *http.Request) string {
	c, err := r.Cookie(nsCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	payload, ok := verify(s.secret, c.Value)
	if !ok {
		return ""
	}
	ns := string(payload)
	if _, err := uuid.Parse(ns); err != nil {
		return ""
	}
	return ns
}

// namespace lee la cookie o emite una nueva. Un navegador nuevo arranca con
// carrito, sesión y chat vacíos.
func (s *Server) namespace(w http.ResponseWriter, r *http.Request) string {
	if ns := s.readNamespace(r); ns != "" {
		return ns
	}
	ns := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     nsCookie,
		Value:    sign(s.secret, []byte(ns)),
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return ns
}
