package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/phenrril/munek/internal/usecase"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth no configurado", http.StatusNotFound)
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true, Secure: s.secureCookies})
	if next := r.URL.Query().Get("next"); safeNext(next) {
		http.SetCookie(w, &http.Cookie{Name: "oauth_next", Value: next, Path: "/", MaxAge: 300, HttpOnly: true, Secure: s.secureCookies})
	}
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth no configurado", http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie("oauth_state")
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	tok, err := s.oauthCfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("exchange oauth")
		http.Error(w, "oauth", http.StatusBadRequest)
		return
	}
	resp, err := s.oauthCfg.Client(r.Context(), tok).Get(googleUserInfoURL)
	if err != nil {
		log.Error().Err(err).Msg("userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" || !info.EmailVerified {
		http.Error(w, "email", http.StatusBadRequest)
		return
	}

	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	u, err := sf.Auth.LoginExternal(r.Context(), info.Email, info.Name)
	if err != nil {
		log.Error().Err(err).Str("email", info.Email).Msg("login google")
		http.Redirect(w, r, usecase.RouteAuth, http.StatusFound)
		return
	}
	next := ""
	if c, _ := r.Cookie("oauth_next"); c != nil {
		next = c.Value
		http.SetCookie(w, &http.Cookie{Name: "oauth_next", Value: "", Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, afterLogin(u, next), http.StatusFound)
}
