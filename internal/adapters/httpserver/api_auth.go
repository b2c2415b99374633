package httpserver

import (
	"errors"
	"net/http"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

type sessionResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect,omitempty"`
}

func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: sf.Auth.Current()})
}

// afterLogin elige el destino: next si es local, si no el panel del rol.
func afterLogin(u *domain.User, next string) string {
	if safeNext(next) {
		if dest := usecase.ResolveRoute(next, u); dest == next {
			return next
		}
	}
	return usecase.HomeFor(u)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Next     string `json:"next"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := sf.Auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Usuario no encontrado", Field: "email"})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: u, Redirect: afterLogin(u, req.Next)})
}

func (s *Server) apiRegister(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req struct {
		domain.Registration
		Next string `json:"next"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := sf.Auth.Register(r.Context(), req.Registration)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: u, Redirect: afterLogin(u, req.Next)})
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	if err := sf.Auth.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Redirect: usecase.RouteHome})
}

func (s *Server) apiUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	if sf.Auth.Current() == nil {
		writeError(w, r, domain.ErrNoSession)
		return
	}
	var patch domain.ProfilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := sf.Auth.UpdateProfile(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: u})
}

func (s *Server) apiDeleteAccount(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	if err := sf.Auth.DeleteAccount(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Redirect: usecase.RouteHome})
}
