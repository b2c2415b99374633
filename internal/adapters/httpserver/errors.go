package httpserver

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

type errorBody struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// writeError traduce los errores de dominio al status y mensaje que ve el usuario.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, domain.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Contraseña incorrecta", Field: "password"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorBody{Error: "Este correo ya está registrado", Field: "email"})
	case errors.Is(err, domain.ErrNoSession):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Inicia sesión para continuar", Redirect: loginRedirect(r)})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "Acceso restringido", Redirect: usecase.RouteDashboard})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Tu carrito está vacío"})
	case errors.Is(err, domain.ErrAssistantBusy):
		writeJSON(w, http.StatusConflict, errorBody{Error: "El asistente está respondiendo, espera un momento"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "No encontrado"})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", requestIDFrom(r.Context())).Msg("api")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Ocurrió un error, intenta de nuevo"})
	}
}

// loginRedirect apunta a /auth volviendo a la página desde la que se llamó.
func loginRedirect(r *http.Request) string {
	next := r.Header.Get("X-Return-To")
	if !safeNext(next) {
		return usecase.RouteAuth
	}
	return usecase.RouteAuth + "?next=" + url.QueryEscape(next)
}

// safeNext acepta sólo rutas locales.
func safeNext(next string) bool {
	return len(next) > 0 && next[0] == '/' && (len(next) == 1 || (next[1] != '/' && next[1] != '\\'))
}
