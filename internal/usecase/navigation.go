package usecase

import (
	"net/url"
	"strings"

	"github.com/phenrril/munek/internal/domain"
)

const (
	RouteHome      = "/"
	RouteProduct   = "/product/"
	RouteCheckout  = "/checkout"
	RouteAuth      = "/auth"
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/admin"
)

// ResolveRoute decide a dónde debe ir un usuario que pide path. Devuelve
// path si puede verlo, o el destino de la redirección.
func ResolveRoute(path string, user *domain.User) string {
	switch {
	case path == RouteHome, strings.HasPrefix(path, RouteProduct) && len(path) > len(RouteProduct):
		return path
	case path == RouteAuth:
		if user != nil {
			return HomeFor(user)
		}
		return path
	case path == RouteCheckout:
		if user == nil {
			return authRedirect(path)
		}
		return path
	case path == RouteDashboard:
		if user == nil {
			return authRedirect(path)
		}
		if user.IsAdmin() {
			return RouteAdmin
		}
		return path
	case path == RouteAdmin:
		if user == nil {
			return authRedirect(path)
		}
		if !user.IsAdmin() {
			return RouteDashboard
		}
		return path
	default:
		return RouteHome
	}
}

// HomeFor es el panel de cada rol.
func HomeFor(user *domain.User) string {
	if user != nil && user.IsAdmin() {
		return RouteAdmin
	}
	return RouteDashboard
}

func authRedirect(from string) string {
	return RouteAuth + "?next=" + url.QueryEscape(from)
}
