package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phenrril/munek/internal/domain"
)

func TestResolveRoute(t *testing.T) {
	admin := &domain.User{ID: "admin-001", Role: domain.RoleAdmin}
	client := &domain.User{ID: "user-1", Role: domain.RoleClient}

	cases := []struct {
		name string
		path string
		user *domain.User
		want string
	}{
		{"home anónimo", "/", nil, "/"},
		{"producto", "/product/p-crea-01", nil, "/product/p-crea-01"},
		{"producto sin id", "/product/", nil, "/"},
		{"auth anónimo", "/auth", nil, "/auth"},
		{"auth cliente", "/auth", client, "/dashboard"},
		{"auth admin", "/auth", admin, "/admin"},
		{"checkout anónimo", "/checkout", nil, "/auth?next=%2Fcheckout"},
		{"checkout cliente", "/checkout", client, "/checkout"},
		{"dashboard anónimo", "/dashboard", nil, "/auth?next=%2Fdashboard"},
		{"dashboard cliente", "/dashboard", client, "/dashboard"},
		{"dashboard admin", "/dashboard", admin, "/admin"},
		{"admin anónimo", "/admin", nil, "/auth?next=%2Fadmin"},
		{"admin cliente", "/admin", client, "/dashboard"},
		{"admin", "/admin", admin, "/admin"},
		{"desconocida", "/nada", client, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveRoute(tc.path, tc.user))
		})
	}
}
