package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleClient }

// User es el registro de sesión: nunca lleva contraseña.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRecord es la entrada del directorio mock. La contraseña se guarda en
// texto plano: no apto para producción.
type UserRecord struct {
	User
	Password string `json:"password,omitempty"`
}

type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
}

// ProfilePatch: los campos nil no se tocan.
type ProfilePatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
}
