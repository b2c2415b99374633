package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/munek/internal/domain"
)

const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// AuthUC es la autenticación mock: compara contraseñas en texto plano contra
// el directorio. Reproduce el comportamiento de la demo, no es seguro.
type AuthUC struct {
	Users   domain.UserRepo
	Session domain.SessionRepo
	// Latency simula la ida y vuelta a un servidor en login y registro.
	Latency time.Duration
	Now     func() time.Time
	NewID   func() string

	mu      sync.Mutex
	current *domain.User
}

func NewAuthUC(ctx context.Context, users domain.UserRepo, session domain.SessionRepo, latency time.Duration) *AuthUC {
	uc := &AuthUC{Users: users, Session: session, Latency: latency}
	uc.current = session.Load(ctx)
	return uc
}

func (uc *AuthUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *AuthUC) newID() string {
	if uc.NewID != nil {
		return uc.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "user-" + id.String()
}

func (uc *AuthUC) wait(ctx context.Context) error {
	if uc.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(uc.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Current devuelve una copia del usuario en sesión, o nil.
func (uc *AuthUC) Current() *domain.User {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return nil
	}
	u := *uc.current
	return &u
}

func (uc *AuthUC) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "Por favor completa todos los campos")
	}
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}
	rec, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("usuario no encontrado: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	// las cuentas creadas con Google no tienen contraseña local
	if rec.Password == "" || rec.Password != password {
		return nil, domain.ErrInvalidCredential
	}
	return uc.adopt(ctx, rec.User)
}

// ValidateRegistration aplica las reglas del formulario de alta.
func ValidateRegistration(r domain.Registration) error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" || strings.TrimSpace(r.Name) == "" {
		return domain.NewValidationError("", "Por favor completa todos los campos")
	}
	if !emailRe.MatchString(strings.TrimSpace(r.Email)) {
		return domain.NewValidationError("email", "Ingresa un correo válido")
	}
	if len([]rune(r.Password)) < minPasswordLen {
		return domain.NewValidationError("password", "La contraseña debe tener al menos 6 caracteres")
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		return domain.NewValidationError("confirmPassword", "Las contraseñas no coinciden")
	}
	return nil
}

func (uc *AuthUC) Register(ctx context.Context, r domain.Registration) (*domain.User, error) {
	if err := ValidateRegistration(r); err != nil {
		return nil, err
	}
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(r.Email))
	rec := &domain.UserRecord{
		User: domain.User{
			ID:        uc.newID(),
			Email:     email,
			Name:      strings.TrimSpace(r.Name),
			Role:      domain.RoleClient,
			Phone:     strings.TrimSpace(r.Phone),
			Address:   strings.TrimSpace(r.Address),
			CreatedAt: uc.now().UTC(),
		},
		Password: r.Password,
	}
	if err := uc.Users.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("guardar usuario: %w", err)
	}
	return uc.adopt(ctx, rec.User)
}

// LoginExternal inicia sesión con una identidad verificada por un proveedor
// (Google). Si el correo no existe se crea un cliente sin contraseña.
func (uc *AuthUC) LoginExternal(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email", "El proveedor no devolvió un correo")
	}
	rec, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		if strings.TrimSpace(name) == "" {
			name = email
		}
		rec = &domain.UserRecord{User: domain.User{ID: uc.newID(), Email: email, Name: strings.TrimSpace(name), Role: domain.RoleClient, CreatedAt: uc.now().UTC()}}
		err = uc.Users.Create(ctx, rec)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// otro request lo creó primero
			rec, err = uc.Users.FindByEmail(ctx, email)
		}
		if err != nil {
			return nil, fmt.Errorf("guardar usuario: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return uc.adopt(ctx, rec.User)
}

func (uc *AuthUC) adopt(ctx context.Context, u domain.User) (*domain.User, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.Session.Save(ctx, &u); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	uc.current = &u
	out := u
	return &out, nil
}

func (uc *AuthUC) Logout(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = nil
	return uc.Session.Clear(ctx)
}

// UpdateProfile aplica el patch a la sesión y a su entrada del directorio.
// Sin sesión no hace nada y devuelve nil.
func (uc *AuthUC) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return nil, nil
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.NewValidationError("name", "El nombre no puede quedar vacío")
	}
	updated := *uc.current
	patch.Apply(&updated)
	if err := uc.Session.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	uc.current = &updated

	rec, err := uc.Users.FindByID(ctx, updated.ID)
	if err == nil {
		patch.Apply(&rec.User)
		if err := uc.Users.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("guardar usuario: %w", err)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	out := updated
	return &out, nil
}

// DeleteAccount borra la cuenta propia y cierra la sesión. El admin semilla
// no se borra del directorio.
func (uc *AuthUC) DeleteAccount(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return domain.ErrNoSession
	}
	if !uc.current.IsAdmin() {
		if _, err := uc.Users.Delete(ctx, uc.current.ID); err != nil {
			return fmt.Errorf("borrar usuario: %w", err)
		}
	}
	uc.current = nil
	return uc.Session.Clear(ctx)
}

// DeleteUser es la herramienta de admin; devuelve false si no existe o es admin.
func (uc *AuthUC) DeleteUser(ctx context.Context, id string) (bool, error) {
	rec, err := uc.Users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if rec.IsAdmin() {
		return false, nil
	}
	return uc.Users.Delete(ctx, id)
}

// Clients devuelve los usuarios con rol cliente, sin contraseña.
func (uc *AuthUC) Clients(ctx context.Context) []domain.User {
	out := []domain.User{}
	for _, r := range uc.Users.All(ctx) {
		if r.Role == domain.RoleClient {
			out = append(out, r.User)
		}
	}
	return out
}

// Resync recarga la sesión desde storage.
// La lectura ocurre bajo uc.mu para no pisar una escritura más nueva.
func (uc *AuthUC) Resync(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = uc.Session.Load(ctx)
}
