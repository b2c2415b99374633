package localstore

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

// DefaultAdmin es la cuenta administradora que siempre existe en el directorio.
func DefaultAdmin() domain.UserRecord {
	return domain.UserRecord{
		User: domain.User{
			ID:        "admin-001",
			Email:     "admin@munek.com",
			Name:      "Administrador",
			Role:      domain.RoleAdmin,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Password: "admin123",
	}
}

// UserRepo es el directorio mock. Guarda contraseñas en texto plano.
type UserRepo struct {
	kv domain.KVStore
	mu sync.Mutex
}

func NewUserRepo(kv domain.KVStore) *UserRepo { return &UserRepo{kv: kv} }

// load lee el directorio y reinserta al admin si falta. Requiere r.mu.
func (r *UserRepo) load(ctx context.Context) []domain.UserRecord {
	users := []domain.UserRecord{}
	if raw, ok := readKey(ctx, r.kv, UsersKey); ok {
		for _, item := range decodeList(raw, UsersKey) {
			var u domain.UserRecord
			if err := json.Unmarshal(item, &u); err != nil || !validUser(u.User) {
				continue
			}
			users = append(users, u)
		}
	}
	admin := DefaultAdmin()
	if indexByEmail(users, admin.Email) < 0 {
		users = append([]domain.UserRecord{admin}, users...)
		if err := writeKey(ctx, r.kv, UsersKey, users); err != nil {
			log.Warn().Err(err).Msg("no se pudo persistir el admin por defecto")
		}
	}
	return users
}

func (r *UserRepo) All(ctx context.Context) []domain.UserRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load(ctx)
	i := indexByEmail(users, email)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	u := users[i]
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.load(ctx) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save inserta o reemplaza por ID.
func (r *UserRepo) Save(ctx context.Context, u *domain.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load(ctx)
	replaced := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, *u)
	}
	return writeKey(ctx, r.kv, UsersKey, users)
}

// Create agrega un usuario nuevo. El chequeo de correo duplicado y el alta
// ocurren bajo el mismo lock.
func (r *UserRepo) Create(ctx context.Context, u *domain.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load(ctx)
	if indexByEmail(users, u.Email) >= 0 {
		return domain.ErrDuplicateEmail
	}
	return writeKey(ctx, r.kv, UsersKey, append(users, *u))
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load(ctx)
	out := users[:0]
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		out = append(out, u)
	}
	if !found {
		return false, nil
	}
	if err := writeKey(ctx, r.kv, UsersKey, out); err != nil {
		return true, err
	}
	return true, nil
}

func indexByEmail(users []domain.UserRecord, email string) int {
	e := strings.TrimSpace(email)
	for i, u := range users {
		if strings.EqualFold(u.Email, e) {
			return i
		}
	}
	return -1
}
