package localstore

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

type SessionRepo struct{ kv domain.KVStore }

func NewSessionRepo(kv domain.KVStore) *SessionRepo { return &SessionRepo{kv: kv} }

func (r *SessionRepo) Load(ctx context.Context) *domain.User {
	raw, ok := readKey(ctx, r.kv, SessionKey)
	if !ok {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		log.Warn().Err(err).Msg("sesión corrupta, se ignora")
		return nil
	}
	if !validUser(u) {
		return nil
	}
	return &u
}

func (r *SessionRepo) Save(ctx context.Context, u *domain.User) error {
	if u == nil {
		return r.Clear(ctx)
	}
	return writeKey(ctx, r.kv, SessionKey, u)
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, SessionKey)
}

func validUser(u domain.User) bool {
	return u.ID != "" && u.Email != "" && u.Role.Valid()
}
