// Package localstore implementa los repositorios sobre un domain.KVStore.
// Cada repositorio es dueño de una sola clave y valida lo que lee: un valor
// corrupto o con otra forma se trata como ausente.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

const (
	CartKey    = "munek.cart.v1"
	SessionKey = "munek.auth"
	UsersKey   = "munek.users"
	OrdersKey  = "munek.orders"
)

func readKey(ctx context.Context, kv domain.KVStore, key string) ([]byte, bool) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("lectura de storage falló, se usa vacío")
		}
		return nil, false
	}
	return raw, true
}

func writeKey(ctx context.Context, kv domain.KVStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, b); err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}

// decodeList separa un arreglo JSON en elementos; cualquier otra cosa es lista vacía.
func decodeList(raw []byte, key string) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("valor corrupto en storage, se descarta")
		return nil
	}
	return items
}
