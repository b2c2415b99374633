package localstore

import (
	"context"
	"encoding/json"
	"math"

	"github.com/phenrril/munek/internal/domain"
)

type CartRepo struct {
	kv      domain.KVStore
	catalog domain.CatalogLookup
}

func NewCartRepo(kv domain.KVStore, catalog domain.CatalogLookup) *CartRepo {
	return &CartRepo{kv: kv, catalog: catalog}
}

func (r *CartRepo) Load(ctx context.Context) []domain.CartLine {
	raw, ok := readKey(ctx, r.kv, CartKey)
	if !ok {
		return []domain.CartLine{}
	}
	return DecodeCart(raw, r.catalog)
}

func (r *CartRepo) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return writeKey(ctx, r.kv, CartKey, lines)
}

// DecodeCart valida cada línea guardada: variantId string que exista en el
// catálogo y qty numérica (se trunca y se acota a [1,99]). Las líneas repetidas
// se fusionan.
func DecodeCart(raw []byte, catalog domain.CatalogLookup) []domain.CartLine {
	out := []domain.CartLine{}
	idx := map[string]int{}
	for _, item := range decodeList(raw, CartKey) {
		var f struct {
			VariantID any `json:"variantId"`
			Qty       any `json:"qty"`
		}
		if err := json.Unmarshal(item, &f); err != nil {
			continue
		}
		id, ok := f.VariantID.(string)
		if !ok {
			continue
		}
		q, ok := f.Qty.(float64)
		if !ok {
			continue
		}
		if _, found := catalog.Lookup(id); !found {
			continue
		}
		qty := clampFloat(q)
		if i, dup := idx[id]; dup {
			out[i].Qty = domain.ClampQty(out[i].Qty + qty)
			continue
		}
		idx[id] = len(out)
		out = append(out, domain.CartLine{VariantID: id, Qty: qty})
	}
	return out
}

func clampFloat(q float64) int {
	q = math.Floor(q)
	if q < domain.MinLineQty {
		return domain.MinLineQty
	}
	if q > domain.MaxLineQty {
		return domain.MaxLineQty
	}
	return int(q)
}
