// Package storage agrupa los backends clave/valor que reemplazan al local storage.
package storage

import (
	"context"

	"github.com/phenrril/munek/internal/domain"
)

// Prefixed aísla un espacio de nombres (un navegador) dentro de un backend compartido.
type Prefixed struct {
	inner  domain.KVStore
	prefix string
}

func WithPrefix(inner domain.KVStore, prefix string) *Prefixed {
	return &Prefixed{inner: inner, prefix: prefix}
}

func (p *Prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.inner.Put(ctx, p.prefix+key, value)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

// Watch delega en el backend si soporta notificaciones; si no, no hace nada.
func (p *Prefixed) Watch(key string, fn func()) func() {
	if w, ok := p.inner.(domain.KVWatcher); ok {
		return w.Watch(p.prefix+key, fn)
	}
	return func() {}
}

// NamespaceKey arma el prefijo usado para un id de navegador.
func NamespaceKey(ns string) string { return "ns:" + ns + "/" }
