package memory

import (
	"context"
	"sync"

	"github.com/phenrril/munek/internal/domain"
)

// Store guarda los valores en memoria y avisa a los suscriptores de cada clave.
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[string]map[int]func()
	next     int
}

func New() *Store {
	return &Store{data: map[string][]byte{}, watchers: map[string]map[int]func(){}}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	s.notify(key)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	if existed {
		s.notify(key)
	}
	return nil
}

// Watch registra fn para cambios de key. fn corre en su propia goroutine,
// así que puede volver a tomar locks del que escribió.
func (s *Store) Watch(key string, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	if s.watchers[key] == nil {
		s.watchers[key] = map[int]func(){}
	}
	s.watchers[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers[key], id)
		if len(s.watchers[key]) == 0 {
			delete(s.watchers, key)
		}
	}
}

func (s *Store) notify(key string) {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.watchers[key]))
	for _, fn := range s.watchers[key] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		go fn()
	}
}
