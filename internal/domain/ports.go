package domain

import "context"

// KVStore es el equivalente al local storage del navegador: valores JSON
// opacos por clave. Get devuelve ErrNotFound si la clave no existe.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KVWatcher lo implementan los backends que avisan cambios de clave.
type KVWatcher interface {
	Watch(key string, fn func()) (cancel func())
}

type CatalogLookup interface {
	Lookup(variantID string) (CatalogHit, bool)
}

type CatalogReader interface {
	CatalogLookup
	Products() []Product
}

type CartRepo interface {
	Load(ctx context.Context) []CartLine
	Save(ctx context.Context, lines []CartLine) error
}

type UserRepo interface {
	All(ctx context.Context) []UserRecord
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	// Create falla con ErrDuplicateEmail si el correo ya existe.
	Create(ctx context.Context, u *UserRecord) error
	Save(ctx context.Context, u *UserRecord) error
	Delete(ctx context.Context, id string) (bool, error)
}

type SessionRepo interface {
	Load(ctx context.Context) *User
	Save(ctx context.Context, u *User) error
	Clear(ctx context.Context) error
}

type OrderRepo interface {
	All(ctx context.Context) []Order
	FindByID(ctx context.Context, id string) (*Order, error)
	Save(ctx context.Context, o *Order) error
}

type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

type OrderNotifier interface {
	OrderCreated(ctx context.Context, o *Order) error
}
