package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/munek/internal/domain"
)

// Requiere una base real: MUNEK_TEST_DSN="host=... user=... dbname=..."
func openTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("MUNEK_TEST_DSN")
	if dsn == "" {
		t.Skip("MUNEK_TEST_DSN no configurado")
	}
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestKVStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(openTestDB(t))
	require.NoError(t, s.Migrate())

	key := "test/" + uuid.NewString()
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, err := s.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, key, []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, key, []byte(`[2]`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
