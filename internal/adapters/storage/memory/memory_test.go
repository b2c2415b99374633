package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/munek/internal/domain"
)

func TestStoreGetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, domain.ErrNotFound)

	buf := []byte(`[1]`)
	require.NoError(t, s.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreWatchNotifiesUntilCancelled(t *testing.T) {
	ctx := context.Background()
	s := New()

	var hits atomic.Int32
	cancel := s.Watch("k", func() { hits.Add(1) })
	s.Watch("other", func() { t.Error("unexpected notification") })

	require.NoError(t, s.Put(ctx, "k", []byte("1")))
	assert.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, s.Put(ctx, "k", []byte("2")))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), hits.Load())
}
