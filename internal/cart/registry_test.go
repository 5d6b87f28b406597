package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_ReturnsSameStorePerOwner(t *testing.T) {
	r := NewRegistry(newMockCache(), zap.NewNop(), time.Minute)
	t.Cleanup(r.Close)

	a := r.Get("user-1")
	b := r.Get("user-1")
	c := r.Get("user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_EvictsIdleStoresAfterFlush(t *testing.T) {
	mc := newMockCache()
	r := NewRegistry(mc, zap.NewNop(), time.Minute)
	t.Cleanup(r.Close)

	now := time.Now()
	r.now = func() time.Time { return now }

	s := r.Get("user-1")
	require.NoError(t, s.WaitReady(context.Background()))
	require.NoError(t, s.AddLine("tomato", 2, ""))

	now = now.Add(30 * time.Second)
	r.Get("user-2")

	now = now.Add(45 * time.Second)
	r.evictIdle()

	assert.Equal(t, 1, r.Len())
	assert.Len(t, mc.persisted("user-1"), 1)
	assert.ErrorIs(t, s.AddLine("tomato", 1, ""), ErrStoreClosed)

	fresh := r.Get("user-1")
	assert.NotSame(t, s, fresh)
	require.NoError(t, fresh.WaitReady(context.Background()))
	assert.Equal(t, 2, fresh.Count())
}

func TestRegistry_RunClosesStoresOnShutdown(t *testing.T) {
	mc := newMockCache()
	r := NewRegistry(mc, zap.NewNop(), time.Minute)

	s := r.Get("user-1")
	require.NoError(t, s.WaitReady(context.Background()))
	require.NoError(t, s.AddLine("onion", 1, ""))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, r.Len())
	assert.Len(t, mc.persisted("user-1"), 1)
}
