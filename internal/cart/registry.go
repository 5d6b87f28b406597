package cart

import (
	"context"
	"sync"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/cache"
	"go.uber.org/zap"
)

const DefaultIdleTimeout = 30 * time.Minute

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry keeps one active Store per cart owner and evicts stores that have
// not been used for the idle timeout.
type Registry struct {
	cache       cache.CartCache
	logger      *zap.Logger
	idleTimeout time.Duration
	now         func() time.Time

	mu     sync.Mutex
	stores map[string]*entry
}

func NewRegistry(c cache.CartCache, logger *zap.Logger, idleTimeout time.Duration) *Registry {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Registry{
		cache:       c,
		logger:      logger,
		idleTimeout: idleTimeout,
		now:         time.Now,
		stores:      make(map[string]*entry),
	}
}

// Get returns the active store for owner, creating and activating it on first use.
func (r *Registry) Get(owner string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[owner]
	if !ok {
		s := NewStore(owner, r.cache, r.logger)
		s.Activate()
		e = &entry{store: s}
		r.stores[owner] = e
	}
	e.lastUsed = r.now()
	return e.store
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Run evicts idle stores until ctx is cancelled, then closes every store.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

func (r *Registry) evictIdle() {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	var idle []*Store
	for owner, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.store)
			delete(r.stores, owner)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		r.logger.Debug("evicted idle carts", zap.Int("count", len(idle)))
	}
}

// Close flushes and closes every active store.
func (r *Registry) Close() {
	r.mu.Lock()
	stores := make([]*Store, 0, len(r.stores))
	for owner, e := range r.stores {
		stores = append(stores, e.store)
		delete(r.stores, owner)
	}
	r.mu.Unlock()

	for _, s := range stores {
		s.Close()
	}
}
