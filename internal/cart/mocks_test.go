package cart

import (
	"context"
	"sync"

	"github.com/nayanishant/vegetable-wholesaler/internal/cache"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

type mockCache struct {
	m      sync.RWMutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
	// gate blocks Get until closed
	gate chan struct{}
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, owner string) ([]byte, error) {
	m.m.RLock()
	gate := m.gate
	m.m.RUnlock()
	if gate != nil {
		<-gate
	}

	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.data[owner]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (m *mockCache) Set(_ context.Context, owner string, payload []byte) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[owner] = payload
	return nil
}

func (m *mockCache) Delete(_ context.Context, owner string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.data, owner)
	return nil
}

func (m *mockCache) put(owner, payload string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.data[owner] = []byte(payload)
}

// persisted decodes what was last written for owner.
func (m *mockCache) persisted(owner string) []domain.CartLine {
	m.m.RLock()
	defer m.m.RUnlock()
	data, ok := m.data[owner]
	if !ok {
		return nil
	}
	lines, err := Decode(data)
	if err != nil {
		return nil
	}
	return lines
}

func (m *mockCache) setCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.sets
}

type mockCatalog struct {
	m     sync.RWMutex
	items []domain.InventoryItem
	err   error
	calls int
}

func (m *mockCatalog) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}
