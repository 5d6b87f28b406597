package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
)

type mockInventoryRepo struct {
	m     sync.RWMutex
	items map[string]domain.InventoryItem
	err   error
}

func newMockInventoryRepo(items ...domain.InventoryItem) *mockInventoryRepo {
	r := &mockInventoryRepo{items: make(map[string]domain.InventoryItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (m *mockInventoryRepo) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.InventoryItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *mockInventoryRepo) GetItems(_ context.Context, ids []string) ([]domain.InventoryItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.InventoryItem
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) GetItem(_ context.Context, id string) (*domain.InventoryItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrInventoryNotFound
	}
	return &item, nil
}

func (m *mockInventoryRepo) CreateItem(_ context.Context, item *domain.InventoryItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if item.ID == "" {
		item.ID = "generated"
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockInventoryRepo) ReplaceItem(_ context.Context, item *domain.InventoryItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return repository.ErrInventoryNotFound
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockInventoryRepo) DeleteItem(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrInventoryNotFound
	}
	delete(m.items, id)
	return nil
}

type mockOrderRepo struct {
	m      sync.RWMutex
	orders []domain.Order
	seq    int
	err    error
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	order.ID = fmt.Sprintf("order-%d", m.seq)
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderRepo) GetOrder(_ context.Context, userID, orderID string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	for _, o := range m.orders {
		if o.ID == orderID && o.UserID == userID {
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var out []domain.Order
	for _, o := range slices.Backward(m.orders) {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListUnpublished(context.Context, int) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) MarkPublished(context.Context, string, time.Time) error {
	return nil
}

type mockUserRepo struct {
	m     sync.RWMutex
	users map[string]domain.User
}

func newMockUserRepo(users ...domain.User) *mockUserRepo {
	r := &mockUserRepo{users: make(map[string]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (m *mockUserRepo) GetUser(_ context.Context, id string) (*domain.User, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Addresses = slices.Clone(u.Addresses)
	return &u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id, phone string, addresses []domain.Address) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Phone = phone
	u.Addresses = slices.Clone(addresses)
	m.users[id] = u
	return &u, nil
}
