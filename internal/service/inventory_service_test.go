package service

import (
	"context"
	"testing"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

func TestInventoryCreate_Defaults(t *testing.T) {
	repo := newMockInventoryRepo()
	svc := NewInventoryService(repo, zap.NewNop())

	item, err := svc.Create(context.Background(), "admin-1", InventoryInput{Name: " Tomato ", Price: 40, Stock: 10})
	require.NoError(t, err)

	assert.Equal(t, "Tomato", item.Name)
	assert.Equal(t, domain.UnitKg, item.Unit)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, "admin-1", item.CreatedBy)
	assert.Contains(t, repo.items, item.ID)
}

func TestInventoryCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   InventoryInput
		err  error
	}{
		{"missing name", InventoryInput{Price: 1}, domain.ErrInvalidName},
		{"negative price", InventoryInput{Name: "x", Price: -1}, domain.ErrInvalidPrice},
		{"negative stock", InventoryInput{Name: "x", Stock: -1}, domain.ErrInvalidStock},
		{"bad unit", InventoryInput{Name: "x", Unit: "crate"}, domain.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewInventoryService(newMockInventoryRepo(), zap.NewNop())
			_, err := svc.Create(context.Background(), "admin-1", tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestInventoryCreate_ExplicitlyUnavailable(t *testing.T) {
	svc := NewInventoryService(newMockInventoryRepo(), zap.NewNop())

	item, err := svc.Create(context.Background(), "admin-1", InventoryInput{Name: "Okra", IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.False(t, item.IsAvailable)
}

func TestInventoryUpdate(t *testing.T) {
	repo := newMockInventoryRepo(domain.InventoryItem{ID: "A", Name: "Tomato", Price: 40, Unit: domain.UnitKg, IsAvailable: true})
	svc := NewInventoryService(repo, zap.NewNop())
	ctx := context.Background()

	item, err := svc.Update(ctx, "A", domain.InventoryPatch{Price: ptr(45.5), IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 45.5, item.Price)
	assert.False(t, item.IsAvailable)
	assert.Equal(t, "Tomato", repo.items["A"].Name)

	_, err = svc.Update(ctx, "A", domain.InventoryPatch{Stock: ptr(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
	assert.Equal(t, 0, repo.items["A"].Stock)

	_, err = svc.Update(ctx, "ghost", domain.InventoryPatch{})
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestInventoryDelete(t *testing.T) {
	repo := newMockInventoryRepo(domain.InventoryItem{ID: "A", Name: "Tomato"})
	svc := NewInventoryService(repo, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "A"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "A"), ErrInventoryNotFound)
}
