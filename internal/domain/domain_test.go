package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryItem_Validate(t *testing.T) {
	tests := []struct {
		name string
		item InventoryItem
		want error
	}{
		{"valid", InventoryItem{Name: "Okra", Price: 40, Unit: UnitKg}, nil},
		{"free item is valid", InventoryItem{Name: "Curry leaves", Unit: UnitBundle}, nil},
		{"missing name", InventoryItem{Price: 1, Unit: UnitKg}, ErrInvalidName},
		{"negative price", InventoryItem{Name: "Okra", Price: -1, Unit: UnitKg}, ErrInvalidPrice},
		{"negative stock", InventoryItem{Name: "Okra", Stock: -2, Unit: UnitKg}, ErrInvalidStock},
		{"unknown unit", InventoryItem{Name: "Okra", Unit: "crate"}, ErrInvalidUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.item.Validate(), tt.want)
		})
	}
}

func TestInventoryItem_NormalizeDefaultsUnit(t *testing.T) {
	item := InventoryItem{Name: "  Garlic ", Category: " bulbs"}
	item.Normalize()

	assert.Equal(t, "Garlic", item.Name)
	assert.Equal(t, "bulbs", item.Category)
	assert.Equal(t, UnitKg, item.Unit)
}

func TestInventoryPatch_Apply(t *testing.T) {
	price := 18.5
	avail := false
	item := InventoryItem{Name: "Beans", Price: 20, Unit: UnitKg, IsAvailable: true, Stock: 4}

	InventoryPatch{Price: &price, IsAvailable: &avail}.Apply(&item)

	assert.Equal(t, 18.5, item.Price)
	assert.False(t, item.IsAvailable)
	assert.Equal(t, "Beans", item.Name)
	assert.Equal(t, 4, item.Stock)
}

func TestAddressLookup(t *testing.T) {
	addrs := []Address{{ID: "a1"}, {ID: "a2", IsDefault: true}}

	def, ok := DefaultAddress(addrs)
	assert.True(t, ok)
	assert.Equal(t, "a2", def.ID)

	_, ok = FindAddress(addrs, "a3")
	assert.False(t, ok)

	_, ok = DefaultAddress(nil)
	assert.False(t, ok)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 76.5, RoundMoney(3*25.5))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
